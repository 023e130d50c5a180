package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestFromVectors(t *testing.T) {
	vecs := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}}
	cloud := FromVectors(vecs)
	test.That(t, cloud, test.ShouldHaveLength, 2)
	test.That(t, cloud[0].Pos, test.ShouldResemble, vecs[0])
	test.That(t, cloud[1].Pos, test.ShouldResemble, vecs[1])
	test.That(t, cloud.ToPointCloud(), test.ShouldResemble, cloud)
}

func TestCloudClone(t *testing.T) {
	norm := r3.Vector{X: 0, Y: 0, Z: 1}
	cloud := Cloud{NewPointWithNormal(r3.Vector{X: 1, Y: 2, Z: 3}, norm)}
	clone := cloud.Clone()
	test.That(t, clone, test.ShouldResemble, cloud)

	clone[0].Pos.X = 99
	test.That(t, cloud[0].Pos.X, test.ShouldEqual, 1.0)

	*clone[0].Norm = r3.Vector{X: 1, Y: 0, Z: 0}
	test.That(t, *cloud[0].Norm, test.ShouldResemble, norm)
}

func TestCloudPositions(t *testing.T) {
	cloud := FromVectors([]r3.Vector{{X: 1}, {X: 2}, {X: 3}})
	positions := cloud.Positions()
	test.That(t, positions, test.ShouldResemble, []r3.Vector{{X: 1}, {X: 2}, {X: 3}})
}
