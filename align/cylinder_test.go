package align

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
	"go.viam.com/test"
)

func TestCylinderIntersectMantle(t *testing.T) {
	c := NewCylinder(1.0)
	hit := c.intersect(r3.Vector{X: 2, Y: 0, Z: -5})
	test.That(t, hit.signed, test.ShouldEqual, 1.0)
	test.That(t, hit.pos.X, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestCylinderIntersectTopDisk(t *testing.T) {
	c := NewCylinder(1.0)
	hit := c.intersect(r3.Vector{X: 0.1, Y: 0, Z: 5})
	test.That(t, hit.signed, test.ShouldEqual, 5.0)
	test.That(t, hit.pos.Z, test.ShouldEqual, 0.0)
}

func TestCylinderFindCorrespondencesUpdatesRadius(t *testing.T) {
	c := NewCylinder(1.0)
	alignee := pointcloud.NewView(pointcloud.FromVectors([]r3.Vector{
		{X: 2, Y: 0, Z: -5}, {X: 0, Y: 2, Z: -5}, {X: -2, Y: 0, Z: -5}, {X: 0, Y: -2, Z: -5},
	}))

	_, err := c.FindCorrespondences(alignee, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Radius, test.ShouldAlmostEqual, 2.0, 1e-9)
}
