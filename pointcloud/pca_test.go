package pointcloud

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPCAFlatCloud(t *testing.T) {
	// points spread widely along X, a little along Y, none along Z
	points := []r3.Vector{
		{X: -10, Y: -1, Z: 0},
		{X: -5, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 5, Y: 1, Z: 0},
		{X: 10, Y: -1, Z: 0},
	}
	vectors := PCA(points)
	test.That(t, vectors, test.ShouldHaveLength, 3)

	// the dominant component must lie (almost) along X
	test.That(t, math.Abs(vectors[0].X), test.ShouldBeGreaterThan, 0.9)
}

func TestPCAWithCentroid(t *testing.T) {
	points := []r3.Vector{{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}}
	centroid := Centroid(points)
	test.That(t, centroid, test.ShouldResemble, r3.Vector{})

	vectors := PCAWithCentroid(points, centroid)
	test.That(t, vectors, test.ShouldHaveLength, 3)
}
