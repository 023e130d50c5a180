package align

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
	"go.viam.com/test"
)

func TestKeepAll(t *testing.T) {
	mask, err := KeepAll(nil, nil, []float64{1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mask, test.ShouldResemble, []bool{true, true, true})
}

func TestRejectNSigmaFallsBackBelowTwoSamples(t *testing.T) {
	reject := RejectNSigma(2)
	mask, err := reject(nil, nil, []float64{5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mask, test.ShouldResemble, []bool{true})
}

func TestRejectNSigma(t *testing.T) {
	reject := RejectNSigma(1.5)
	distances := []float64{1, 1, 1, 1, 100}
	mask, err := reject(nil, nil, distances)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mask[4], test.ShouldBeFalse)
	test.That(t, mask[0], test.ShouldBeTrue)
}

func TestRejectThreeSigma(t *testing.T) {
	reject := RejectThreeSigma()
	mask, err := reject(nil, nil, []float64{1, 2, 3, 4, 5})
	test.That(t, err, test.ShouldBeNil)
	for _, keep := range mask {
		test.That(t, keep, test.ShouldBeTrue)
	}
}

func TestRejectOutliersPlaneDistance(t *testing.T) {
	vecs := []r3.Vector{
		{X: -100, Y: -100, Z: 0}, {X: 100, Y: -100, Z: 0}, {X: 100, Y: 100, Z: 0}, {X: -100, Y: 100, Z: 0}, {X: 0, Y: 0, Z: 50},
	}
	cloud := pointcloud.FromVectors(vecs)
	view := pointcloud.NewView(cloud)

	reject := RejectOutliersPlaneDistance(1e-4, 10)
	mask, err := reject(view, view, make([]float64, view.Len()))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mask[4], test.ShouldBeFalse)
}

func TestRejectOverlappingRatios(t *testing.T) {
	distances := []float64{1, 2, 3, 4, 100}
	reject := RejectOverlappingRatios(2)
	mask, err := reject(nil, nil, distances)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mask, test.ShouldHaveLength, 5)
	test.That(t, mask[4], test.ShouldBeFalse)
}
