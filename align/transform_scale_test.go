package align

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
	"go.viam.com/test"
)

func TestEstimateScaleRecoversPerAxisScale(t *testing.T) {
	alPositions := []r3.Vector{{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0}}
	var alignee, target []pointcloud.Point
	for _, p := range alPositions {
		alignee = append(alignee, pointcloud.NewPoint(p))
		target = append(target, pointcloud.NewPoint(r3.Vector{X: p.X * 2, Y: p.Y * 3, Z: p.Z}))
	}

	got, err := EstimateScale(alignee, target)
	test.That(t, err, test.ShouldBeNil)

	for i := range alignee {
		want := target[i].Pos
		gotPos := got.ApplyPoint(alignee[i].Pos)
		test.That(t, gotPos.X, test.ShouldAlmostEqual, want.X, 1e-6)
		test.That(t, gotPos.Y, test.ShouldAlmostEqual, want.Y, 1e-6)
	}
}

func TestEstimateScalePointToPlaneRequiresNormals(t *testing.T) {
	alignee := []pointcloud.Point{pointcloud.NewPoint(r3.Vector{})}
	target := []pointcloud.Point{pointcloud.NewPoint(r3.Vector{})}
	_, err := EstimateScalePointToPlane(alignee, target)
	test.That(t, err, test.ShouldNotBeNil)
}
