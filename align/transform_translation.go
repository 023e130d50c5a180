package align

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
)

// EstimateTranslationPointToPlane estimates a pure translation (no
// rotation or scale) minimizing the point-to-plane distance between
// alignee and the tangent plane at each corresponding target point: the
// translation is (the negative of) the mean of each target normal scaled
// by its point's signed plane distance to the matching alignee point.
func EstimateTranslationPointToPlane(alignee, target []pointcloud.Point) (Transform, error) {
	n := len(alignee)
	if n != len(target) {
		return Transform{}, errors.Errorf("align: point-to-plane translation estimation requires equal-length point sets, got %d and %d", n, len(target))
	}
	if n == 0 {
		return Identity(), nil
	}

	var sum r3.Vector
	for k := 0; k < n; k++ {
		if !target[k].HasNormal() {
			return Transform{}, errors.New("align: point-to-plane translation estimation requires target normals")
		}
		plane := pointcloud.NewPlaneFromNormalAndPoint(*target[k].Norm, target[k].Pos)
		signedDistance := plane.DistanceToPoint(alignee[k].Pos)
		sum = sum.Add(target[k].Norm.Mul(signedDistance))
	}

	translation := sum.Mul(-1.0 / float64(n))
	return NewFromLinearAndTranslation(identityLinear(), translation), nil
}
