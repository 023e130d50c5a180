package align

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// EstimateScale fits an axis-aligned (diagonal) non-uniform scale, no
// rotation or translation: each axis's scale factor s_d is the
// least-squares ratio sum(a_k,d * t_k,d) / sum(a_k,d^2) of raw alignee
// and target coordinates on that axis, independent of the other axes.
func EstimateScale(alignee, target []pointcloud.Point) (Transform, error) {
	n := len(alignee)
	if n != len(target) {
		return Transform{}, errors.Errorf("align: scale estimation requires equal-length point sets, got %d and %d", n, len(target))
	}

	alPositions := positions(alignee)
	taPositions := positions(target)

	var numerator, denominator [3]float64
	for k := 0; k < n; k++ {
		a := alPositions[k]
		t := taPositions[k]
		numerator[0] += a.X * t.X
		numerator[1] += a.Y * t.Y
		numerator[2] += a.Z * t.Z
		denominator[0] += a.X * a.X
		denominator[1] += a.Y * a.Y
		denominator[2] += a.Z * a.Z
	}

	scale := [3]float64{1, 1, 1}
	for i := range scale {
		if denominator[i] != 0 {
			scale[i] = numerator[i] / denominator[i]
		}
	}

	linear := mat.NewDense(3, 3, nil)
	linear.Set(0, 0, scale[0])
	linear.Set(1, 1, scale[1])
	linear.Set(2, 2, scale[2])

	return NewFromLinearAndTranslation(linear, r3.Vector{}), nil
}

// EstimateScalePointToPlane fits a diagonal scale like EstimateScale, but
// on centroid-demeaned positions, minimizing the point-to-plane residual
// against target's normals rather than raw point distance, and returns the
// translation that maps the scaled alignee centroid onto the target
// centroid — the scale analogue
// of EstimateIsometryPointToPlane, substituting the per-axis scale
// unknowns for the small-angle rotation unknowns in the same linearized
// normal-equations scheme.
func EstimateScalePointToPlane(alignee, target []pointcloud.Point) (Transform, error) {
	n := len(alignee)
	if n != len(target) {
		return Transform{}, errors.Errorf("align: point-to-plane scale estimation requires equal-length point sets, got %d and %d", n, len(target))
	}

	alPositions := positions(alignee)
	alCentroid := pointcloud.Centroid(alPositions)
	taCentroid := pointcloud.Centroid(positions(target))

	ata := mat.NewDense(3, 3, nil)
	atb := mat.NewDense(3, 1, nil)

	for k := 0; k < n; k++ {
		if !target[k].HasNormal() {
			return Transform{}, errors.New("align: point-to-plane scale estimation requires target normals")
		}
		normal := *target[k].Norm
		demeanedAlignee := alPositions[k].Sub(alCentroid)
		rhs := normal.Dot(target[k].Pos.Sub(taCentroid))
		row := [3]float64{normal.X * demeanedAlignee.X, normal.Y * demeanedAlignee.Y, normal.Z * demeanedAlignee.Z}
		w := target[k].Weight

		for i := 0; i < 3; i++ {
			atb.Set(i, 0, atb.At(i, 0)+w*row[i]*rhs)
			for j := 0; j < 3; j++ {
				ata.Set(i, j, ata.At(i, j)+w*row[i]*row[j])
			}
		}
	}

	var x mat.Dense
	if err := x.Solve(ata, atb); err != nil {
		return Transform{}, errors.Wrap(err, "align: point-to-plane scale normal equations are singular")
	}

	linear := mat.NewDense(3, 3, nil)
	linear.Set(0, 0, x.At(0, 0))
	linear.Set(1, 1, x.At(1, 0))
	linear.Set(2, 2, x.At(2, 0))

	translation := taCentroid.Sub(applyLinear(linear, alCentroid))
	return NewFromLinearAndTranslation(linear, translation), nil
}
