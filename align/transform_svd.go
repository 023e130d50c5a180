package align

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// TransformEstimator estimates a transform aligning alignee onto target,
// given equal-length, already correspondence-matched and outlier-filtered
// point sets.
type TransformEstimator func(alignee, target []pointcloud.Point) (Transform, error)

// estimateRotation computes the Horn/Arun closest rotation between two
// equal-length point sets by SVD of the cross-covariance matrix, applying
// the standard reflection fix when the unconstrained solution is improper.
func estimateRotation(alignee, target []r3.Vector) (rotation, alDemeaned, taDemeaned *mat.Dense, alCentroid, taCentroid r3.Vector, err error) {
	alCentroid = pointcloud.Centroid(alignee)
	taCentroid = pointcloud.Centroid(target)
	alDemeaned = pointcloud.DemeanMatrix(alignee, alCentroid)
	taDemeaned = pointcloud.DemeanMatrix(target, taCentroid)

	var h mat.Dense
	h.Mul(alDemeaned, taDemeaned.T())

	var svd mat.SVD
	if !svd.Factorize(&h, mat.SVDThin) {
		return nil, nil, nil, r3.Vector{}, r3.Vector{}, errors.New("align: SVD failed while estimating rotation")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var r mat.Dense
	r.Mul(&v, u.T())

	if mat.Det(&r) < 0 {
		for row := 0; row < 3; row++ {
			v.Set(row, 2, -v.At(row, 2))
		}
		r.Mul(&v, u.T())
	}

	return &r, alDemeaned, taDemeaned, alCentroid, taCentroid, nil
}

// EstimateIsometrySVD estimates a rotation and translation (no scale)
// aligning alignee onto target via Horn/Arun SVD registration.
func EstimateIsometrySVD(alignee, target []pointcloud.Point) (Transform, error) {
	if len(alignee) != len(target) {
		return Transform{}, errors.Errorf("align: isometry estimation requires equal-length point sets, got %d and %d", len(alignee), len(target))
	}

	rotation, _, _, alCentroid, taCentroid, err := estimateRotation(positions(alignee), positions(target))
	if err != nil {
		return Transform{}, err
	}

	translation := taCentroid.Sub(applyLinear(rotation, alCentroid))
	return NewFromLinearAndTranslation(rotation, translation), nil
}

// EstimateSimilaritySVD estimates a uniform scale, rotation, and
// translation aligning alignee onto target.
func EstimateSimilaritySVD(alignee, target []pointcloud.Point) (Transform, error) {
	if len(alignee) != len(target) {
		return Transform{}, errors.Errorf("align: similarity estimation requires equal-length point sets, got %d and %d", len(alignee), len(target))
	}

	rotation, alDemeaned, taDemeaned, alCentroid, taCentroid, err := estimateRotation(positions(alignee), positions(target))
	if err != nil {
		return Transform{}, err
	}

	_, n := alDemeaned.Dims()
	var numerator, denominator float64
	for k := 0; k < n; k++ {
		a := matColumn(alDemeaned, k)
		t := matColumn(taDemeaned, k)
		rotated := applyLinear(rotation, a)
		numerator += rotated.Dot(t)
		denominator += a.Dot(a)
	}

	scale := 1.0
	if denominator != 0 {
		scale = numerator / denominator
	}

	scaled := mat.NewDense(3, 3, nil)
	scaled.Scale(scale, rotation)

	translation := taCentroid.Sub(applyLinear(scaled, alCentroid))
	return NewFromLinearAndTranslation(scaled, translation), nil
}
