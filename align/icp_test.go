package align

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func axisAlignedCorpus() pointcloud.Cloud {
	return pointcloud.Cloud{
		pointcloud.NewPointWithNormal(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}),
		pointcloud.NewPointWithNormal(r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}),
		pointcloud.NewPointWithNormal(r3.Vector{X: 0, Y: 1, Z: 0}, r3.Vector{X: 0, Y: 1, Z: 0}),
		pointcloud.NewPointWithNormal(r3.Vector{X: 0, Y: 0, Z: 1}, r3.Vector{X: 0, Y: 0, Z: 1}),
	}
}

// S1: alignee translated by (0.5, 0, 0) recovers translation within 3
// iterations under bidirectional matching, no rejection, and SVD isometry.
func TestEstimateTransformRecoversTranslation(t *testing.T) {
	alignee := axisAlignedCorpus()
	translation := r3.Vector{X: 0.5}
	target := NewFromLinearAndTranslation(identityLinear(), translation).ApplyToCloud(alignee)

	result, err := EstimateTransform(alignee, target, Options{
		CorrespondenceEstimator: NewBidirectionalDistance(target),
		Rejecters:               []OutlierRejecter{KeepAll},
		TransformEstimator:      EstimateIsometrySVD,
		ConvergencePredicate:    IsSmallIsometry(1e-6, 1e-6),
		MaxIterations:           10,
	})

	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Converged, test.ShouldBeTrue)
	test.That(t, result.Iterations, test.ShouldBeLessThanOrEqualTo, 3)

	got := result.Transform.Translation()
	test.That(t, got.X, test.ShouldAlmostEqual, 0.5, 1e-4)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0.0, 1e-4)
	test.That(t, got.Z, test.ShouldAlmostEqual, 0.0, 1e-4)
}

// S2: target rotated 30 degrees about Z recovers the rotation angle within
// 1e-3 rad.
func TestEstimateTransformRecoversRotation(t *testing.T) {
	alignee := axisAlignedCorpus()
	theta := 30.0 * math.Pi / 180.0
	c, s := math.Cos(theta), math.Sin(theta)
	rot := NewFromLinearAndTranslation(mat3(c, -s, 0, s, c, 0, 0, 0, 1), r3.Vector{})
	target := rot.ApplyToCloud(alignee)

	result, err := EstimateTransform(alignee, target, Options{
		CorrespondenceEstimator: NewBidirectionalDistance(target),
		Rejecters:               []OutlierRejecter{KeepAll},
		TransformEstimator:      EstimateIsometrySVD,
		ConvergencePredicate:    IsSmallIsometry(1e-9, 1e-9),
		MaxIterations:           30,
	})

	test.That(t, err, test.ShouldBeNil)

	linear := result.Transform.Linear()
	trace := linear.At(0, 0) + linear.At(1, 1) + linear.At(2, 2)
	angle := math.Acos((trace - 1) / 2)
	test.That(t, math.Abs(angle-theta), test.ShouldBeLessThan, 1e-3)
}

// S3: a sphere scaled by 1.5 recovers scale ~1.5 under nearest-neighbor
// matching and similarity estimation.
func TestEstimateTransformRecoversScale(t *testing.T) {
	n := 100
	alignee := make(pointcloud.Cloud, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		phi := math.Pi * float64(i%10) / 10.0
		p := r3.Vector{
			X: math.Sin(phi) * math.Cos(theta),
			Y: math.Sin(phi) * math.Sin(theta),
			Z: math.Cos(phi),
		}
		alignee[i] = pointcloud.NewPointWithNormal(p, p)
	}
	target := NewFromLinearAndTranslation(mat3(1.5, 0, 0, 0, 1.5, 0, 0, 0, 1.5), r3.Vector{}).ApplyToCloud(alignee)

	result, err := EstimateTransform(alignee, target, Options{
		CorrespondenceEstimator: NewNearestNeighbor(target),
		Rejecters:               []OutlierRejecter{KeepAll},
		TransformEstimator:      EstimateSimilaritySVD,
		ConvergencePredicate:    SameSquaredDistanceError(1e-12),
		MaxIterations:           50,
	})

	test.That(t, err, test.ShouldBeNil)

	linear := result.Transform.Linear()
	scale := math.Cbrt(mat3Det(linear))
	test.That(t, scale, test.ShouldAlmostEqual, 1.5, 0.05)
}

// A filter that excludes a point excludes it from the alignee view the
// correspondence estimator is handed, not just from rejection.
func TestEstimateTransformAppliesFilter(t *testing.T) {
	alignee := axisAlignedCorpus()
	target := NewFromLinearAndTranslation(identityLinear(), r3.Vector{X: 0.5}).ApplyToCloud(alignee)

	seen := 0
	countingEstimator := &countingCorrespondenceEstimator{inner: NewBidirectionalDistance(target), seen: &seen}

	_, err := EstimateTransform(alignee, target, Options{
		CorrespondenceEstimator: countingEstimator,
		Filter: func(p pointcloud.Point) bool {
			return p.Pos.Z == 0
		},
		Rejecters:            []OutlierRejecter{KeepAll},
		TransformEstimator:   EstimateIsometrySVD,
		ConvergencePredicate: IsSmallIsometry(1e-6, 1e-6),
		MaxIterations:        1,
	})

	test.That(t, err, test.ShouldBeNil)
	test.That(t, seen, test.ShouldEqual, 3)
}

type countingCorrespondenceEstimator struct {
	inner CorrespondenceEstimator
	seen  *int
}

func (c *countingCorrespondenceEstimator) FindCorrespondences(alignee, target *pointcloud.View) (*Correspondences, error) {
	*c.seen = alignee.Len()
	return c.inner.FindCorrespondences(alignee, target)
}

func mat3(a, b, c, d, e, f, g, h, i float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, b, c, d, e, f, g, h, i})
}

func mat3Det(m *mat.Dense) float64 {
	return mat.Det(m)
}
