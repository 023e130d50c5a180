package align

import (
	"math"

	"go.viam.com/icp/pointcloud"
)

// Default thresholds for IsSmallIsometry.
const (
	DefaultMinTranslationThreshold = 0.001
	DefaultMinAngleThreshold       = 0.01
)

// ConvergencePredicate reports whether the driver should stop iterating,
// given the step transform just computed and the masked
// (alignee, target) point sets used to compute it.
type ConvergencePredicate func(step Transform, alignee, target []pointcloud.Point) bool

// Never never reports convergence; the driver always runs to
// MaxIterations.
func Never() ConvergencePredicate {
	return func(Transform, []pointcloud.Point, []pointcloud.Point) bool { return false }
}

// IsSmallIsometry reports convergence once a step transform's rotation
// angle falls under angleThreshold and its squared translation magnitude
// falls under translationThreshold.
func IsSmallIsometry(translationThreshold, angleThreshold float64) ConvergencePredicate {
	return func(step Transform, alignee, target []pointcloud.Point) bool {
		if step.Translation().Norm2() >= translationThreshold {
			return false
		}

		linear := step.Linear()
		trace := linear.At(0, 0) + linear.At(1, 1) + linear.At(2, 2)
		cosAngle := math.Max(-1, math.Min(1, (trace-1)/2))
		return math.Abs(math.Acos(cosAngle)) < angleThreshold
	}
}

// SameSquaredDistanceError reports convergence once the sum of squared
// alignee-to-target distances stops changing by more than epsilon between
// successive calls. It carries the previous error as state, so a single
// instance must be driven by one sequential run.
func SameSquaredDistanceError(epsilon float64) ConvergencePredicate {
	previous := math.Inf(1)
	return func(step Transform, alignee, target []pointcloud.Point) bool {
		var sum float64
		for k := range alignee {
			d := alignee[k].Pos.Sub(target[k].Pos)
			sum += d.Dot(d)
		}
		isSmall := math.Abs(sum-previous) < epsilon
		previous = sum
		return isSmall
	}
}
