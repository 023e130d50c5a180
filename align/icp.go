package align

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// Options configures a single EstimateTransform run.
type Options struct {
	CorrespondenceEstimator CorrespondenceEstimator
	Filter                  PointFilter
	Rejecters               []OutlierRejecter
	TransformEstimator      TransformEstimator
	ConvergencePredicate    ConvergencePredicate
	MaxIterations           int
	InitialGuess            Transform
	Logger                  *zap.SugaredLogger
}

// Result is the outcome of an EstimateTransform run.
type Result struct {
	Transform  Transform
	Iterations int
	Converged  bool
}

// EstimateTransform iteratively refines a transform mapping alignee onto
// target. Each iteration: find correspondences, reject outliers (each
// rejecter runs first on the reverse target/alignee pairing, then on the
// forward alignee/target pairing; each pass masks only its own pair of
// views and distances), estimate a step transform
// from the surviving pairs, fold it into the running transform and into
// the working cloud, and check for convergence.
func EstimateTransform(alignee, target pointcloud.Cloud, opts Options) (*Result, error) {
	transform := opts.InitialGuess
	if transform == (Transform{}) {
		transform = Identity()
	}

	aligned := transform.ApplyToCloud(alignee)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		aligneeView := pointcloud.NewView(aligned)
		targetView := pointcloud.NewView(target)

		if opts.Filter != nil {
			if err := aligneeView.AddMask(ApplyFilter(aligneeView, opts.Filter)); err != nil {
				return nil, errors.Wrap(err, "align: applying point filter to alignee")
			}
			if err := targetView.AddMask(ApplyFilter(targetView, opts.Filter)); err != nil {
				return nil, errors.Wrap(err, "align: applying point filter to target")
			}
		}

		correspondences, err := opts.CorrespondenceEstimator.FindCorrespondences(aligneeView, targetView)
		if err != nil {
			return nil, errors.Wrap(err, "align: finding correspondences")
		}

		for _, reject := range opts.Rejecters {
			if err := rejectInPlace(reject, correspondences.TargetPoints, correspondences.CorrespondingAligneePoints, &correspondences.TargetToAligneeDistances); err != nil {
				return nil, errors.Wrap(err, "align: rejecting outliers (reverse pass)")
			}
			if err := rejectInPlace(reject, correspondences.AligneePoints, correspondences.CorrespondingTargetPoints, &correspondences.AligneeToTargetDistances); err != nil {
				return nil, errors.Wrap(err, "align: rejecting outliers (forward pass)")
			}
		}

		maskedAlignee := append(correspondences.AligneePoints.Points(), correspondences.CorrespondingAligneePoints.Points()...)
		maskedTarget := append(correspondences.CorrespondingTargetPoints.Points(), correspondences.TargetPoints.Points()...)

		if len(maskedAlignee) != len(maskedTarget) {
			return nil, errors.Errorf("align: masked point sets diverged in length (%d alignee, %d target) after outlier rejection", len(maskedAlignee), len(maskedTarget))
		}

		step, err := opts.TransformEstimator(maskedAlignee, maskedTarget)
		if err != nil {
			// A singular or ill-conditioned solve yields no step: this
			// iteration continues with the identity. Any other error ends the run.
			if _, noStep := errors.Cause(err).(mat.Condition); !noStep {
				return nil, errors.Wrap(err, "align: estimating step transform")
			}
			if opts.Logger != nil {
				opts.Logger.Debugw("icp iteration produced no step transform", "i", iter, "error", err)
			}
			step = Identity()
		}

		aligned = step.ApplyToCloud(aligned)
		transform = transform.Then(step)

		if opts.Logger != nil {
			t := step.Translation()
			opts.Logger.Debugw("icp iteration", "i", iter, "stepTranslation", []float64{t.X, t.Y, t.Z}, "correspondences", len(maskedAlignee))
		}

		if opts.ConvergencePredicate != nil && opts.ConvergencePredicate(step, maskedAlignee, maskedTarget) {
			return &Result{Transform: transform, Iterations: iter + 1, Converged: true}, nil
		}
	}

	return &Result{Transform: transform, Iterations: opts.MaxIterations, Converged: false}, nil
}

func rejectInPlace(reject OutlierRejecter, points, correspondingPoints *pointcloud.View, distances *[]float64) error {
	mask, err := reject(points, correspondingPoints, *distances)
	if err != nil {
		return err
	}
	if err := points.AddMask(mask); err != nil {
		return err
	}
	if err := correspondingPoints.AddMask(mask); err != nil {
		return err
	}
	*distances = maskFloats(*distances, mask)
	return nil
}

func maskFloats(values []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(values))
	for i, keep := range mask {
		if keep {
			out = append(out, values[i])
		}
	}
	return out
}
