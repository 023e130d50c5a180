package align

import "go.viam.com/icp/pointcloud"

// ModifyTransform wraps estimator, applying modify to its result before
// returning it. If modify reports false, the unmodified estimate passes
// through unchanged.
func ModifyTransform(estimator TransformEstimator, modify func(Transform) (Transform, bool)) TransformEstimator {
	return func(alignee, target []pointcloud.Point) (Transform, error) {
		t, err := estimator(alignee, target)
		if err != nil {
			return Transform{}, err
		}
		if modified, ok := modify(t); ok {
			return modified, nil
		}
		return t, nil
	}
}

// Interlace round-robins a sequence of estimators across ICP iterations:
// the i-th call uses estimators[i % len(estimators)]. The returned
// TransformEstimator closes over a mutable call counter, so a single
// instance must be driven by one sequential run.
func Interlace(estimators ...TransformEstimator) TransformEstimator {
	i := 0
	return func(alignee, target []pointcloud.Point) (Transform, error) {
		estimator := estimators[i%len(estimators)]
		i++
		return estimator(alignee, target)
	}
}
