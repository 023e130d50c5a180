package align

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
)

// OutlierRejecter returns a mask over alignee/correspondingTarget (and
// their per-pair distances, all three the same length) marking which
// correspondences survive.
type OutlierRejecter func(alignee, correspondingTarget *pointcloud.View, distances []float64) ([]bool, error)

// KeepAll keeps every correspondence.
func KeepAll(alignee, correspondingTarget *pointcloud.View, distances []float64) ([]bool, error) {
	mask := make([]bool, len(distances))
	for i := range mask {
		mask[i] = true
	}
	return mask, nil
}

// RejectNSigma keeps correspondences whose signed z-score (distance minus
// mean, over standard deviation) is at most n — distances far below the
// mean are never rejected, only distances far above it. Falls back to
// KeepAll when fewer than two distances are available, since a standard
// deviation is undefined for a single sample.
func RejectNSigma(n float64) OutlierRejecter {
	return func(alignee, correspondingTarget *pointcloud.View, distances []float64) ([]bool, error) {
		if len(distances) < 2 {
			return KeepAll(alignee, correspondingTarget, distances)
		}

		mean, err := stats.Mean(distances)
		if err != nil {
			return nil, errors.Wrap(err, "align: computing mean correspondence distance")
		}
		stdDev, err := stats.StandardDeviation(distances)
		if err != nil {
			return nil, errors.Wrap(err, "align: computing correspondence distance standard deviation")
		}

		mask := make([]bool, len(distances))
		for i, d := range distances {
			if stdDev == 0 {
				mask[i] = true
				continue
			}
			mask[i] = (d-mean)/stdDev <= n
		}
		return mask, nil
	}
}

// RejectThreeSigma is RejectNSigma(3), the fixed cutoff used throughout
// the point-cloud outlier-rejection literature this package draws from.
func RejectThreeSigma() OutlierRejecter {
	return RejectNSigma(3)
}
