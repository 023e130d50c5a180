package align

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
)

// RejectOutliersPlaneDistance fits a plane to alignee's points by
// iterative SVD, dropping only the single farthest outlier each pass,
// until the distances' standard deviation falls under stdDevThreshold or
// maxIterations passes have run. It never looks at correspondingTarget or
// distances directly — the point-to-plane distance replaces the
// correspondence distance as the rejection criterion. Distinct from
// pointcloud.FitToCloudWithoutOutliers, which drops every point beyond an
// n-sigma cutoff in one pass; this rejecter drops at most one point per
// iteration, matching the single worst-point criterion.
func RejectOutliersPlaneDistance(stdDevThreshold float64, maxIterations int) OutlierRejecter {
	return func(alignee, correspondingTarget *pointcloud.View, distances []float64) ([]bool, error) {
		idx := make([]int, alignee.Len())
		for k := 0; k < alignee.Len(); k++ {
			idx[k] = alignee.Index(k)
		}
		working := pointcloud.Compose(alignee.Cloud(), idx)

		mask := make([]bool, working.Len())
		for i := range mask {
			mask[i] = true
		}

		for iter := 0; iter < maxIterations; iter++ {
			plane := pointcloud.FitToPoints(working.PositionsIter())

			positions := working.PositionsIter()
			distances := make([]float64, len(positions))
			for k, p := range positions {
				distances[k] = math.Abs(plane.DistanceToPoint(p))
			}

			stdDev, err := stats.StandardDeviation(distances)
			if err != nil {
				return nil, errors.Wrap(err, "align: computing plane-distance standard deviation")
			}
			if stdDev < stdDevThreshold {
				break
			}

			maxDist := 0.0
			maxIdx := 0
			for i, d := range distances {
				if d > maxDist {
					maxDist = d
					maxIdx = i
				}
			}

			localMask := make([]bool, working.Len())
			for i := range localMask {
				localMask[i] = true
			}
			localMask[maxIdx] = false

			i := 0
			for gi, kept := range mask {
				if kept {
					if i == maxIdx {
						mask[gi] = false
						break
					}
					i++
				}
			}

			if err := working.AddMask(localMask); err != nil {
				return nil, err
			}
		}

		return mask, nil
	}
}
