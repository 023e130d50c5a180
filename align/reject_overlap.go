package align

import (
	"math"
	"sort"

	"go.viam.com/icp/pointcloud"
)

// RejectOverlappingRatios estimates the overlap fraction between alignee
// and target by golden-section search over S(x)/x^lambda, where S is the
// suffix sum of squared correspondence distances sorted ascending, on the
// bracket [0.68, 1.0] (Dong et al.). It then keeps the closest
// ratio-fraction of correspondences by distance.
func RejectOverlappingRatios(lambda float64) OutlierRejecter {
	return func(alignee, correspondingTarget *pointcloud.View, distances []float64) ([]bool, error) {
		n := len(distances)
		mask := make([]bool, n)
		if n == 0 {
			return mask, nil
		}

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return distances[order[a]] < distances[order[b]] })

		sorted := make([]float64, n)
		for i, o := range order {
			sorted[i] = distances[o]
		}

		objective := func(x float64) float64 {
			return pointcloud.SumSquaredDistances(sorted, x) / math.Pow(x, lambda)
		}
		ratio := pointcloud.GoldenSectionSearch(objective, 0.68, 1.0, 0)

		keep := int(float64(n) * ratio)
		if keep > n {
			keep = n
		}

		for i := 0; i < keep; i++ {
			mask[order[i]] = true
		}
		return mask, nil
	}
}
