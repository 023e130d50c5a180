package align

import "go.viam.com/icp/pointcloud"

// PointFilter reports whether a point should be kept.
type PointFilter func(pointcloud.Point) bool

// AcceptAll keeps every point.
func AcceptAll() PointFilter {
	return func(pointcloud.Point) bool { return true }
}

// AbovePlanes keeps points strictly on the positive side of every plane
// in planes — useful for discarding points behind a known backdrop or
// support surface before registration.
func AbovePlanes(planes []pointcloud.Plane) PointFilter {
	return func(p pointcloud.Point) bool {
		for _, plane := range planes {
			if plane.DistanceToPoint(p.Pos) <= 0 {
				return false
			}
		}
		return true
	}
}

// ApplyFilter returns the mask produced by applying filter to every point
// of view.
func ApplyFilter(view *pointcloud.View, filter PointFilter) []bool {
	mask := make([]bool, view.Len())
	for k := 0; k < view.Len(); k++ {
		mask[k] = filter(view.At(k))
	}
	return mask
}
