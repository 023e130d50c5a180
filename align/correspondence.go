package align

import (
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
)

// Correspondences holds both matching directions an estimator may
// produce: alignee points matched forward onto target, and (for
// bidirectional estimators) target points matched backward onto alignee.
// One-way estimators leave the backward fields as empty views.
type Correspondences struct {
	AligneePoints              *pointcloud.View
	CorrespondingTargetPoints  *pointcloud.View
	TargetPoints               *pointcloud.View
	CorrespondingAligneePoints *pointcloud.View
	AligneeToTargetDistances   []float64
	TargetToAligneeDistances   []float64
}

// CorrespondenceEstimator matches points of alignee to points of target.
type CorrespondenceEstimator interface {
	FindCorrespondences(alignee, target *pointcloud.View) (*Correspondences, error)
}

// FromSimpleOneWayCorrespondences builds a Correspondences value for
// estimators that only match alignee points forward onto target; the
// backward-direction fields are left as empty views over the same clouds.
func FromSimpleOneWayCorrespondences(
	alignee, correspondingTarget *pointcloud.View,
	distances []float64,
	targetCloud pointcloud.Cloud,
) *Correspondences {
	return &Correspondences{
		AligneePoints:              alignee,
		CorrespondingTargetPoints:  correspondingTarget,
		TargetPoints:               pointcloud.Compose(targetCloud, nil),
		CorrespondingAligneePoints: pointcloud.Compose(alignee.Cloud(), nil),
		AligneeToTargetDistances:   distances,
		TargetToAligneeDistances:   nil,
	}
}

// orderedCorrespondencesNN queries tree (built once over targetCloud) for
// every point of source, returning a view over targetCloud in
// correspondence order alongside the squared distances.
func orderedCorrespondencesNN(tree *pointcloud.KDTree, targetCloud pointcloud.Cloud, source *pointcloud.View) (*pointcloud.View, []float64, error) {
	n := source.Len()
	idx := make([]int, n)
	distances := make([]float64, n)
	for k := 0; k < n; k++ {
		_, foundIdx, distSq, ok := tree.NearestNeighbor(source.At(k).Pos)
		if !ok {
			return nil, nil, errors.New("align: nearest-neighbor query against an empty cloud")
		}
		idx[k] = foundIdx
		distances[k] = distSq
	}
	return pointcloud.Compose(targetCloud, idx), distances, nil
}

// orderedCorrespondencesNNOverView builds a fresh KD-tree over view's
// active points and queries it for every point of source, translating the
// tree's local indices back to view's backing-cloud indices. Used where
// the queried side changes every call (e.g. the bidirectional estimator's
// reverse pass against the current alignee).
func orderedCorrespondencesNNOverView(view, source *pointcloud.View) (*pointcloud.View, []float64, error) {
	tree := pointcloud.NewKDTree(pointcloud.Cloud(view.Points()))

	n := source.Len()
	idx := make([]int, n)
	distances := make([]float64, n)
	for k := 0; k < n; k++ {
		_, localIdx, distSq, ok := tree.NearestNeighbor(source.At(k).Pos)
		if !ok {
			return nil, nil, errors.New("align: nearest-neighbor query against an empty view")
		}
		idx[k] = view.Index(localIdx)
		distances[k] = distSq
	}
	return pointcloud.Compose(view.Cloud(), idx), distances, nil
}
