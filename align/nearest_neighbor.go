package align

import "go.viam.com/icp/pointcloud"

// NearestNeighbor matches each alignee point to the closest point of
// target, via a KD-tree built once over target at construction time.
type NearestNeighbor struct {
	tree *pointcloud.KDTree
}

// NewNearestNeighbor builds a NearestNeighbor estimator over target.
func NewNearestNeighbor(target pointcloud.Cloud) *NearestNeighbor {
	return &NearestNeighbor{tree: pointcloud.NewKDTree(target)}
}

// FindCorrespondences implements CorrespondenceEstimator.
func (e *NearestNeighbor) FindCorrespondences(alignee, target *pointcloud.View) (*Correspondences, error) {
	correspondingTarget, distances, err := orderedCorrespondencesNN(e.tree, target.Cloud(), alignee)
	if err != nil {
		return nil, err
	}
	return FromSimpleOneWayCorrespondences(alignee, correspondingTarget, distances, target.Cloud()), nil
}
