package align

import "go.viam.com/icp/pointcloud"

// BidirectionalDistance matches alignee points onto target, via a tree
// built once over target at construction, and simultaneously matches
// target points onto alignee, rebuilding a tree over the current alignee
// view on every call since alignee changes every iteration. This doubles
// the correspondence evidence available to outlier rejection compared to
// NearestNeighbor's one-way matching (Dong et al.).
type BidirectionalDistance struct {
	targetTree *pointcloud.KDTree
}

// NewBidirectionalDistance builds a BidirectionalDistance estimator over
// target.
func NewBidirectionalDistance(target pointcloud.Cloud) *BidirectionalDistance {
	return &BidirectionalDistance{targetTree: pointcloud.NewKDTree(target)}
}

// FindCorrespondences implements CorrespondenceEstimator.
func (e *BidirectionalDistance) FindCorrespondences(alignee, target *pointcloud.View) (*Correspondences, error) {
	correspondingTarget, forwardDistances, err := orderedCorrespondencesNN(e.targetTree, target.Cloud(), alignee)
	if err != nil {
		return nil, err
	}

	correspondingAlignee, reverseDistances, err := orderedCorrespondencesNNOverView(alignee, target)
	if err != nil {
		return nil, err
	}

	return &Correspondences{
		AligneePoints:              alignee,
		CorrespondingTargetPoints:  correspondingTarget,
		TargetPoints:               target,
		CorrespondingAligneePoints: correspondingAlignee,
		AligneeToTargetDistances:   forwardDistances,
		TargetToAligneeDistances:   reverseDistances,
	}, nil
}
