package pointcloud

import (
	"sort"

	"github.com/golang/geo/r3"
	kd "gonum.org/v1/gonum/spatial/kdtree"
)

// kdPoint adapts a Cloud position, tagged with its backing-cloud index, to
// gonum's kdtree.Comparable so the tree can be queried with squared
// Euclidean distance.
type kdPoint struct {
	pos   r3.Vector
	index int
}

func (p kdPoint) Compare(c kd.Comparable, d kd.Dim) float64 {
	q := c.(kdPoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p kdPoint) Dims() int { return 3 }

func (p kdPoint) Distance(c kd.Comparable) float64 {
	q := c.(kdPoint)
	d := p.pos.Sub(q.pos)
	return d.Dot(d)
}

// KDTree is a static spatial index built once over a Cloud, supporting
// nearest-neighbor and k-nearest-neighbor queries by squared Euclidean
// distance. The single-nearest-neighbor query, used by every correspondence
// estimator in the align package, is tree-accelerated; the k-nearest and
// radius queries scan the backing cloud, since nothing in this module's
// hot path needs them to be tree-accelerated.
type KDTree struct {
	cloud Cloud
	tree  *kd.Tree
}

// NewKDTree builds a KD-tree over cloud. The tree is immutable-by-default;
// use Set to insert additional points (e.g. while incrementally building a
// target cloud in tests).
func NewKDTree(cloud Cloud) *KDTree {
	kdt := &KDTree{cloud: cloud}
	if len(cloud) == 0 {
		return kdt
	}

	pts := make(kd.Points, len(cloud))
	for i, p := range cloud {
		pts[i] = kdPoint{pos: p.Pos, index: i}
	}
	kdt.tree = kd.New(pts, true)
	return kdt
}

// Set inserts a new point into both the backing cloud and the tree.
func (kdt *KDTree) Set(pos r3.Vector, norm *r3.Vector) error {
	p := Point{Pos: pos, Norm: norm, Weight: 1}
	index := len(kdt.cloud)
	kdt.cloud = append(kdt.cloud, p)

	node := kdPoint{pos: pos, index: index}
	if kdt.tree == nil {
		kdt.tree = kd.New(kd.Points{node}, true)
		return nil
	}
	kdt.tree.Insert(node, true)
	return nil
}

// Cloud returns the backing cloud, in insertion order.
func (kdt *KDTree) Cloud() Cloud {
	return kdt.cloud
}

// NearestNeighbor returns the nearest point to query, its index in the
// backing cloud, and the squared distance. ok is false when the tree is
// empty.
func (kdt *KDTree) NearestNeighbor(query r3.Vector) (pos r3.Vector, index int, distSq float64, ok bool) {
	if kdt.tree == nil {
		return r3.Vector{}, -1, 0, false
	}

	found, distance := kdt.tree.Nearest(kdPoint{pos: query})
	fp := found.(kdPoint)
	return fp.pos, fp.index, distance, true
}

// Neighbor is one result of a k-nearest or radius query.
type Neighbor struct {
	Pos    r3.Vector
	Index  int
	DistSq float64
}

// KNearestNeighbors returns up to k points nearest to query, sorted
// ascending by squared distance. If includeZeroDistance is false, points
// exactly at query (distance 0, e.g. query itself if it was inserted) are
// excluded.
func (kdt *KDTree) KNearestNeighbors(query r3.Vector, k int, includeZeroDistance bool) []*Neighbor {
	results := kdt.allNeighborsSorted(query, includeZeroDistance)
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// RadiusNearestNeighbors returns every point within radius of query, sorted
// ascending by squared distance. radius is a plain (non-squared) distance.
func (kdt *KDTree) RadiusNearestNeighbors(query r3.Vector, radius float64, includeZeroDistance bool) []*Neighbor {
	results := kdt.allNeighborsSorted(query, includeZeroDistance)
	for i, n := range results {
		if n.Pos.Sub(query).Norm() > radius {
			return results[:i]
		}
	}
	return results
}

func (kdt *KDTree) allNeighborsSorted(query r3.Vector, includeZeroDistance bool) []*Neighbor {
	out := make([]*Neighbor, 0, len(kdt.cloud))
	for i, p := range kdt.cloud {
		d := p.Pos.Sub(query)
		distSq := d.Dot(d)
		if !includeZeroDistance && distSq == 0 {
			continue
		}
		out = append(out, &Neighbor{Pos: p.Pos, Index: i, DistSq: distSq})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].DistSq < out[b].DistSq })
	return out
}
