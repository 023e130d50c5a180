package pointcloud

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
)

// View is a borrowed, read-only handle into a backing Cloud: an ordered list
// of plain-cloud indices (the active indices). A View owns no points; its
// backing Cloud must outlive it. Duplicate indices are permitted after
// Extend, but are never produced by Mask/Order operations alone.
type View struct {
	cloud Cloud
	idx   []int
}

// NewView returns a View over every point of cloud, in cloud order.
func NewView(cloud Cloud) *View {
	idx := make([]int, len(cloud))
	for i := range idx {
		idx[i] = i
	}
	return &View{cloud: cloud, idx: idx}
}

// WithMask returns NewView(cloud) with mask applied.
func WithMask(cloud Cloud, mask []bool) (*View, error) {
	v := NewView(cloud)
	if err := v.AddMask(mask); err != nil {
		return nil, err
	}
	return v, nil
}

// Cloud returns the backing cloud this view borrows from.
func (v *View) Cloud() Cloud {
	return v.cloud
}

// Len returns the number of active indices.
func (v *View) Len() int {
	return len(v.idx)
}

// IsEmpty reports whether the view has no active indices.
func (v *View) IsEmpty() bool {
	return len(v.idx) == 0
}

// AddMask filters the active indices in place, keeping exactly the
// positions where mask[k] is true. len(mask) must equal v.Len().
func (v *View) AddMask(mask []bool) error {
	if len(mask) != len(v.idx) {
		return errors.Errorf("mask length %d does not match view length %d", len(mask), len(v.idx))
	}
	kept := v.idx[:0:0]
	for k, keep := range mask {
		if keep {
			kept = append(kept, v.idx[k])
		}
	}
	v.idx = kept
	return nil
}

// AddOrder permutes the active indices so the new sequence is
// idx[perm[0]], idx[perm[1]], .... Every perm[k] must be < v.Len().
func (v *View) AddOrder(perm []int) error {
	reordered := make([]int, len(perm))
	for k, p := range perm {
		if p < 0 || p >= len(v.idx) {
			return errors.Errorf("order index %d out of range for view of length %d", p, len(v.idx))
		}
		reordered[k] = v.idx[p]
	}
	v.idx = reordered
	return nil
}

// SetEmpty clears the active indices.
func (v *View) SetEmpty() {
	v.idx = nil
}

// Extend appends other's active indices to v's. The caller guarantees both
// views share the same backing cloud; this is not checked.
func (v *View) Extend(other *View) {
	v.idx = append(v.idx, other.idx...)
}

// Decompose returns the raw active-index list, consuming the view.
func (v *View) Decompose() []int {
	return v.idx
}

// Compose rebuilds a View from a backing cloud and a raw index list, such
// that Compose(cloud, v.Decompose()) is identical to v.
func Compose(cloud Cloud, idx []int) *View {
	return &View{cloud: cloud, idx: idx}
}

// At returns the k-th active point.
func (v *View) At(k int) Point {
	return v.cloud[v.idx[k]]
}

// Index returns the plain-cloud index of the k-th active point.
func (v *View) Index(k int) int {
	return v.idx[k]
}

// Points returns the active points, in view order.
func (v *View) Points() []Point {
	out := make([]Point, len(v.idx))
	for k, i := range v.idx {
		out[k] = v.cloud[i]
	}
	return out
}

// PositionsIter returns the bare positions of the active points, in order.
func (v *View) PositionsIter() []r3.Vector {
	out := make([]r3.Vector, len(v.idx))
	for k, i := range v.idx {
		out[k] = v.cloud[i].Pos
	}
	return out
}

// SortByKey stably sorts the active indices by a key derived from the
// pointed-to Point.
func (v *View) SortByKey(key func(Point) float64) {
	sort.SliceStable(v.idx, func(a, b int) bool {
		return key(v.cloud[v.idx[a]]) < key(v.cloud[v.idx[b]])
	})
}
