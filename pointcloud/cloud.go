package pointcloud

import "github.com/golang/geo/r3"

// Cloud is an ordered, fixed-dimension sequence of Points. The order is
// meaningful and stable: every MaskedView references points of a Cloud by
// index into this slice.
type Cloud []Point

// New returns an empty Cloud.
func New() Cloud {
	return Cloud{}
}

// FromVectors builds a Cloud of unit-weight, normal-less points from a plain
// slice of positions.
func FromVectors(positions []r3.Vector) Cloud {
	cloud := make(Cloud, len(positions))
	for i, p := range positions {
		cloud[i] = NewPoint(p)
	}
	return cloud
}

// ToPointCloud is satisfied by any type a CorrespondenceEstimator can be
// built over: a Cloud itself, or a richer type (e.g. a loaded mesh) able to
// produce one.
type ToPointCloud interface {
	ToPointCloud() Cloud
}

// ToPointCloud implements ToPointCloud trivially for Cloud itself, so any
// Cloud can be passed wherever a ToPointCloud is expected.
func (c Cloud) ToPointCloud() Cloud {
	return c
}

// Clone returns a deep-enough copy of c: the Point values (and the normal
// they point to, if any) are copied, so mutating the clone's points never
// affects c.
func (c Cloud) Clone() Cloud {
	clone := make(Cloud, len(c))
	for i, p := range c {
		if p.Norm != nil {
			n := *p.Norm
			p.Norm = &n
		}
		clone[i] = p
	}
	return clone
}

// Positions returns the bare positions of every point in c, in order.
func (c Cloud) Positions() []r3.Vector {
	out := make([]r3.Vector, len(c))
	for i, p := range c {
		out[i] = p.Pos
	}
	return out
}
