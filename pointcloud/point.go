// Package pointcloud provides the ordered point-cloud data model, masked
// views over it, a KD-tree index, and the plane/PCA math utilities that the
// align package builds its ICP pipeline on top of.
package pointcloud

import "github.com/golang/geo/r3"

// Point is a single point of a Cloud: a position, an optional unit-length
// surface normal, and a non-negative weight. Points are value objects with
// no identity beyond their index in an owning Cloud.
type Point struct {
	Pos    r3.Vector
	Norm   *r3.Vector
	Weight float64
}

// NewPoint returns a Point at pos with unit weight and no normal.
func NewPoint(pos r3.Vector) Point {
	return Point{Pos: pos, Weight: 1}
}

// NewPointWithNormal returns a Point at pos with the given unit normal and
// unit weight.
func NewPointWithNormal(pos, norm r3.Vector) Point {
	return Point{Pos: pos, Norm: &norm, Weight: 1}
}

// HasNormal reports whether the point carries a surface normal.
func (p Point) HasNormal() bool {
	return p.Norm != nil
}
