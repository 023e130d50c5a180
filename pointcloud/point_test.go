package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPoint(t *testing.T) {
	p := NewPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.Pos, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.HasNormal(), test.ShouldBeFalse)
	test.That(t, p.Weight, test.ShouldEqual, 1.0)
}

func TestNewPointWithNormal(t *testing.T) {
	pos := r3.Vector{X: 1, Y: 0, Z: 0}
	norm := r3.Vector{X: 0, Y: 0, Z: 1}
	p := NewPointWithNormal(pos, norm)
	test.That(t, p.HasNormal(), test.ShouldBeTrue)
	test.That(t, *p.Norm, test.ShouldResemble, norm)
}
