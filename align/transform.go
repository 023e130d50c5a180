// Package align implements the iterative-closest-point registration
// pipeline: correspondence estimation, outlier rejection, transform
// estimation, and the convergence-checked driver loop that ties them
// together, all built on top of the pointcloud package's data model.
package align

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// Transform is a 4x4 homogeneous transform: p' = Linear*p + Translation.
// Isometry, similarity, affine, and non-uniform scale are, as far as this
// type is concerned, just different constraints on the upper-left 3x3
// block; nothing downstream of a transform estimator needs to know which
// family produced it.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// NewFromLinearAndTranslation builds a transform from a 3x3 linear map and
// a translation vector.
func NewFromLinearAndTranslation(linear *mat.Dense, translation r3.Vector) Transform {
	m := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, linear.At(row, col))
		}
	}
	m.Set(0, 3, translation.X)
	m.Set(1, 3, translation.Y)
	m.Set(2, 3, translation.Z)
	return Transform{m: m}
}

// ApplyPoint maps a position through the transform.
func (t Transform) ApplyPoint(p r3.Vector) r3.Vector {
	v := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// ApplyVector maps a direction (e.g. a surface normal) through the linear
// part only, ignoring translation.
func (t Transform) ApplyVector(v r3.Vector) r3.Vector {
	out := t.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// Then composes step after t: applying the result is equivalent to
// applying t, then applying step. This is how the ICP driver accumulates
// its running transform across iterations.
func (t Transform) Then(step Transform) Transform {
	return Transform{m: step.m.Mul4(t.m)}
}

// Translation returns the transform's translation component.
func (t Transform) Translation() r3.Vector {
	return r3.Vector{X: t.m.At(0, 3), Y: t.m.At(1, 3), Z: t.m.At(2, 3)}
}

// Linear returns the transform's 3x3 linear component.
func (t Transform) Linear() *mat.Dense {
	linear := mat.NewDense(3, 3, nil)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			linear.Set(row, col, t.m.At(row, col))
		}
	}
	return linear
}

// ApplyToCloud returns a copy of cloud with every point mapped through the
// transform. Normals are mapped through the linear part only and
// renormalized.
func (t Transform) ApplyToCloud(cloud pointcloud.Cloud) pointcloud.Cloud {
	out := make(pointcloud.Cloud, len(cloud))
	for i, p := range cloud {
		out[i] = p
		out[i].Pos = t.ApplyPoint(p.Pos)
		if p.HasNormal() {
			n := t.ApplyVector(*p.Norm).Normalize()
			out[i].Norm = &n
		}
	}
	return out
}

func identityLinear() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func applyLinear(linear *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: linear.At(0, 0)*v.X + linear.At(0, 1)*v.Y + linear.At(0, 2)*v.Z,
		Y: linear.At(1, 0)*v.X + linear.At(1, 1)*v.Y + linear.At(1, 2)*v.Z,
		Z: linear.At(2, 0)*v.X + linear.At(2, 1)*v.Y + linear.At(2, 2)*v.Z,
	}
}

func vecComponent(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func matColumn(m *mat.Dense, k int) r3.Vector {
	return r3.Vector{X: m.At(0, k), Y: m.At(1, k), Z: m.At(2, k)}
}

func positions(points []pointcloud.Point) []r3.Vector {
	out := make([]r3.Vector, len(points))
	for i, p := range points {
		out[i] = p.Pos
	}
	return out
}
