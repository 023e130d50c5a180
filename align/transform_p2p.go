package align

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// EstimateIsometryPointToPlane estimates a rotation and translation that
// minimizes the point-to-plane distance between alignee and target's
// tangent planes (Low 2004; simpleICP), rather than raw point distance.
// It linearizes the rotation as a small-angle vector, solves the
// resulting weighted 6x6 normal equations, then projects the small-angle
// matrix back onto a proper rotation via quaternion normalization.
func EstimateIsometryPointToPlane(alignee, target []pointcloud.Point) (Transform, error) {
	n := len(alignee)
	if n != len(target) {
		return Transform{}, errors.Errorf("align: point-to-plane isometry estimation requires equal-length point sets, got %d and %d", n, len(target))
	}

	ata := mat.NewDense(6, 6, nil)
	atb := mat.NewDense(6, 1, nil)

	for k := 0; k < n; k++ {
		if !target[k].HasNormal() {
			return Transform{}, errors.New("align: point-to-plane isometry estimation requires target normals")
		}
		p := alignee[k].Pos
		normal := target[k].Norm.Mul(alignee[k].Weight * target[k].Weight)
		cross := p.Cross(normal)
		row := [6]float64{cross.X, cross.Y, cross.Z, normal.X, normal.Y, normal.Z}
		b := normal.Dot(target[k].Pos.Sub(p))

		for i := 0; i < 6; i++ {
			atb.Set(i, 0, atb.At(i, 0)+row[i]*b)
			for j := 0; j < 6; j++ {
				ata.Set(i, j, ata.At(i, j)+row[i]*row[j])
			}
		}
	}

	var x mat.Dense
	if err := x.Solve(ata, atb); err != nil {
		return Transform{}, errors.Wrap(err, "align: point-to-plane normal equations are singular")
	}

	alpha, beta, gamma := x.At(0, 0), x.At(1, 0), x.At(2, 0)
	tx, ty, tz := x.At(3, 0), x.At(4, 0), x.At(5, 0)

	small := mgl64.Ident4()
	small.Set(0, 0, 1)
	small.Set(0, 1, -gamma)
	small.Set(0, 2, beta)
	small.Set(1, 0, gamma)
	small.Set(1, 1, 1)
	small.Set(1, 2, -alpha)
	small.Set(2, 0, -beta)
	small.Set(2, 1, alpha)
	small.Set(2, 2, 1)

	rotation := mgl64.Mat4ToQuat(small).Mat4()

	linear := mat.NewDense(3, 3, nil)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			linear.Set(row, col, rotation.At(row, col))
		}
	}

	return NewFromLinearAndTranslation(linear, r3.Vector{X: tx, Y: ty, Z: tz}), nil
}
