package align

import (
	"github.com/pkg/errors"
	"go.viam.com/icp/pointcloud"
	"gonum.org/v1/gonum/mat"
)

// EstimateAffine estimates a general 3x3 linear map and translation
// (rotation, scale, and shear all folded into one matrix) by
// least-squares: A minimizes sum |A*(alignee-alCentroid) -
// (target-taCentroid)|^2, given by A = M2^-1 * M1 where
// M1 = sum t_hat*a_hat^T and M2 = sum a_hat*a_hat^T.
func EstimateAffine(alignee, target []pointcloud.Point) (Transform, error) {
	n := len(alignee)
	if n != len(target) {
		return Transform{}, errors.Errorf("align: affine estimation requires equal-length point sets, got %d and %d", n, len(target))
	}

	alPositions := positions(alignee)
	taPositions := positions(target)
	alCentroid := pointcloud.Centroid(alPositions)
	taCentroid := pointcloud.Centroid(taPositions)

	m1 := mat.NewDense(3, 3, nil)
	m2 := mat.NewDense(3, 3, nil)
	for k := 0; k < n; k++ {
		a := alPositions[k].Sub(alCentroid)
		t := taPositions[k].Sub(taCentroid)
		for row := 0; row < 3; row++ {
			tRow := vecComponent(t, row)
			aRow := vecComponent(a, row)
			for col := 0; col < 3; col++ {
				aCol := vecComponent(a, col)
				m1.Set(row, col, m1.At(row, col)+tRow*aCol)
				m2.Set(row, col, m2.At(row, col)+aRow*aCol)
			}
		}
	}

	var linearDense mat.Dense
	if err := linearDense.Solve(m2, m1); err != nil {
		return Transform{}, errors.Wrap(err, "align: affine normal equations are singular")
	}
	linear := &linearDense

	translation := taCentroid.Sub(applyLinear(linear, alCentroid))
	return NewFromLinearAndTranslation(linear, translation), nil
}
