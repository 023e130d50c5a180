package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Plane is the surface normal·x - constant = 0 in ℝ³. Normal need not be
// unit-length for every constructor; DistanceToPoint uses the raw dot
// product regardless.
type Plane struct {
	Normal   r3.Vector
	Constant float64
}

// NewPlaneFromNormalAndPoint builds the plane through coplanarPoint with the
// given normal.
func NewPlaneFromNormalAndPoint(normal, coplanarPoint r3.Vector) Plane {
	return Plane{Normal: normal, Constant: normal.Dot(coplanarPoint)}
}

// DistanceToPoint returns the signed distance from the plane to point:
// positive in the direction of Normal, negative on the other side.
func (p Plane) DistanceToPoint(point r3.Vector) float64 {
	return p.Normal.Dot(point) - p.Constant
}

// Pivot returns a point on the plane, valid when Normal is unit-length.
func (p Plane) Pivot() r3.Vector {
	return p.Normal.Mul(p.Constant)
}

// SetPivot recomputes Constant so the plane passes through pivot, keeping
// Normal unchanged.
func (p *Plane) SetPivot(pivot r3.Vector) {
	p.Constant = p.Normal.Dot(pivot)
}

// FitToPoints fits a plane to points by SVD of the demeaned coordinate
// matrix: the normal is the left-singular vector of the smallest singular
// value. Panics if the SVD fails to converge — a malformed input (e.g. fewer
// than 3 points) is a caller contract violation per this package's error
// model.
func FitToPoints(points []r3.Vector) Plane {
	centroid := Centroid(points)
	demeaned := DemeanMatrix(points, centroid)

	var svd mat.SVD
	if !svd.Factorize(demeaned, mat.SVDThin) {
		panic(errors.New("pointcloud: SVD failed while fitting plane to points"))
	}

	var u mat.Dense
	svd.UTo(&u)

	normal := r3.Vector{X: u.At(0, 2), Y: u.At(1, 2), Z: u.At(2, 2)}.Normalize()

	return NewPlaneFromNormalAndPoint(normal, centroid)
}

// FitToCloudWithoutOutliers iteratively fits a plane to view by SVD,
// dropping on each pass every point whose distance exceeds nSigma
// standard deviations, until either the standard deviation of
// distances falls below stdDevThreshold or maxIterations passes have run.
// The mask returned aligns with view's ordering at call time; view is left
// masked down to whatever points survived.
func FitToCloudWithoutOutliers(view *View, nSigma float64, maxIterations int, stdDevThreshold float64) (Plane, []bool, error) {
	mask := make([]bool, view.Len())
	for i := range mask {
		mask[i] = true
	}

	var plane Plane

	for iter := 0; iter < maxIterations; iter++ {
		plane = FitToPoints(view.PositionsIter())

		distances := make([]float64, view.Len())
		for k, p := range view.PositionsIter() {
			distances[k] = math.Abs(plane.DistanceToPoint(p))
		}

		stdDev, err := stats.StandardDeviation(distances)
		if err != nil {
			return plane, mask, errors.Wrap(err, "pointcloud: computing distance standard deviation")
		}
		if stdDev < stdDevThreshold {
			break
		}

		localMask := make([]bool, view.Len())
		for i := range localMask {
			localMask[i] = true
		}

		kept := make([]int, 0, view.Len())
		for gi, keep := range mask {
			if keep {
				kept = append(kept, gi)
			}
		}

		for i, d := range distances {
			if d > stdDev*nSigma {
				localMask[i] = false
				mask[kept[i]] = false
			}
		}

		if err := view.AddMask(localMask); err != nil {
			return plane, mask, err
		}
	}

	return plane, mask, nil
}
