package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Centroid returns the arithmetic mean of the given positions. An empty
// input returns the zero vector.
func Centroid(points []r3.Vector) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// DemeanMatrix returns a 3×n matrix whose k-th column is points[k] - centroid.
func DemeanMatrix(points []r3.Vector, centroid r3.Vector) *mat.Dense {
	m := mat.NewDense(3, len(points), nil)
	for k, p := range points {
		d := p.Sub(centroid)
		m.Set(0, k, d.X)
		m.Set(1, k, d.Y)
		m.Set(2, k, d.Z)
	}
	return m
}

const goldenSectionDefaultTol = 1e-5

// GoldenSectionSearch finds the minimizer of the (assumed unimodal) function
// f on [a, b] to within tol (default 1e-5 when tol <= 0). Both interior
// points are recomputed every step to avoid precision drift. Non-unimodal f
// is not detected; the search simply returns a local minimum in the bracket.
func GoldenSectionSearch(f func(float64) float64, a, b, tol float64) float64 {
	if tol <= 0 {
		tol = goldenSectionDefaultTol
	}

	const goldenRatio = 1.6180339887498949 // (sqrt(5) + 1) / 2

	lo, hi := a, b
	for math.Abs(hi-lo) > tol {
		c := hi - (hi-lo)/goldenRatio
		d := lo + (hi-lo)/goldenRatio

		if f(c) < f(d) {
			hi = d
		} else {
			lo = c
		}
	}

	return lo
}

// SumSquaredDistances sums a suffix of distances, where the suffix length is
// floor(len(distances) * x) + 1 (x defaults to 1). Callers that want the sum
// over the smallest values must pre-sort distances descending; callers
// passing a cloud's raw (ascending-sorted) distances get a sum over the
// largest values in the tail.
func SumSquaredDistances(distances []float64, x float64) float64 {
	if x <= 0 {
		x = 1
	}

	n := len(distances)
	limit := float64(n) * x

	var sum float64
	for i := 0; i < n; i++ {
		if float64(i) > limit {
			break
		}
		sum += distances[n-1-i]
	}
	return sum
}
