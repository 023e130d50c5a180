package pointcloud

import (
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// PCA computes the principal component analysis of points: the
// eigendecomposition of D·Dᵀ where D is the demeaned coordinate matrix.
// Eigenvectors are returned sorted by eigenvalue descending.
func PCA(points []r3.Vector) []r3.Vector {
	return PCAWithCentroid(points, Centroid(points))
}

// PCAWithCentroid is PCA with a precomputed centroid, avoiding a second pass
// over points when the caller already has it.
func PCAWithCentroid(points []r3.Vector, centroid r3.Vector) []r3.Vector {
	demeaned := DemeanMatrix(points, centroid)

	var covariance mat.Dense
	covariance.Mul(demeaned, demeaned.T())

	var sym mat.SymDense
	sym.CopySym(&covariance)

	var eigen mat.EigenSym
	if !eigen.Factorize(&sym, true) {
		return nil
	}

	values := eigen.Values(nil)
	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	out := make([]r3.Vector, len(order))
	for rank, col := range order {
		out[rank] = r3.Vector{
			X: vectors.At(0, col),
			Y: vectors.At(1, col),
			Z: vectors.At(2, col),
		}
	}
	return out
}
