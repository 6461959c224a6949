// Package kdtest provides synthetic datasets and brute-force searches for
// validating and benchmarking kdindex trees.
package kdtest

import (
	"math"
	"math/rand"

	"github.com/unixpickle/kd-index/kdindex"
	"github.com/unixpickle/model3d/model3d"
)

// UniformPoints samples n points uniformly from the cube [0, 1]^dims.
func UniformPoints(r *rand.Rand, n, dims int) []kdindex.Point[float64] {
	res := make([]kdindex.Point[float64], n)
	for i := range res {
		p := make(kdindex.Point[float64], dims)
		for j := range p {
			p[j] = r.Float64()
		}
		res[i] = p
	}
	return res
}

// ClusteredPoints samples n points from numClusters Gaussian blobs with the
// given standard deviation, centered uniformly in [0, 1]^dims.
func ClusteredPoints(
	r *rand.Rand,
	n, dims, numClusters int,
	stddev float64,
) []kdindex.Point[float64] {
	centers := UniformPoints(r, numClusters, dims)
	res := make([]kdindex.Point[float64], n)
	for i := range res {
		center := centers[r.Intn(numClusters)]
		p := make(kdindex.Point[float64], dims)
		for j := range p {
			p[j] = center[j] + r.NormFloat64()*stddev
		}
		res[i] = p
	}
	return res
}

// GridPoints samples n points whose coordinates are integers in
// [0, gridSize). Small grids produce many exact duplicates and ties.
func GridPoints(r *rand.Rand, n, dims, gridSize int) []kdindex.Point[int] {
	res := make([]kdindex.Point[int], n)
	for i := range res {
		p := make(kdindex.Point[int], dims)
		for j := range p {
			p[j] = r.Intn(gridSize)
		}
		res[i] = p
	}
	return res
}

// RandomCoords3D samples n coordinates uniformly within [-1, 1]^3.
//
// This uses model3d's global random source, so seed math/rand for
// reproducible results.
func RandomCoords3D(n int) []model3d.Coord3D {
	res := make([]model3d.Coord3D, n)
	for i := range res {
		res[i] = model3d.NewCoord3DRandBounds(model3d.XYZ(-1, -1, -1), model3d.XYZ(1, 1, 1))
	}
	return res
}

// SphereCoords3D samples n coordinates on the unit sphere. Every coordinate
// is at the same distance from the origin, which stresses tie handling.
func SphereCoords3D(n int) []model3d.Coord3D {
	res := make([]model3d.Coord3D, n)
	for i := range res {
		res[i] = model3d.NewCoord3DRandUnit()
	}
	return res
}

// Jitter returns a copy of p with Gaussian noise added to every coordinate.
func Jitter(r *rand.Rand, p kdindex.Point[float64], stddev float64) kdindex.Point[float64] {
	res := make(kdindex.Point[float64], len(p))
	for i, x := range p {
		res[i] = x + r.NormFloat64()*stddev
	}
	return res
}

// Quantile returns the q-th quantile of the values, which need not be sorted.
// It is used to pick radii which capture a predictable fraction of points.
func Quantile(values []float64, q float64) float64 {
	sorted := append([]float64{}, values...)
	sortFloats(sorted)
	idx := int(math.Round(q * float64(len(sorted)-1)))
	return sorted[idx]
}
