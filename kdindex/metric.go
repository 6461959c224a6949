package kdindex

import (
	"math"

	"golang.org/x/exp/constraints"
)

// A Number is a coordinate type that supports arithmetic.
type Number interface {
	constraints.Integer | constraints.Float
}

// SquaredEuclidean is the sum of squared coordinate differences.
//
// It ranks points identically to Euclidean but avoids a square root.
func SquaredEuclidean[T Number](a, b Point[T]) float64 {
	var sum float64
	for i, x := range a {
		d := float64(x) - float64(b[i])
		sum += d * d
	}
	return sum
}

func Euclidean[T Number](a, b Point[T]) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// Manhattan is the sum of absolute coordinate differences.
func Manhattan[T Number](a, b Point[T]) float64 {
	var sum float64
	for i, x := range a {
		sum += math.Abs(float64(x) - float64(b[i]))
	}
	return sum
}

// Chebyshev is the largest absolute coordinate difference.
func Chebyshev[T Number](a, b Point[T]) float64 {
	var res float64
	for i, x := range a {
		res = math.Max(res, math.Abs(float64(x)-float64(b[i])))
	}
	return res
}
