package kdindex

import "golang.org/x/exp/constraints"

// A Point is a fixed-length list of coordinates.
//
// A nil Point inside a Tree's node array marks a position with no node.
type Point[T constraints.Ordered] []T

// Dims returns the number of coordinates in p.
func (p Point[T]) Dims() int {
	return len(p)
}

// hasNaN returns true if any coordinate is unordered with respect to itself.
func hasNaN[T constraints.Ordered](p Point[T]) bool {
	for _, c := range p {
		if c != c {
			return true
		}
	}
	return false
}

// A Metric computes a non-negative distance between two points of equal
// dimension.
//
// Search pruning measures the distance from a target to a splitting plane by
// calling the metric on the target and its projection onto that plane, so the
// metric must not shrink when a single coordinate difference grows. Every
// Minkowski distance (and its square) satisfies this.
type Metric[T constraints.Ordered, F constraints.Float] func(a, b Point[T]) F

// A Neighbor is a search result.
type Neighbor[T constraints.Ordered, F constraints.Float] struct {
	Point Point[T]

	// Index is the position of Point in the slice passed at construction.
	Index int

	Distance F
}

// LeftChildIndex returns the array position of the left child of the node at
// position i.
func LeftChildIndex(i int) int {
	return 2*i + 1
}

// RightChildIndex returns the array position of the right child of the node
// at position i.
func RightChildIndex(i int) int {
	return 2*i + 2
}

// ParentIndex returns the array position of the parent of the node at
// position i. The root has no parent, and ParentIndex(0) is 0.
func ParentIndex(i int) int {
	return (i - 1) / 2
}

// NodeDepth returns the depth of array position i, where the root is at depth
// zero.
func NodeDepth(i int) int {
	var depth int
	for i > 0 {
		i = ParentIndex(i)
		depth++
	}
	return depth
}
