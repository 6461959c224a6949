package kdindex

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// A Tree is an immutable KD-tree stored as a flat array.
//
// The node at position i has children at LeftChildIndex(i) and
// RightChildIndex(i), and splits space along axis NodeDepth(i) % Dims().
// Points in the left subtree are less than or equal to the node on that axis,
// and points in the right subtree are greater than or equal to it.
//
// A Tree may be queried from any number of Goroutines at once.
type Tree[T constraints.Ordered, F constraints.Float] struct {
	dims       int
	nodes      []Point[T]
	indices    []int
	count      int
	depth      int
	metric     Metric[T, F]
	lowerBound F
	upperBound F
}

// Dims returns the dimensionality of the indexed points.
func (t *Tree[T, F]) Dims() int {
	return t.dims
}

// Len returns the number of indexed points.
func (t *Tree[T, F]) Len() int {
	return t.count
}

// Depth returns the number of levels in the tree.
func (t *Tree[T, F]) Depth() int {
	return t.depth
}

// Nodes returns the flat node array.
// Positions without a node hold nil.
//
// The result must not be modified.
func (t *Tree[T, F]) Nodes() []Point[T] {
	return t.nodes
}

// Indices returns, for each position in Nodes(), the index of the point in
// the slice passed at construction, or -1 for an empty position.
//
// The result must not be modified.
func (t *Tree[T, F]) Indices() []int {
	return t.indices
}

// Axis returns the splitting axis of the node at array position i.
func (t *Tree[T, F]) Axis(i int) int {
	return NodeDepth(i) % t.dims
}

// Metric returns the distance function used by the tree.
func (t *Tree[T, F]) Metric() Metric[T, F] {
	return t.metric
}

func (t *Tree[T, F]) hasNode(i int) bool {
	return i < len(t.nodes) && t.nodes[i] != nil
}

func (t *Tree[T, F]) String() string {
	return t.nodeString(0)
}

func (t *Tree[T, F]) nodeString(i int) string {
	if !t.hasNode(i) {
		return "empty"
	}
	left, right := LeftChildIndex(i), RightChildIndex(i)
	if !t.hasNode(left) && !t.hasNode(right) {
		return fmt.Sprintf("leaf %v", t.nodes[i])
	}
	return fmt.Sprintf(
		"split %v on axis %d {\n%s\n} {\n%s\n}",
		t.nodes[i],
		t.Axis(i),
		indentText(t.nodeString(left)),
		indentText(t.nodeString(right)),
	)
}

func indentText(text string) string {
	lines := strings.Split(text, "\n")
	for i, x := range lines {
		lines[i] = "  " + x
	}
	return strings.Join(lines, "\n")
}
