package kdindex

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

const DefaultMinForkSize = 2048

// A Builder holds the configuration for constructing a Tree.
type Builder[T constraints.Ordered, F constraints.Float] struct {
	// Dims is the number of coordinates in every point.
	Dims int

	// Metric is the distance function for searches.
	Metric Metric[T, F]

	// LowerBound is the smallest distance Metric can return. Once a
	// nearest-neighbor search has found enough points this close to the
	// target, it stops early.
	//
	// The zero value is correct for any non-negative metric.
	LowerBound F

	// UpperBound is the largest distance a search result may have. Points
	// farther than this are never returned by nearest-neighbor searches.
	//
	// If zero, +Inf is used.
	UpperBound F

	// Concurrency is the maximum number of Goroutines used to build
	// subtrees. If 0 or 1, the tree is built on the calling Goroutine.
	// If negative, GOMAXPROCS is used.
	Concurrency int

	// MinForkSize is the smallest number of points for which a subtree
	// may be handed to another Goroutine.
	// If zero, DefaultMinForkSize is used.
	MinForkSize int
}

// New builds a tree over points with the default configuration.
func New[T constraints.Ordered, F constraints.Float](
	points []Point[T],
	dims int,
	metric Metric[T, F],
) (*Tree[T, F], error) {
	b := &Builder[T, F]{Dims: dims, Metric: metric}
	return b.Build(points)
}

// Build constructs a tree over a copy of points.
//
// Each node is the exact median of its subtree along the splitting axis, so
// the tree depth is always ceil(log2(n+1)).
//
// When coordinates tie along the splitting axis, points are ordered by their
// remaining coordinates (starting after the axis and wrapping around), and
// then by their index in points. The median is element len/2 of this order,
// so the left subtree is never smaller than the right one.
func (b *Builder[T, F]) Build(points []Point[T]) (*Tree[T, F], error) {
	if err := b.validate(points); err != nil {
		return nil, err
	}

	lower, upper := b.LowerBound, b.UpperBound
	if upper == 0 {
		upper = F(math.Inf(1))
	}

	// Pack all coordinates in one array to avoid many tiny allocations.
	n := len(points)
	storage := make([]T, n*b.Dims)
	owned := make([]Point[T], n)
	for i, p := range points {
		owned[i] = storage[i*b.Dims : (i+1)*b.Dims : (i+1)*b.Dims]
		copy(owned[i], p)
	}

	depth := bits.Len(uint(n))
	size := (1 << depth) - 1
	t := &Tree[T, F]{
		dims:       b.Dims,
		nodes:      make([]Point[T], size),
		indices:    make([]int, size),
		count:      n,
		metric:     b.Metric,
		lowerBound: lower,
		upperBound: upper,
	}
	for i := range t.indices {
		t.indices[i] = -1
	}

	minFork := b.MinForkSize
	if minFork == 0 {
		minFork = DefaultMinForkSize
	}
	state := &buildState[T, F]{
		Tree:        t,
		Points:      owned,
		Order:       make([]int, n),
		Queue:       newForkQueue[int](b.Concurrency),
		MinForkSize: minFork,
	}
	for i := range state.Order {
		state.Order[i] = i
	}
	t.depth = state.Queue.Run(func() int {
		return state.Build(0, 0, n, 0)
	})
	if t.depth != depth {
		panic("unexpected tree depth")
	}
	return t, nil
}

func (b *Builder[T, F]) validate(points []Point[T]) error {
	if b.Dims <= 0 {
		return invalidInput("build", "dimensions must be positive, got %d", b.Dims)
	}
	if len(points) == 0 {
		return invalidInput("build", "no points")
	}
	if b.Metric == nil {
		return invalidInput("build", "nil metric")
	}
	for i, p := range points {
		if len(p) != b.Dims {
			return invalidInput("build", "point %d has %d coordinates, expected %d",
				i, len(p), b.Dims)
		}
		if hasNaN(p) {
			return invalidInput("build", "point %d has a NaN coordinate", i)
		}
	}
	if math.IsNaN(float64(b.LowerBound)) || math.IsNaN(float64(b.UpperBound)) {
		return invalidInput("build", "NaN distance bound")
	}
	if b.UpperBound != 0 && b.LowerBound > b.UpperBound {
		return invalidInput("build", "lower bound %v exceeds upper bound %v",
			b.LowerBound, b.UpperBound)
	}
	return nil
}

type buildState[T constraints.Ordered, F constraints.Float] struct {
	Tree        *Tree[T, F]
	Points      []Point[T]
	Order       []int
	Queue       *forkQueue[int]
	MinForkSize int
}

// Build places the median of Order[start:end] at array position pos and
// recursively builds both subtrees, returning the depth of the subtree.
//
// Sibling calls operate on disjoint ranges of Order and disjoint positions of
// the node array, so they may run concurrently.
func (b *buildState[T, F]) Build(pos, start, end, depth int) int {
	if start == end {
		return 0
	}
	axis := depth % b.Tree.dims
	sub := b.Order[start:end]
	slices.SortFunc(sub, func(i1, i2 int) bool {
		return b.less(i1, i2, axis)
	})
	mid := start + (end-start)/2
	b.Tree.nodes[pos] = b.Points[b.Order[mid]]
	b.Tree.indices[pos] = b.Order[mid]

	buildLeft := func() int {
		return b.Build(LeftChildIndex(pos), start, mid, depth+1)
	}
	buildRight := func() int {
		return b.Build(RightChildIndex(pos), mid+1, end, depth+1)
	}
	var leftDepth, rightDepth int
	if end-start < b.MinForkSize {
		leftDepth, rightDepth = buildLeft(), buildRight()
	} else {
		leftDepth, rightDepth = b.Queue.Fork(buildLeft, buildRight)
	}
	if rightDepth > leftDepth {
		return rightDepth + 1
	}
	return leftDepth + 1
}

// less orders two input points starting at the given axis, cycling through
// the other axes to break ties, and finally falling back on input order.
func (b *buildState[T, F]) less(i1, i2 int, axis int) bool {
	p1, p2 := b.Points[i1], b.Points[i2]
	dims := len(p1)
	for j := 0; j < dims; j++ {
		a := (axis + j) % dims
		if p1[a] != p2[a] {
			return p1[a] < p2[a]
		}
	}
	return i1 < i2
}
