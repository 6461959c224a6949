package kdindex

import (
	"math"

	"github.com/unixpickle/essentials"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// NearestNeighbors returns the k points closest to target, sorted by
// ascending distance.
//
// If k exceeds Len(), all points within the tree's upper bound are returned.
// The returned points are owned by the tree and must not be modified.
func (t *Tree[T, F]) NearestNeighbors(target Point[T], k int) ([]Point[T], error) {
	neighbors, err := t.nearest("nearest neighbors", target, k)
	if err != nil {
		return nil, err
	}
	return neighborPoints(neighbors), nil
}

// NearestNeighborsWithDistances is like NearestNeighbors, but also reports
// the distance and input index of every result.
func (t *Tree[T, F]) NearestNeighborsWithDistances(
	target Point[T],
	k int,
) ([]Neighbor[T, F], error) {
	return t.nearest("nearest neighbors", target, k)
}

// Nearest returns the single closest point to target.
//
// If no point is within the tree's upper bound, the result has a nil Point,
// an Index of -1, and an infinite Distance.
func (t *Tree[T, F]) Nearest(target Point[T]) (Neighbor[T, F], error) {
	neighbors, err := t.nearest("nearest", target, 1)
	if err != nil {
		return Neighbor[T, F]{}, err
	}
	if len(neighbors) == 0 {
		return Neighbor[T, F]{Index: -1, Distance: F(math.Inf(1))}, nil
	}
	return neighbors[0], nil
}

// PointsWithinRadius returns every point whose distance to target is at most
// radius, sorted by ascending distance.
//
// The returned points are owned by the tree and must not be modified.
func (t *Tree[T, F]) PointsWithinRadius(target Point[T], radius F) ([]Point[T], error) {
	neighbors, err := t.NeighborsWithinRadius(target, radius)
	if err != nil {
		return nil, err
	}
	return neighborPoints(neighbors), nil
}

// NeighborsWithinRadius is like PointsWithinRadius, but also reports the
// distance and input index of every result.
//
// Results at equal distances are ordered by input index.
func (t *Tree[T, F]) NeighborsWithinRadius(
	target Point[T],
	radius F,
) ([]Neighbor[T, F], error) {
	const op = "points within radius"
	if err := t.checkTarget(op, target); err != nil {
		return nil, err
	}
	if math.IsNaN(float64(radius)) || radius < 0 {
		return nil, invalidInput(op, "radius must be non-negative, got %v", radius)
	}
	if radius > t.upperBound {
		radius = t.upperBound
	}

	s := &radiusSearch[T, F]{
		searcher: newSearcher(t, target),
		Radius:   radius,
	}
	s.Visit(0, 0)

	slices.SortFunc(s.Results, func(n1, n2 Neighbor[T, F]) bool {
		if n1.Distance != n2.Distance {
			return n1.Distance < n2.Distance
		}
		return n1.Index < n2.Index
	})
	return s.Results, nil
}

func (t *Tree[T, F]) nearest(op string, target Point[T], k int) ([]Neighbor[T, F], error) {
	if err := t.checkTarget(op, target); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, invalidInput(op, "k must be positive, got %d", k)
	}

	s := &nearestSearch[T, F]{
		searcher: newSearcher(t, target),
		Results:  NewResultList[int, F](essentials.MinInt(k, t.count)),
	}
	s.Visit(0, 0)

	res := make([]Neighbor[T, F], 0, s.Results.Len())
	s.Results.Iterate(func(pos int, dist F) bool {
		res = append(res, t.neighbor(pos, dist))
		return true
	})
	return res, nil
}

func (t *Tree[T, F]) checkTarget(op string, target Point[T]) error {
	if len(target) != t.dims {
		return invalidInput(op, "target has %d coordinates, expected %d", len(target), t.dims)
	}
	if hasNaN(target) {
		return invalidInput(op, "target has a NaN coordinate")
	}
	return nil
}

func (t *Tree[T, F]) neighbor(pos int, dist F) Neighbor[T, F] {
	return Neighbor[T, F]{
		Point:    t.nodes[pos],
		Index:    t.indices[pos],
		Distance: dist,
	}
}

func neighborPoints[T constraints.Ordered, F constraints.Float](ns []Neighbor[T, F]) []Point[T] {
	res := make([]Point[T], len(ns))
	for i, n := range ns {
		res[i] = n.Point
	}
	return res
}

// searcher holds the per-query state shared by both kinds of search.
type searcher[T constraints.Ordered, F constraints.Float] struct {
	Tree   *Tree[T, F]
	Target Point[T]

	// Projection is a copy of Target used to measure distances to splitting
	// planes. Between calls to PlaneDistance it always equals Target.
	Projection Point[T]
}

func newSearcher[T constraints.Ordered, F constraints.Float](
	t *Tree[T, F],
	target Point[T],
) searcher[T, F] {
	return searcher[T, F]{
		Tree:       t,
		Target:     target,
		Projection: append(Point[T]{}, target...),
	}
}

// PlaneDistance computes the distance from the target to the plane where the
// given axis equals value.
func (s *searcher[T, F]) PlaneDistance(axis int, value T) F {
	s.Projection[axis] = value
	d := s.Tree.metric(s.Target, s.Projection)
	s.Projection[axis] = s.Target[axis]
	return d
}

// Sides returns the child of pos on the target's side of the splitting plane,
// followed by the other child. Targets on the plane go right.
func (s *searcher[T, F]) Sides(pos, axis int) (near, far int) {
	if s.Target[axis] < s.Tree.nodes[pos][axis] {
		return LeftChildIndex(pos), RightChildIndex(pos)
	}
	return RightChildIndex(pos), LeftChildIndex(pos)
}

type nearestSearch[T constraints.Ordered, F constraints.Float] struct {
	searcher[T, F]
	Results *ResultList[int, F]

	// Done is set once no remaining node can improve the results.
	Done bool
}

func (n *nearestSearch[T, F]) Visit(pos, depth int) {
	t := n.Tree
	if n.Done || !t.hasNode(pos) {
		return
	}
	node := t.nodes[pos]
	if dist := t.metric(n.Target, node); dist <= t.upperBound {
		n.Results.Add(pos, dist)
		if n.Results.Full() && n.Results.MaxPriority() <= t.lowerBound {
			n.Done = true
			return
		}
	}

	axis := depth % t.dims
	near, far := n.Sides(pos, axis)
	n.Visit(near, depth+1)
	if n.Done || !t.hasNode(far) {
		return
	}
	planeDist := n.PlaneDistance(axis, node[axis])
	if planeDist > t.upperBound {
		return
	}
	if !n.Results.Full() || planeDist < n.Results.MaxPriority() {
		n.Visit(far, depth+1)
	}
}

type radiusSearch[T constraints.Ordered, F constraints.Float] struct {
	searcher[T, F]
	Radius  F
	Results []Neighbor[T, F]
}

func (r *radiusSearch[T, F]) Visit(pos, depth int) {
	t := r.Tree
	if !t.hasNode(pos) {
		return
	}
	node := t.nodes[pos]
	if dist := t.metric(r.Target, node); dist <= r.Radius {
		r.Results = append(r.Results, t.neighbor(pos, dist))
	}

	axis := depth % t.dims
	near, far := r.Sides(pos, axis)
	r.Visit(near, depth+1)
	if t.hasNode(far) && r.PlaneDistance(axis, node[axis]) <= r.Radius {
		r.Visit(far, depth+1)
	}
}
