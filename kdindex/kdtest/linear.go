package kdtest

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/kd-index/kdindex"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// LinearDistances computes the distance from target to every point, using up
// to concurrency Goroutines (GOMAXPROCS if 0).
func LinearDistances[T constraints.Ordered, F constraints.Float](
	points []kdindex.Point[T],
	target kdindex.Point[T],
	metric kdindex.Metric[T, F],
	concurrency int,
) []F {
	res := make([]F, len(points))
	essentials.ConcurrentMap(concurrency, len(points), func(i int) {
		res[i] = metric(target, points[i])
	})
	return res
}

// LinearNearest finds the k closest points to target by scanning every
// point. Ties in distance are broken by input index.
func LinearNearest[T constraints.Ordered, F constraints.Float](
	points []kdindex.Point[T],
	target kdindex.Point[T],
	metric kdindex.Metric[T, F],
	k int,
) []kdindex.Neighbor[T, F] {
	all := linearNeighbors(points, target, metric)
	if k < len(all) {
		all = all[:k]
	}
	return all
}

// LinearWithinRadius finds every point within radius of target by scanning
// every point. Results are sorted by distance, then input index.
func LinearWithinRadius[T constraints.Ordered, F constraints.Float](
	points []kdindex.Point[T],
	target kdindex.Point[T],
	metric kdindex.Metric[T, F],
	radius F,
) []kdindex.Neighbor[T, F] {
	all := linearNeighbors(points, target, metric)
	for i, n := range all {
		if n.Distance > radius {
			return all[:i]
		}
	}
	return all
}

func linearNeighbors[T constraints.Ordered, F constraints.Float](
	points []kdindex.Point[T],
	target kdindex.Point[T],
	metric kdindex.Metric[T, F],
) []kdindex.Neighbor[T, F] {
	dists := LinearDistances(points, target, metric, 0)
	res := make([]kdindex.Neighbor[T, F], len(points))
	for i, p := range points {
		res[i] = kdindex.Neighbor[T, F]{Point: p, Index: i, Distance: dists[i]}
	}
	slices.SortFunc(res, func(n1, n2 kdindex.Neighbor[T, F]) bool {
		if n1.Distance != n2.Distance {
			return n1.Distance < n2.Distance
		}
		return n1.Index < n2.Index
	})
	return res
}

// Distances extracts the distance of every neighbor.
func Distances[T constraints.Ordered, F constraints.Float](ns []kdindex.Neighbor[T, F]) []F {
	res := make([]F, len(ns))
	for i, n := range ns {
		res[i] = n.Distance
	}
	return res
}

// Indices extracts the input index of every neighbor.
func Indices[T constraints.Ordered, F constraints.Float](ns []kdindex.Neighbor[T, F]) []int {
	res := make([]int, len(ns))
	for i, n := range ns {
		res[i] = n.Index
	}
	return res
}

func sortFloats(x []float64) {
	slices.Sort(x)
}
