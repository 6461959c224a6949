package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/kd-index/kdindex"
	"github.com/unixpickle/kd-index/kdindex/kdtest"
	"golang.org/x/sync/errgroup"
)

func main() {
	var dims int
	var numPoints int
	var numQueries int
	var k int
	var radius float64
	var concurrency int
	var workers int
	var seed int64
	var clusters int
	flag.IntVar(&dims, "dims", 3, "number of coordinates per point")
	flag.IntVar(&numPoints, "points", 1000000, "number of points to index")
	flag.IntVar(&numQueries, "queries", 2000, "number of queries to run")
	flag.IntVar(&k, "k", 10, "number of neighbors per query")
	flag.Float64Var(&radius, "radius", 0.05, "radius for radius queries (Euclidean)")
	flag.IntVar(&concurrency, "concurrency", -1,
		"goroutines for construction (negative for GOMAXPROCS)")
	flag.IntVar(&workers, "workers", 8, "goroutines issuing queries")
	flag.Int64Var(&seed, "seed", 1337, "random seed")
	flag.IntVar(&clusters, "clusters", 0, "if non-zero, sample points from this many clusters")
	flag.Parse()

	if len(flag.Args()) != 0 {
		fmt.Println("Usage: knn_bench [flags]")
		flag.PrintDefaults()
		return
	}

	r := rand.New(rand.NewSource(seed))

	log.Println("Generating points...")
	var points []kdindex.Point[float64]
	if clusters > 0 {
		points = kdtest.ClusteredPoints(r, numPoints, dims, clusters, 0.02)
	} else {
		points = kdtest.UniformPoints(r, numPoints, dims)
	}
	targets := kdtest.UniformPoints(r, numQueries, dims)

	log.Println("Building tree...")
	metric := kdindex.Euclidean[float64]
	builder := &kdindex.Builder[float64, float64]{
		Dims:        dims,
		Metric:      metric,
		Concurrency: concurrency,
	}
	t1 := time.Now()
	tree, err := builder.Build(points)
	essentials.Must(err)
	log.Printf("Built tree of depth %d in %v", tree.Depth(), time.Since(t1))

	log.Println("Running tree queries...")
	nearest := make([][]kdindex.Neighbor[float64, float64], numQueries)
	inRadius := make([][]kdindex.Neighbor[float64, float64], numQueries)
	var totalInRadius int64
	t1 = time.Now()
	essentials.Must(runQueries(workers, numQueries, func(i int) error {
		var err error
		nearest[i], err = tree.NearestNeighborsWithDistances(targets[i], k)
		if err != nil {
			return err
		}
		inRadius[i], err = tree.NeighborsWithinRadius(targets[i], radius)
		atomic.AddInt64(&totalInRadius, int64(len(inRadius[i])))
		return err
	}))
	treeTime := time.Since(t1)
	log.Printf(
		"Tree queries took %v (mean %.1f points within radius)",
		treeTime,
		float64(totalInRadius)/float64(numQueries),
	)

	log.Println("Running linear queries...")
	var mismatches int64
	t1 = time.Now()
	essentials.Must(runQueries(workers, numQueries, func(i int) error {
		expNearest := kdtest.LinearNearest(points, targets[i], metric, k)
		expRadius := kdtest.LinearWithinRadius(points, targets[i], metric, radius)
		if !reflect.DeepEqual(kdtest.Distances(expNearest), kdtest.Distances(nearest[i])) ||
			!reflect.DeepEqual(kdtest.Indices(expRadius), kdtest.Indices(inRadius[i])) {
			atomic.AddInt64(&mismatches, 1)
		}
		return nil
	}))
	linearTime := time.Since(t1)
	log.Printf(
		"Linear queries took %v (%.1fx slower than tree)",
		linearTime,
		float64(linearTime)/float64(treeTime),
	)

	if mismatches > 0 {
		log.Fatalf("%d of %d queries disagreed with linear search", mismatches, numQueries)
	}
	log.Println("All results match linear search.")
}

func runQueries(workers, count int, f func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			return f(i)
		})
	}
	return g.Wait()
}
