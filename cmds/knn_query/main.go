package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/kd-index/kdindex"
)

func main() {
	var k int
	var radius float64
	var metricName string
	var concurrency int
	flag.IntVar(&k, "k", 1, "number of neighbors to find per query")
	flag.Float64Var(&radius, "radius", -1,
		"if non-negative, find all points within this radius instead of k neighbors")
	flag.StringVar(&metricName, "metric", "euclidean",
		"distance metric: euclidean, sqeuclidean, manhattan, or chebyshev")
	flag.IntVar(&concurrency, "concurrency", -1,
		"goroutines for construction (negative for GOMAXPROCS)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: knn_query [flags] <points.csv> <queries.csv>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	pointsPath, queriesPath := args[0], args[1]

	metric, ok := map[string]kdindex.Metric[float64, float64]{
		"euclidean":   kdindex.Euclidean[float64],
		"sqeuclidean": kdindex.SquaredEuclidean[float64],
		"manhattan":   kdindex.Manhattan[float64],
		"chebyshev":   kdindex.Chebyshev[float64],
	}[metricName]
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown metric:", metricName)
		os.Exit(1)
	}

	log.Println("Loading points...")
	points, err := LoadPoints(pointsPath)
	essentials.Must(err)
	queries, err := LoadPoints(queriesPath)
	essentials.Must(err)

	log.Println("Building tree...")
	builder := &kdindex.Builder[float64, float64]{
		Dims:        len(points[0]),
		Metric:      metric,
		Concurrency: concurrency,
	}
	tree, err := builder.Build(points)
	essentials.Must(err)
	log.Printf("Indexed %d points (depth %d)", tree.Len(), tree.Depth())

	w := csv.NewWriter(os.Stdout)
	for i, q := range queries {
		var neighbors []kdindex.Neighbor[float64, float64]
		if radius >= 0 {
			neighbors, err = tree.NeighborsWithinRadius(q, radius)
		} else {
			neighbors, err = tree.NearestNeighborsWithDistances(q, k)
		}
		essentials.Must(err)
		essentials.Must(WriteNeighbors(w, i, neighbors))
	}
	w.Flush()
	essentials.Must(w.Error())
}
