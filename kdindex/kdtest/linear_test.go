package kdtest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/kd-index/kdindex"
)

func TestLinearNearest(t *testing.T) {
	points := []kdindex.Point[int]{{0, 0}, {5, 5}, {1, 0}, {0, 1}, {-1, 0}}
	metric := kdindex.SquaredEuclidean[int]
	res := LinearNearest(points, kdindex.Point[int]{0, 0}, metric, 3)
	assert.Equal(t, []int{0, 2, 3}, Indices(res))
	assert.Equal(t, []float64{0, 1, 1}, Distances(res))

	all := LinearNearest(points, kdindex.Point[int]{0, 0}, metric, 100)
	assert.Len(t, all, len(points))
}

func TestLinearWithinRadius(t *testing.T) {
	points := []kdindex.Point[int]{{0, 0}, {5, 5}, {1, 0}, {0, 1}, {-1, 0}}
	res := LinearWithinRadius(points, kdindex.Point[int]{0, 0}, kdindex.Manhattan[int], 1)
	assert.Equal(t, []int{0, 2, 3, 4}, Indices(res))

	res = LinearWithinRadius(points, kdindex.Point[int]{0, 0}, kdindex.Manhattan[int], 20)
	assert.Len(t, res, len(points))
}

func TestGenerators(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	uniform := UniformPoints(r, 100, 4)
	require.Len(t, uniform, 100)
	for _, p := range uniform {
		require.Len(t, p, 4)
		for _, x := range p {
			require.True(t, x >= 0 && x < 1)
		}
	}

	grid := GridPoints(r, 100, 2, 3)
	for _, p := range grid {
		require.True(t, p[0] >= 0 && p[0] < 3 && p[1] >= 0 && p[1] < 3)
	}

	clustered := ClusteredPoints(r, 50, 3, 2, 0.01)
	require.Len(t, clustered, 50)

	assert.Equal(t, 3.0, Quantile([]float64{5, 1, 3, 2, 4}, 0.5))
	assert.Equal(t, 1.0, Quantile([]float64{5, 1, 3, 2, 4}, 0))
	assert.Equal(t, 5.0, Quantile([]float64{5, 1, 3, 2, 4}, 1))
}
