package kdindex

import "github.com/unixpickle/model3d/model3d"

// A Coord3DTree indexes 3D coordinates under squared Euclidean distance.
type Coord3DTree = Tree[float64, float64]

// Coord3DPoints converts coordinates into points with three dimensions.
func Coord3DPoints(coords []model3d.Coord3D) []Point[float64] {
	res := make([]Point[float64], len(coords))
	for i, c := range coords {
		res[i] = Coord3DPoint(c)
	}
	return res
}

func Coord3DPoint(c model3d.Coord3D) Point[float64] {
	return Point[float64]{c.X, c.Y, c.Z}
}

// PointCoord3D converts a three dimensional point back into a coordinate.
func PointCoord3D(p Point[float64]) model3d.Coord3D {
	return model3d.XYZ(p[0], p[1], p[2])
}

// NewCoord3DTree builds a tree over coords using up to concurrency
// Goroutines.
//
// Input indices of search results refer to positions in coords.
func NewCoord3DTree(coords []model3d.Coord3D, concurrency int) (*Coord3DTree, error) {
	b := &Builder[float64, float64]{
		Dims:        3,
		Metric:      SquaredEuclidean[float64],
		Concurrency: concurrency,
	}
	return b.Build(Coord3DPoints(coords))
}

// NearestCoords3D returns the k closest coordinates to c in t, which must
// have been built by NewCoord3DTree.
func NearestCoords3D(t *Coord3DTree, c model3d.Coord3D, k int) ([]model3d.Coord3D, error) {
	points, err := t.NearestNeighbors(Coord3DPoint(c), k)
	if err != nil {
		return nil, err
	}
	res := make([]model3d.Coord3D, len(points))
	for i, p := range points {
		res[i] = PointCoord3D(p)
	}
	return res, nil
}
