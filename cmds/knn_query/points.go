package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/kd-index/kdindex"
)

// LoadPoints reads a CSV file with one point per row.
func LoadPoints(path string) ([]kdindex.Point[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load points")
	}
	defer f.Close()
	points, err := ReadPoints(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load points from %s", path)
	}
	return points, nil
}

// ReadPoints parses CSV rows of numbers into points.
//
// Every row must have as many columns as the first one. Blank lines and lines
// starting with '#' are skipped.
func ReadPoints(r io.Reader) ([]kdindex.Point[float64], error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var res []kdindex.Point[float64]
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "read points")
		}
		point := make(kdindex.Point[float64], len(row))
		for i, field := range row {
			point[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				line, _ := reader.FieldPos(i)
				return nil, errors.Wrapf(err, "read points: line %d", line)
			}
		}
		res = append(res, point)
	}
	if len(res) == 0 {
		return nil, errors.New("read points: no rows")
	}
	return res, nil
}

// WriteNeighbors writes one CSV row per neighbor: the query number, the
// input index, the distance, and then the coordinates.
func WriteNeighbors(w *csv.Writer, query int, ns []kdindex.Neighbor[float64, float64]) error {
	for _, n := range ns {
		row := []string{
			strconv.Itoa(query),
			strconv.Itoa(n.Index),
			strconv.FormatFloat(n.Distance, 'g', -1, 64),
		}
		for _, x := range n.Point {
			row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "write neighbors")
		}
	}
	return nil
}
