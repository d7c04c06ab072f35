// Package grid generates regular point sets to be indexed.
package grid

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
)

const (
	ErrTypeInvalidGrid = "invalid_grid"
)

// Regular returns nx columns by ny rows of points evenly spread over the
// given bound, edges included. Points are ordered row by row, from the bottom
// left corner. A single column or row lies on the minimum edge.
func Regular(bound orb.Bound, nx int, ny int) ([]orb.Point, error) {
	if nx < 1 || ny < 1 {
		return nil, errors.New("grid must have at least one row and one column").
			WithType(ErrTypeInvalidGrid).
			WithTag("columns", nx).
			WithTag("rows", ny)
	}

	dx := spacing(bound.Min[0], bound.Max[0], nx)
	dy := spacing(bound.Min[1], bound.Max[1], ny)

	points := make([]orb.Point, 0, nx*ny)
	for j := 0; j < ny; j++ {
		y := bound.Min[1] + float64(j)*dy
		if j == ny-1 && ny > 1 {
			y = bound.Max[1]
		}

		for i := 0; i < nx; i++ {
			x := bound.Min[0] + float64(i)*dx
			if i == nx-1 && nx > 1 {
				x = bound.Max[0]
			}
			points = append(points, orb.Point{x, y})
		}
	}
	return points, nil
}

// LonLat returns a longitude/latitude grid with the given step in degrees.
// Longitudes go from -180 included to 180 excluded since both meridians are
// the same. Latitudes go from -90 to 90, both included when 180 is a multiple
// of the step.
func LonLat(step float64) ([]orb.Point, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.New("grid step must be a positive number").
			WithType(ErrTypeInvalidGrid).
			WithTag("step", step)
	}

	nLon := int(math.Ceil(360/step - stepEpsilon))
	nLat := int(math.Floor(180/step+stepEpsilon)) + 1

	points := make([]orb.Point, 0, nLon*nLat)
	for j := 0; j < nLat; j++ {
		lat := math.Min(-90+float64(j)*step, 90)
		for i := 0; i < nLon; i++ {
			points = append(points, orb.Point{-180 + float64(i)*step, lat})
		}
	}
	return points, nil
}

// Rounding tolerance on the number of steps.
const stepEpsilon = 1e-9

func spacing(min, max float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return (max - min) / float64(n-1)
}
