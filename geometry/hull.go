package geometry

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
)

// ConvexHull returns the convex hull of the given points in counter-clockwise
// order, without repeating the first vertex at the end. Collinear and duplicate
// points are dropped.
//
// An error typed ErrTypeFlatGeometry is returned when the points do not span
// an area. An error typed ErrTypeHullFailure is returned when a coordinate is
// not a finite number.
func ConvexHull(points []orb.Point) ([]orb.Point, error) {
	if len(points) < 3 {
		return nil, errors.New("not enough points to build a convex hull").
			WithType(ErrTypeFlatGeometry).
			WithTag("points", len(points))
	}

	pts := make([]orb.Point, len(points))
	copy(pts, points)

	for _, p := range pts {
		if !isFinite(p) {
			return nil, errors.New("convex hull input is not finite").
				WithType(ErrTypeHullFailure).
				WithTag("point", p)
		}
	}

	sortLexicographic(pts)

	lower := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && Cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]orb.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && Cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// The last point of each chain is the first point of the other one.
	hull := make([]orb.Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)

	if len(hull) < 3 {
		return nil, errors.New("convex hull is flat").
			WithType(ErrTypeFlatGeometry).
			WithTag("points", len(points)).
			WithTag("hull_vertices", len(hull))
	}
	return hull, nil
}

// sortLexicographic sorts points by x, then by y.
func sortLexicographic(points []orb.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i][0] == points[j][0] {
			return points[i][1] < points[j][1]
		}
		return points[i][0] < points[j][0]
	})
}

// SameVertices reports whether a and b hold the same vertices, regardless of
// their order.
func SameVertices(a []orb.Point, b []orb.Point) bool {
	if len(a) != len(b) {
		return false
	}

	sa := make([]orb.Point, len(a))
	copy(sa, a)
	sortLexicographic(sa)

	sb := make([]orb.Point, len(b))
	copy(sb, b)
	sortLexicographic(sb)

	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
