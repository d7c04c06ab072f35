package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// FindIntersects returns the points where the line axis = value crosses the
// segments joining every vertex at or above value to every vertex at or below
// it. When both vertices of a pair lie on the same slicing coordinate, the
// lower one is recorded as is.
//
// Pairs are not limited to polygon edges: for a convex polygon the extra points
// lie inside the polygon, which keeps the result valid for extents and hull
// computations.
func FindIntersects(vertices []orb.Point, axis Axis, value float64) []orb.Point {
	var intersects []orb.Point

	for _, a := range vertices {
		if a[axis] < value {
			continue
		}

		for _, b := range vertices {
			if b[axis] > value {
				continue
			}

			if a[axis] == b[axis] {
				intersects = append(intersects, b)
				continue
			}

			t := (value - b[axis]) / (a[axis] - b[axis])
			intersects = append(intersects, Lerp(a, b, t))
		}
	}

	return intersects
}

// VerticalExtents returns the minimum and maximum y of the polygon on the
// vertical line at x. It returns (+Inf, -Inf) when the line misses the
// polygon.
func VerticalExtents(polygon []orb.Point, x float64) (float64, float64) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range FindIntersects(polygon, AxisX, x) {
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	return minY, maxY
}

// IsContainedIn reports whether p lies inside or on the boundary of the given
// convex polygon. The result is undefined for non-convex polygons.
func IsContainedIn(p orb.Point, polygon []orb.Point) bool {
	minY, maxY := VerticalExtents(polygon, p[0])
	return minY <= p[1] && p[1] <= maxY
}

// Extents returns the minimum and maximum coordinate of the vertices along the
// given axis.
func Extents(vertices []orb.Point, axis Axis) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		lo = math.Min(lo, v[axis])
		hi = math.Max(hi, v[axis])
	}
	return lo, hi
}
