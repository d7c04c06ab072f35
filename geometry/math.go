package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Axis selects a coordinate of a 2D point.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

func Sub(a orb.Point, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

// Lerp returns the point at t along the segment going from b to a.
func Lerp(a orb.Point, b orb.Point, t float64) orb.Point {
	return orb.Point{
		b[0] + t*(a[0]-b[0]),
		b[1] + t*(a[1]-b[1]),
	}
}

// Cross returns the z coordinate of the cross product of ab and ac. It is
// positive when a, b, c turn counter-clockwise.
func Cross(a orb.Point, b orb.Point, c orb.Point) float64 {
	ab := Sub(b, a)
	ac := Sub(c, a)
	return ab[0]*ac[1] - ac[0]*ab[1]
}

// BoxDistanceSquared returns the squared distance between p and the rectangle
// centered on center with the given half-size. It is 0 when p is inside.
func BoxDistanceSquared(center orb.Point, halfSize orb.Point, p orb.Point) float64 {
	var d [2]float64
	for axis := range d {
		lo := center[axis] - halfSize[axis]
		hi := center[axis] + halfSize[axis]
		switch {
		case p[axis] < lo:
			d[axis] = lo - p[axis]
		case p[axis] > hi:
			d[axis] = p[axis] - hi
		}
	}
	return d[0]*d[0] + d[1]*d[1]
}

func isFinite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) &&
		!math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}
