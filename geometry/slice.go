package geometry

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
)

// SliceInTwo splits a convex polygon by the line axis = value and returns the
// convex polygons on the lower side (left) and on the upper side (right).
//
// A nil side means that the polygon has no area on that side. The returned
// error is only set when a convex hull could not be computed for another reason
// than flat geometry.
func SliceInTwo(vertices []orb.Point, value float64, axis Axis) ([]orb.Point, []orb.Point, error) {
	if len(vertices) == 0 {
		return nil, nil, nil
	}

	lo, hi := Extents(vertices, axis)
	if hi <= value {
		return vertices, nil, nil
	}
	if value < lo {
		return nil, vertices, nil
	}

	intersects := FindIntersects(vertices, axis, value)

	left := make([]orb.Point, 0, len(vertices)+len(intersects))
	right := make([]orb.Point, 0, len(vertices)+len(intersects))
	for _, v := range vertices {
		if v[axis] <= value {
			left = append(left, v)
		}
		if v[axis] >= value {
			right = append(right, v)
		}
	}
	left = append(left, intersects...)
	right = append(right, intersects...)

	leftPolygon, err := sideHull(left)
	if err != nil {
		return nil, nil, errors.New("slicing left side failed").
			WithType(ErrTypeHullFailure).
			WithTag("axis", axis.String()).
			WithTag("value", value).
			Wrap(err)
	}

	rightPolygon, err := sideHull(right)
	if err != nil {
		return nil, nil, errors.New("slicing right side failed").
			WithType(ErrTypeHullFailure).
			WithTag("axis", axis.String()).
			WithTag("value", value).
			Wrap(err)
	}

	return leftPolygon, rightPolygon, nil
}

func sideHull(points []orb.Point) ([]orb.Point, error) {
	if len(points) < 3 {
		return nil, nil
	}

	hull, err := ConvexHull(points)
	if err != nil && errors.IsType(err, ErrTypeFlatGeometry) {
		return nil, nil
	}
	return hull, err
}
