package geometry

const (
	// ErrTypeFlatGeometry is the type of errors returned when points do not
	// span a 2D area (fewer than 3 points, duplicates or collinear points).
	ErrTypeFlatGeometry = "flat_geometry"

	// ErrTypeHullFailure is the type of errors returned when a convex hull can
	// not be computed for another reason than flat geometry.
	ErrTypeHullFailure = "hull_failure"
)
