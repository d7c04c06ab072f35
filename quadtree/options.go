package quadtree

import (
	"github.com/aukilabs/quadslice/featureflag"
	"github.com/paulmach/orb"
)

// Option configures a QuadTree.
type Option func(*QuadTree)

// WithMaxPoints sets the number of points a leaf holds before being split.
// Values below 1 are ignored.
func WithMaxPoints(n int) Option {
	return func(t *QuadTree) {
		if n > 0 {
			t.maxPoints = n
		}
	}
}

// WithMaxDepth sets the depth at which leaves stop being split. Negative
// values are ignored.
func WithMaxDepth(depth int) Option {
	return func(t *QuadTree) {
		if depth >= 0 {
			t.maxDepth = depth
		}
	}
}

// WithRootExtent sets the rectangle covered by the root node. Half-sizes
// that are not strictly positive are ignored.
func WithRootExtent(center orb.Point, halfSize orb.Point) Option {
	return func(t *QuadTree) {
		if halfSize[0] <= 0 || halfSize[1] <= 0 {
			return
		}
		t.rootCenter = center
		t.rootHalfSize = halfSize
		t.rootFromPoints = false
	}
}

// WithRootFromPoints makes BuildPointTree derive the root rectangle from the
// bounding box of the points it indexes.
func WithRootFromPoints() Option {
	return func(t *QuadTree) {
		t.rootFromPoints = true
	}
}

// WithFeatureFlags sets the feature flags that toggle query behaviours.
func WithFeatureFlags(flags featureflag.FeatureFlag) Option {
	return func(t *QuadTree) {
		t.featureFlags = flags
	}
}
