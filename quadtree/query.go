package quadtree

import (
	"sort"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/quadslice/featureflag"
	"github.com/aukilabs/quadslice/geometry"
	"github.com/paulmach/orb"
)

// IndexSet is a set of point indices.
type IndexSet map[int]struct{}

func (s IndexSet) Add(indices ...int) {
	for _, idx := range indices {
		s[idx] = struct{}{}
	}
}

func (s IndexSet) Contains(idx int) bool {
	_, ok := s[idx]
	return ok
}

// Sorted returns the indices in increasing order.
func (s IndexSet) Sorted() []int {
	indices := make([]int, 0, len(s))
	for idx := range s {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// QueryPolygon returns the indices of the points that lie inside or on the
// boundary of the given convex polygon, looking only into the subtree rooted
// at the given node. Points must be the point set the tree was built with.
//
// The polygon is clipped against the quadrant boundaries of every internal
// node it goes through. When a clipped polygon matches the rectangle of a
// node, every point of its subtree is returned without further testing.
//
// The result for a non-convex polygon is undefined. A polygon without area,
// such as an empty polygon, a point or a segment, matches no point. Clipped
// vertices are interpolated, so points lying exactly on the polygon boundary
// are not guaranteed to be returned. An error is returned when the polygon
// could not be clipped, in which case no result is returned.
func (t *QuadTree) QueryPolygon(points []orb.Point, nodeIdx int, polygon []orb.Point) (IndexSet, error) {
	start := time.Now()

	result := make(IndexSet)
	if _, err := geometry.ConvexHull(polygon); err != nil && errors.IsType(err, geometry.ErrTypeFlatGeometry) {
		instrumentQuery(start, nil)
		return result, nil
	}

	err := t.queryPolygon(points, nodeIdx, polygon, result)
	if err != nil {
		err = errors.New("polygon query failed").
			WithType(ErrTypeQueryFailed).
			WithTag("node_index", nodeIdx).
			WithTag("polygon_vertices", len(polygon)).
			Wrap(err)
	}

	instrumentQuery(start, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *QuadTree) queryPolygon(points []orb.Point, nodeIdx int, polygon []orb.Point, result IndexSet) error {
	if len(polygon) == 0 {
		return nil
	}

	n := t.node(nodeIdx)

	fastPath := false
	t.featureFlags.IfNotSet(featureflag.FlagDisableFastPath, func() {
		fastPath = geometry.SameVertices(polygon, t.RectanglePoints(nodeIdx))
	})
	if fastPath {
		instrumentFastPathHit()
		result.Add(t.CollectPoints(nodeIdx)...)
		return nil
	}

	if n.IsLeaf() {
		for _, idx := range n.Points {
			if geometry.IsContainedIn(points[idx], polygon) {
				result.Add(idx)
			}
		}
		return nil
	}

	left, right, err := geometry.SliceInTwo(polygon, n.Center[0], geometry.AxisX)
	if err != nil {
		return err
	}

	bottomLeft, topLeft, err := geometry.SliceInTwo(left, n.Center[1], geometry.AxisY)
	if err != nil {
		return err
	}

	bottomRight, topRight, err := geometry.SliceInTwo(right, n.Center[1], geometry.AxisY)
	if err != nil {
		return err
	}

	quadrants := [4][]orb.Point{bottomLeft, topLeft, bottomRight, topRight}
	for i, child := range n.Children {
		if err := t.queryPolygon(points, child, quadrants[i], result); err != nil {
			return err
		}
	}
	return nil
}
