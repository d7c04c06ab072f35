package quadtree

import (
	"math"

	"github.com/aukilabs/quadslice/featureflag"
	"github.com/aukilabs/quadslice/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type nearestSearch struct {
	query    orb.Point
	points   []orb.Point
	prune    bool
	best     int
	bestDist float64
}

// NearestNeighbor returns the index of the stored point closest to query.
// Ties are resolved with the smallest index. It returns false when the tree
// holds no point.
//
// Subtrees whose rectangle is farther than the current best candidate are
// skipped, unless a point was indexed outside of the root rectangle.
func (t *QuadTree) NearestNeighbor(query orb.Point, points []orb.Point) (int, bool) {
	if len(t.nodes) == 0 {
		return -1, false
	}

	s := nearestSearch{
		query:    query,
		points:   points,
		prune:    !t.unbounded,
		best:     -1,
		bestDist: math.Inf(1),
	}
	t.featureFlags.IfSet(featureflag.FlagDisableNearestPruning, func() {
		s.prune = false
	})
	t.nearest(0, &s)

	return s.best, s.best >= 0
}

func (t *QuadTree) nearest(nodeIdx int, s *nearestSearch) {
	n := t.node(nodeIdx)

	if s.prune && geometry.BoxDistanceSquared(n.Center, n.HalfSize, s.query) > s.bestDist {
		return
	}

	if n.IsLeaf() {
		for _, idx := range n.Points {
			d := planar.DistanceSquared(s.query, s.points[idx])
			if d < s.bestDist || (d == s.bestDist && idx < s.best) {
				s.best = idx
				s.bestDist = d
			}
		}
		return
	}

	for _, child := range n.Children {
		t.nearest(child, s)
	}
}
