package quadtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aukilabs/quadslice/featureflag"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	orbquadtree "github.com/paulmach/orb/quadtree"
	"github.com/stretchr/testify/require"
)

type indexedPoint struct {
	p   orb.Point
	idx int
}

func (p indexedPoint) Point() orb.Point {
	return p.p
}

func bruteForceNearest(query orb.Point, points []orb.Point) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range points {
		if d := planar.DistanceSquared(query, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

func TestNearestNeighbor(t *testing.T) {
	t.Run("empty tree", func(t *testing.T) {
		idx, ok := New().NearestNeighbor(orb.Point{0, 0}, nil)
		require.False(t, ok)
		require.Equal(t, -1, idx)

		tree := New()
		tree.BuildPointTree(nil)
		_, ok = tree.NearestNeighbor(orb.Point{0, 0}, nil)
		require.False(t, ok)
	})

	t.Run("scenario", func(t *testing.T) {
		points := scenarioPoints()
		tree := New()
		tree.BuildPointTree(points)

		tests := []struct {
			query    orb.Point
			expected int
		}{
			{query: orb.Point{-9, -11}, expected: 0},
			{query: orb.Point{100, 80}, expected: 1},
			{query: orb.Point{-10, 10}, expected: 2},
			{query: orb.Point{12, -7}, expected: 3},
			{query: orb.Point{1, -1}, expected: 4},
		}

		for _, test := range tests {
			idx, ok := tree.NearestNeighbor(test.query, points)
			require.True(t, ok)
			require.Equal(t, test.expected, idx)
		}
	})

	t.Run("ties resolve to the smallest index", func(t *testing.T) {
		points := []orb.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {5, 5}}
		tree := New()
		tree.BuildPointTree(points)

		idx, ok := tree.NearestNeighbor(orb.Point{0, 0}, points)
		require.True(t, ok)
		require.Equal(t, 0, idx)
	})

	t.Run("points outside of the root", func(t *testing.T) {
		points := append(scenarioPoints(), orb.Point{500, 0})
		tree := New()
		tree.BuildPointTree(points)

		idx, ok := tree.NearestNeighbor(orb.Point{490, 0}, points)
		require.True(t, ok)
		require.Equal(t, 5, idx)
	})
}

func TestNearestNeighborProperties(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	bound := defaultBound()
	points := randomPoints(r, 2000, bound)

	tree := New()
	tree.BuildPointTree(points)

	exhaustiveTree := New(WithFeatureFlags(featureflag.New([]string{
		string(featureflag.FlagDisableNearestPruning),
	})))
	exhaustiveTree.BuildPointTree(points)

	oracle := orbquadtree.New(bound)
	for i, p := range points {
		require.NoError(t, oracle.Add(indexedPoint{p: p, idx: i}))
	}

	queries := randomPoints(r, 300, bound)
	queries = append(queries, points[:100]...)
	queries = append(queries, orb.Point{-200, 95}, orb.Point{400, -300})

	for _, q := range queries {
		idx, ok := tree.NearestNeighbor(q, points)
		require.True(t, ok)

		_, bruteDist := bruteForceNearest(q, points)
		require.Equal(t, bruteDist, planar.DistanceSquared(q, points[idx]))

		exhaustiveIdx, ok := exhaustiveTree.NearestNeighbor(q, points)
		require.True(t, ok)
		require.Equal(t, exhaustiveIdx, idx)

		found := oracle.Find(q)
		require.NotNil(t, found)
		require.Equal(t, planar.DistanceSquared(q, found.Point()), planar.DistanceSquared(q, points[idx]))
	}

	t.Run("stored points are their own nearest neighbor", func(t *testing.T) {
		for i, p := range points[:100] {
			idx, ok := tree.NearestNeighbor(p, points)
			require.True(t, ok)
			require.Zero(t, planar.DistanceSquared(p, points[idx]))
			require.Equal(t, i, idx)
		}
	})
}
