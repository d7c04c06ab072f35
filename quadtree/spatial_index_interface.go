package quadtree

import "github.com/paulmach/orb"

type SpatialIndex interface {
	BuildPointTree(points []orb.Point)
	QueryPolygon(points []orb.Point, nodeIdx int, polygon []orb.Point) (IndexSet, error)
	NearestNeighbor(query orb.Point, points []orb.Point) (int, bool)
	CollectPoints(nodeIdx int) []int

	// debug stuff:
	GetDebugInfo() DebugInfo
}

var _ SpatialIndex = (*QuadTree)(nil)
