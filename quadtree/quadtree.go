package quadtree

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadslice/featureflag"
	"github.com/paulmach/orb"
)

const (
	// MaxPoints is the default number of points a leaf holds before being
	// split.
	MaxPoints = 3

	// MaxDepth is the default depth from which leaves are never split.
	MaxDepth = 20

	defaultFlatHalfSize = 1
)

var (
	// DefaultRootCenter is the center of the default root rectangle.
	DefaultRootCenter = orb.Point{0, 0}

	// DefaultRootHalfSize is the half-size of the default root rectangle,
	// covering longitudes and latitudes.
	DefaultRootHalfSize = orb.Point{180, 90}
)

// Node is an entry of the tree arena.
//
// A leaf has no children and a non-nil point list. An internal node has no
// points and exactly 4 children ordered bottom-left, top-left, bottom-right,
// top-right.
type Node struct {
	Center   orb.Point
	HalfSize orb.Point
	Depth    int
	Points   []int
	Children []int
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// QuadTree is a region quadtree storing indices of an externally owned point
// set. Nodes live in an append-only arena and reference each other by index.
// The root is always the node at index 0.
//
// A tree is not safe for concurrent use while being built. Once built, it can
// be queried from multiple goroutines.
type QuadTree struct {
	nodes          []Node
	maxPoints      int
	maxDepth       int
	rootCenter     orb.Point
	rootHalfSize   orb.Point
	rootFromPoints bool
	featureFlags   featureflag.FeatureFlag

	// Set when a point lies outside of the root rectangle.
	unbounded bool
}

// New creates an empty tree.
func New(opts ...Option) *QuadTree {
	t := &QuadTree{
		maxPoints:    MaxPoints,
		maxDepth:     MaxDepth,
		rootCenter:   DefaultRootCenter,
		rootHalfSize: DefaultRootHalfSize,
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateNode appends a leaf to the arena and returns its index.
func (t *QuadTree) CreateNode(center orb.Point, halfSize orb.Point, depth int) int {
	t.nodes = append(t.nodes, Node{
		Center:   center,
		HalfSize: halfSize,
		Depth:    depth,
		Points:   []int{},
	})
	return len(t.nodes) - 1
}

// Insert adds the point index to the subtree rooted at the given node.
//
// A point lying on a quadrant boundary is inserted into every quadrant that
// shares the boundary. A leaf that holds more than the max points is split
// unless it reached the max depth.
func (t *QuadTree) Insert(pointIdx int, nodeIdx int, points []orb.Point) {
	n := t.node(nodeIdx)

	if n.IsLeaf() {
		for _, idx := range n.Points {
			if idx == pointIdx {
				return
			}
		}

		n.Points = append(n.Points, pointIdx)
		if len(n.Points) > t.maxPoints && n.Depth < t.maxDepth {
			t.Split(nodeIdx, points)
		}
		return
	}

	p := points[pointIdx]
	left := p[0] <= n.Center[0]
	right := p[0] >= n.Center[0]
	bottom := p[1] <= n.Center[1]
	top := p[1] >= n.Center[1]

	// Children are copied since inserting grows the arena.
	children := n.Children
	if left && bottom {
		t.Insert(pointIdx, children[0], points)
	}
	if left && top {
		t.Insert(pointIdx, children[1], points)
	}
	if right && bottom {
		t.Insert(pointIdx, children[2], points)
	}
	if right && top {
		t.Insert(pointIdx, children[3], points)
	}
}

// Split turns a leaf into an internal node with 4 quadrant children and
// inserts its points into them.
func (t *QuadTree) Split(nodeIdx int, points []orb.Point) {
	n := *t.node(nodeIdx)
	if !n.IsLeaf() {
		return
	}

	half := orb.Point{n.HalfSize[0] / 2, n.HalfSize[1] / 2}
	depth := n.Depth + 1
	c := n.Center

	children := []int{
		t.CreateNode(orb.Point{c[0] - half[0], c[1] - half[1]}, half, depth),
		t.CreateNode(orb.Point{c[0] - half[0], c[1] + half[1]}, half, depth),
		t.CreateNode(orb.Point{c[0] + half[0], c[1] - half[1]}, half, depth),
		t.CreateNode(orb.Point{c[0] + half[0], c[1] + half[1]}, half, depth),
	}

	t.nodes[nodeIdx].Children = children
	t.nodes[nodeIdx].Points = nil

	for _, idx := range n.Points {
		t.Insert(idx, nodeIdx, points)
	}
}

// BuildPointTree resets the tree and indexes every given point, in order.
//
// The root covers the rectangle set with WithRootExtent, the bounding box of
// the points when WithRootFromPoints is used, or (0, 0) ± (180, 90) by
// default. Points outside of the root rectangle are still indexed and found
// by queries.
func (t *QuadTree) BuildPointTree(points []orb.Point) {
	start := time.Now()

	center, halfSize := t.rootExtent(points)
	rootBound := boundOf(center, halfSize)

	t.nodes = nil
	t.unbounded = false
	root := t.CreateNode(center, halfSize, 0)

	for i, p := range points {
		if !rootBound.Contains(p) {
			t.unbounded = true
		}
		t.Insert(i, root, points)
	}

	instrumentBuild(start, len(points))

	logs.WithTag("points", len(points)).
		WithTag("nodes", len(t.nodes)).
		WithTag("max_depth", t.GetDebugInfo().MaxDepth).
		WithTag("unbounded", t.unbounded).
		WithTag("feature_flags", t.featureFlags.List()).
		Debug("point tree built")
}

func (t *QuadTree) rootExtent(points []orb.Point) (orb.Point, orb.Point) {
	if !t.rootFromPoints || len(points) == 0 {
		return t.rootCenter, t.rootHalfSize
	}

	b := orb.MultiPoint(points).Bound()
	halfSize := orb.Point{
		(b.Max[0] - b.Min[0]) / 2,
		(b.Max[1] - b.Min[1]) / 2,
	}

	// A flat bounding box borrows the other half-size so the root keeps an
	// area.
	switch {
	case halfSize[0] <= 0 && halfSize[1] <= 0:
		halfSize = orb.Point{defaultFlatHalfSize, defaultFlatHalfSize}
	case halfSize[0] <= 0:
		halfSize[0] = halfSize[1]
	case halfSize[1] <= 0:
		halfSize[1] = halfSize[0]
	}

	return b.Center(), halfSize
}

// CollectPoints returns every point index stored in the subtree rooted at
// the given node. Indices of points lying on quadrant boundaries are returned
// once per leaf holding them.
func (t *QuadTree) CollectPoints(nodeIdx int) []int {
	var indices []int

	stack := []int{nodeIdx}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.node(idx)
		if n.IsLeaf() {
			indices = append(indices, n.Points...)
			continue
		}
		stack = append(stack, n.Children...)
	}

	return indices
}

// NodeCount returns the number of nodes in the arena.
func (t *QuadTree) NodeCount() int {
	return len(t.nodes)
}

// Node returns a copy of the node at the given index.
func (t *QuadTree) Node(nodeIdx int) Node {
	return *t.node(nodeIdx)
}

// Children returns the children indices of a node.
func (t *QuadTree) Children(nodeIdx int) []int {
	return t.node(nodeIdx).Children
}

// Points returns the point indices stored in a node. It is nil for internal
// nodes.
func (t *QuadTree) Points(nodeIdx int) []int {
	return t.node(nodeIdx).Points
}

// PointsLength returns the number of point indices stored in a node.
func (t *QuadTree) PointsLength(nodeIdx int) int {
	return len(t.node(nodeIdx).Points)
}

// Center returns the center of the rectangle covered by a node.
func (t *QuadTree) Center(nodeIdx int) orb.Point {
	return t.node(nodeIdx).Center
}

// HalfSize returns the half-width and half-height of a node rectangle.
func (t *QuadTree) HalfSize(nodeIdx int) orb.Point {
	return t.node(nodeIdx).HalfSize
}

// Depth returns the depth of a node, the root being at depth 0.
func (t *QuadTree) Depth(nodeIdx int) int {
	return t.node(nodeIdx).Depth
}

// Bound returns the rectangle covered by a node.
func (t *QuadTree) Bound(nodeIdx int) orb.Bound {
	n := t.node(nodeIdx)
	return boundOf(n.Center, n.HalfSize)
}

// RectanglePoints returns the corners of the rectangle covered by a node,
// counter-clockwise from the bottom-left one.
func (t *QuadTree) RectanglePoints(nodeIdx int) []orb.Point {
	b := t.Bound(nodeIdx)
	return []orb.Point{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
	}
}

// node returns the node at the given index. It panics when the index is out
// of the arena.
func (t *QuadTree) node(nodeIdx int) *Node {
	if nodeIdx < 0 || nodeIdx >= len(t.nodes) {
		panic(errors.New("invalid node index").
			WithType(ErrTypeInvalidNodeIndex).
			WithTag("node_index", nodeIdx).
			WithTag("node_count", len(t.nodes)))
	}
	return &t.nodes[nodeIdx]
}

func boundOf(center orb.Point, halfSize orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{center[0] - halfSize[0], center[1] - halfSize[1]},
		Max: orb.Point{center[0] + halfSize[0], center[1] + halfSize[1]},
	}
}
