package models

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadslice/quadtree"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Index represents a point set and the quadtree built from it. Queries can run
// concurrently, rebuilding waits for running queries to finish.
type Index struct {
	ID   string
	Name string

	mutex   sync.RWMutex
	tree    quadtree.SpatialIndex
	points  []orb.Point
	builtAt time.Time
}

// NewIndex copies the given points and builds a quadtree from them.
func NewIndex(name string, points []orb.Point, opts ...quadtree.Option) *Index {
	i := &Index{
		ID:   uuid.New().String(),
		Name: name,
		tree: quadtree.New(opts...),
	}
	i.build(points)
	return i
}

// Rebuild replaces the indexed points.
func (i *Index) Rebuild(points []orb.Point) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	i.build(points)
}

func (i *Index) build(points []orb.Point) {
	i.points = make([]orb.Point, len(points))
	copy(i.points, points)

	i.tree.BuildPointTree(i.points)
	i.builtAt = time.Now()
}

// Query returns the indices of the points inside the given convex polygon.
func (i *Index) Query(polygon []orb.Point) (quadtree.IndexSet, error) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return i.query(polygon)
}

// QueryPoints returns the coordinates of the points inside the given convex
// polygon, in index order.
func (i *Index) QueryPoints(polygon []orb.Point) ([]orb.Point, error) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	res, err := i.query(polygon)
	if err != nil {
		return nil, err
	}

	points := make([]orb.Point, 0, len(res))
	for _, idx := range res.Sorted() {
		points = append(points, i.points[idx])
	}
	return points, nil
}

// query must be called with the mutex held.
func (i *Index) query(polygon []orb.Point) (quadtree.IndexSet, error) {
	res, err := i.tree.QueryPolygon(i.points, 0, polygon)
	if err != nil {
		logs.WithTag("index_id", i.ID).
			WithTag("index_name", i.Name).
			WithTag("polygon_vertices", len(polygon)).
			Warn(err)
		return nil, errors.New("index query failed").
			WithTag("index_id", i.ID).
			Wrap(err)
	}
	return res, nil
}

// NearestNeighbor returns the index and the coordinates of the point closest
// to p. It returns false when the index holds no point.
func (i *Index) NearestNeighbor(p orb.Point) (int, orb.Point, bool) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	idx, ok := i.tree.NearestNeighbor(p, i.points)
	if !ok {
		return -1, orb.Point{}, false
	}
	return idx, i.points[idx], true
}

// Point returns the coordinates of the point at the given index.
func (i *Index) Point(idx int) (orb.Point, bool) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	if idx < 0 || idx >= len(i.points) {
		return orb.Point{}, false
	}
	return i.points[idx], true
}

// StoredIndices returns the indices of every point reachable from the tree
// root.
func (i *Index) StoredIndices() quadtree.IndexSet {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	set := make(quadtree.IndexSet, len(i.points))
	set.Add(i.tree.CollectPoints(0)...)
	return set
}

func (i *Index) Len() int {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return len(i.points)
}

func (i *Index) BuiltAt() time.Time {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return i.builtAt
}

func (i *Index) DebugInfo() quadtree.DebugInfo {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return i.tree.GetDebugInfo()
}
