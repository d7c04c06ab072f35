package quadtree

import (
	"unsafe"

	"github.com/paulmach/orb"
)

// DebugInfo summarizes the shape of a tree.
type DebugInfo struct {
	NodeCount    int
	LeafCount    int
	MaxDepth     int
	StoredPoints int
	RootCenter   orb.Point
	RootHalfSize orb.Point

	// The number of point indices stored by leaves at each depth.
	Occupancy []int

	// Estimated memory used by the arena, in bytes.
	MemoryBytes int
}

func (t *QuadTree) GetDebugInfo() DebugInfo {
	info := DebugInfo{
		NodeCount:   len(t.nodes),
		MemoryBytes: int(unsafe.Sizeof(*t)) + len(t.nodes)*int(unsafe.Sizeof(Node{})),
	}
	if len(t.nodes) == 0 {
		return info
	}

	info.RootCenter = t.nodes[0].Center
	info.RootHalfSize = t.nodes[0].HalfSize

	for _, n := range t.nodes {
		if n.Depth > info.MaxDepth {
			info.MaxDepth = n.Depth
		}
	}

	info.Occupancy = make([]int, info.MaxDepth+1)
	for _, n := range t.nodes {
		info.MemoryBytes += (len(n.Points) + len(n.Children)) * int(unsafe.Sizeof(int(0)))
		if !n.IsLeaf() {
			continue
		}
		info.LeafCount++
		info.StoredPoints += len(n.Points)
		info.Occupancy[n.Depth] += len(n.Points)
	}

	return info
}
