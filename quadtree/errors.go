package quadtree

const (
	// ErrTypeInvalidNodeIndex is the type of the value a tree panics with when
	// a node index is outside of its arena.
	ErrTypeInvalidNodeIndex = "invalid_node_index"

	// ErrTypeQueryFailed is the type of errors returned by polygon queries
	// when the query polygon could not be clipped.
	ErrTypeQueryFailed = "query_failed"
)
