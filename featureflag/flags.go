package featureflag

type Flag string

const (
	// FlagDisableFastPath makes polygon queries always descend to the leaves,
	// even when a clipped polygon matches a quadrant rectangle.
	FlagDisableFastPath Flag = "DISABLE_FAST_PATH"

	// FlagDisableNearestPruning makes nearest neighbour searches visit every
	// node instead of skipping the ones that cannot hold a closer point.
	FlagDisableNearestPruning Flag = "DISABLE_NEAREST_PRUNING"
)
