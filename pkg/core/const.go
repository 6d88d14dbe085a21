package core

const (
	// Epsilon is the geometric tolerance for parallel/degenerate tests
	Epsilon = 1e-9

	// MaxIntersectDistance bounds numerically runaway intersection
	// solutions; anything farther is treated as a miss
	MaxIntersectDistance = 1e7

	// DefaultSemidia is the aperture half-diameter assumed when a
	// surface record leaves its aperture unspecified
	DefaultSemidia = 12.7
)
