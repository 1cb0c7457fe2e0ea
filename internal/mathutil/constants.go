package mathutil

import "math"

const (
	// TwoPi is one full turn in radians.
	TwoPi = 2 * math.Pi

	// Epsilon is the tolerance used when comparing composed matrices.
	Epsilon = 1e-9
)
