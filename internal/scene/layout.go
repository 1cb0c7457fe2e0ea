package scene

import "instancing-renderer/internal/mathutil"

// Placement is one instance's fixed scale and offset. The shared rotation is
// applied after both.
type Placement struct {
	Scale       mathutil.Vec3
	Translation mathutil.Vec3
}

// InstanceCount is the number of instances in DefaultLayout.
const InstanceCount = 22

var (
	unit = mathutil.Vec3{1, 1, 1}

	// DefaultLayout is the decorative tower: a floor cross, pillars, a
	// central spine, a roof cross and two tiers of corner blocks.
	DefaultLayout = [InstanceCount]Placement{
		// floor cross
		{mathutil.Vec3{5, 0.1, 0.01}, mathutil.Vec3{0, 0, 0}},
		{mathutil.Vec3{0.01, 0.1, 5}, mathutil.Vec3{0, 0, 0}},

		// pillars
		{mathutil.Vec3{0.1, 1, 0.01}, mathutil.Vec3{-5, -1, 0}},
		{mathutil.Vec3{0.1, 1, 0.01}, mathutil.Vec3{5, -1, 0}},
		{mathutil.Vec3{0.1, 1, 0.01}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{0, -1, -5}},
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{0, -1, 5}},

		// first tier of blocks
		{unit, mathutil.Vec3{-5, -2, 0}},
		{unit, mathutil.Vec3{5, -2, 0}},
		{unit, mathutil.Vec3{0, -2, -5}},
		{unit, mathutil.Vec3{0, -2, 5}},

		// roof cross
		{mathutil.Vec3{3, 0.05, 0.01}, mathutil.Vec3{0, -5, 0}},
		{mathutil.Vec3{0.01, 0.05, 3}, mathutil.Vec3{0, -5, 0}},

		// spine
		{mathutil.Vec3{0.05, 4, 0.01}, mathutil.Vec3{0, -1, 0}},

		// hangers
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{-3, -6, 0}},
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{3, -6, 0}},
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{0, -6, 3}},
		{mathutil.Vec3{0.05, 1, 0.01}, mathutil.Vec3{0, -6, -3}},

		// second tier of blocks
		{unit, mathutil.Vec3{-3, -7, 0}},
		{unit, mathutil.Vec3{3, -7, 0}},
		{unit, mathutil.Vec3{0, -7, 3}},
		{unit, mathutil.Vec3{0, -7, -3}},
	}
)

// Layout returns a copy of DefaultLayout as a slice.
func Layout() []Placement {
	l := DefaultLayout
	return l[:]
}
