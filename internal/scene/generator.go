package scene

import (
	"math"

	"instancing-renderer/internal/mathutil"
)

const (
	// InitialAngle is the rotation phase before the first frame.
	InitialAngle = math.Pi

	// AngleStep is added to the phase once per generated frame.
	AngleStep = 0.003
)

// State is the shared rotation phase. It is owned by whoever drives the
// frames and never shared between goroutines.
type State struct {
	Angle float64
	// Wrap keeps Angle in [0, 2π) after each step. Off by default so the
	// stored value matches the unbounded accumulation π + 0.003·n.
	Wrap bool
}

// NewState returns a State at InitialAngle.
func NewState() State {
	return State{Angle: InitialAngle}
}

// Advance moves the phase forward by one frame and returns the new angle.
func (s *State) Advance() float64 {
	s.Angle += AngleStep
	if s.Wrap {
		s.Angle = mathutil.WrapAngle(s.Angle)
	}
	return s.Angle
}

// InstanceMatrix returns Scale × Translation × RotationY(angle).
func InstanceMatrix(p Placement, angle float64) mathutil.Mat4 {
	return mathutil.ScaleVec(p.Scale).
		Mul(mathutil.TranslationVec(p.Translation)).
		Mul(mathutil.RotationY(angle))
}

// Generate writes one transform per placement into dst, growing it if needed,
// and returns dst[:len(layout)]. Previous contents are overwritten.
func Generate(layout []Placement, angle float64, dst []mathutil.Mat4) []mathutil.Mat4 {
	if cap(dst) < len(layout) {
		dst = make([]mathutil.Mat4, len(layout))
	}
	dst = dst[:len(layout)]
	for i, p := range layout {
		dst[i] = InstanceMatrix(p, angle)
	}
	return dst
}

// Generator advances a State and regenerates a layout once per frame.
type Generator struct {
	State  State
	Layout []Placement
}

// NewGenerator returns a Generator over DefaultLayout starting at InitialAngle.
func NewGenerator() *Generator {
	return &Generator{State: NewState(), Layout: Layout()}
}

// Populate advances the phase, then fully replaces dst with the new transforms.
func (g *Generator) Populate(dst []mathutil.Mat4) []mathutil.Mat4 {
	angle := g.State.Advance()
	return Generate(g.Layout, angle, dst)
}
