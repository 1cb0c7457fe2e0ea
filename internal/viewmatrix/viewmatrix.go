package viewmatrix

import (
	"math"
	"strconv"
	"strings"

	"instancing-renderer/internal/mathutil"
)

// Option selects one of the preset camera poses.
type Option int

const (
	Front Option = iota
	Back
	Left
	Right
	Top
	Bottom
	Close
	Far

	optionCount = 8
)

var (
	labels = [optionCount]string{"Frontal", "Trasera", "Izquierda", "Derecha", "Superior", "Inferior", "Cercana", "Lejana"}
	names  = [optionCount]string{"front", "back", "left", "right", "top", "bottom", "close", "far"}
)

// Options returns every selectable option in UI order.
func Options() []Option {
	out := make([]Option, optionCount)
	for i := range out {
		out[i] = Option(i)
	}
	return out
}

// Valid reports whether o names a preset. Anything else renders as Front.
func (o Option) Valid() bool {
	return o >= 0 && o < optionCount
}

// Label is the caption shown in the view combo box.
func (o Option) Label() string {
	if !o.Valid() {
		return labels[Front]
	}
	return labels[o]
}

func (o Option) String() string {
	if !o.Valid() {
		return names[Front]
	}
	return names[o]
}

// Labels returns the combo box captions in order.
func Labels() []string {
	l := labels
	return l[:]
}

// Parse accepts an index, an English name or a combo label, case-insensitively.
func Parse(s string) (Option, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Option(n), Option(n).Valid()
	}
	for i := 0; i < optionCount; i++ {
		if strings.EqualFold(s, names[i]) || strings.EqualFold(s, labels[i]) {
			return Option(i), true
		}
	}
	return Front, false
}

// Select returns the view transform for a combo index. Out-of-range values
// fall back to the front view.
func Select(option int) mathutil.Mat4 {
	switch Option(option) {
	case Back:
		return mathutil.Translation(0, 3, -20).Mul(mathutil.RotationY(math.Pi))
	case Left:
		return mathutil.Translation(20, 3, 0).Mul(mathutil.RotationY(-math.Pi / 2))
	case Right:
		return mathutil.Translation(-20, 3, 0).Mul(mathutil.RotationY(math.Pi / 2))
	case Top:
		return mathutil.Translation(0, 20, 0).Mul(mathutil.RotationX(math.Pi / 2))
	case Bottom:
		return mathutil.Translation(0, -20, 0).Mul(mathutil.RotationX(-math.Pi / 2))
	case Close:
		return mathutil.Translation(0, 2, 10)
	case Far:
		return mathutil.Translation(0, 20, 50).Mul(mathutil.RotationX(math.Pi / 12))
	default:
		return mathutil.Translation(0, 3, 20)
	}
}
