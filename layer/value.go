package layer

import "fmt"

// A Value is an animatable quantity. The set of implementations is closed:
// Position, Offset and Opacity.
type Value interface {
	isValue()
}

// Position is an absolute layer origin.
type Position struct {
	X float64
	Y float64
}

// Offset is a position delta relative to the origin at the time an Animate is
// dequeued. It is only accepted as an Animate target and is translated into a
// Position before the animation starts.
type Offset struct {
	DX float64
	DY float64
}

// Opacity is an absolute layer opacity, normally within [0, 1].
type Opacity float64

func (Position) isValue() {}
func (Offset) isValue()   {}
func (Opacity) isValue()  {}

// Interpolate blends from a to b at progress t. Both values must be of the same
// kind; mixing kinds, or passing an Offset, is a programming error and panics.
// t is clamped to [0, 1] so overshooting easings settle on the end points.
func Interpolate(a, b Value, t float64) Value {
	t = 1.0 - clamp01(t)

	switch from := a.(type) {
	case Position:
		to, ok := b.(Position)
		if !ok {
			break
		}
		return Position{
			X: to.X + (from.X-to.X)*t,
			Y: to.Y + (from.Y-to.Y)*t,
		}
	case Opacity:
		to, ok := b.(Opacity)
		if !ok {
			break
		}
		return to + (from-to)*Opacity(t)
	}

	panic(fmt.Sprintf("layer: cannot interpolate %T to %T", a, b))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
