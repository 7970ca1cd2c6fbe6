package effect

import (
	"math"

	"github.com/user/storyshow/pkg/storyerr"
)

// Axis selects a coordinate for single-axis effects.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// FloatAnimation bobs an element along one axis by -scale*sin(3t).
type FloatAnimation struct {
	Axis  Axis
	Scale float64
}

// NewFloatAnimation validates the axis and scale.
func NewFloatAnimation(axis Axis, scale float64) (*FloatAnimation, error) {
	if axis == "" {
		axis = AxisY
	}
	if axis != AxisX && axis != AxisY {
		return nil, storyerr.Configf("axis", "unknown axis %q", axis)
	}
	if err := positive("scale", scale); err != nil {
		return nil, err
	}
	return &FloatAnimation{Axis: axis, Scale: scale}, nil
}

// DefaultFloatAnimation bobs vertically by 10 pixels.
func DefaultFloatAnimation() *FloatAnimation {
	return &FloatAnimation{Axis: AxisY, Scale: 10}
}

// Offset returns the displacement at time t.
func (f *FloatAnimation) Offset(t float64) float64 {
	return -f.Scale * math.Sin(3*t)
}

func (f *FloatAnimation) Name() string { return "float" }
func (f *FloatAnimation) NeedsDuration() bool { return false }
func (f *FloatAnimation) sealed() {}

func (f *FloatAnimation) Transform(s State, t float64, _ Clip) State {
	if f.Axis == AxisX {
		s.X += f.Offset(t)
	} else {
		s.Y += f.Offset(t)
	}
	return s
}

// UniformMotion moves an element linearly from From to To over its lifetime.
// If an earlier effect resized the element, the path is followed by the
// element's center so the anchor does not drift.
type UniformMotion struct {
	From Point
	To   Point
}

// NewUniformMotion creates a linear motion between two top-left positions.
func NewUniformMotion(from, to Point) *UniformMotion {
	return &UniformMotion{From: from, To: to}
}

// Position returns the top-left position at t for an element living d seconds.
func (m *UniformMotion) Position(t, d float64) Point {
	frac := clamp01(t / d)
	return Point{
		X: m.From.X + (m.To.X-m.From.X)*frac,
		Y: m.From.Y + (m.To.Y-m.From.Y)*frac,
	}
}

func (m *UniformMotion) Name() string { return "uniform_motion" }
func (m *UniformMotion) NeedsDuration() bool { return true }
func (m *UniformMotion) sealed() {}

func (m *UniformMotion) Transform(s State, t float64, c Clip) State {
	p := m.Position(t, c.Duration)
	s.X = p.X - (s.W-s.BaseW)/2
	s.Y = p.Y - (s.H-s.BaseH)/2
	return s
}

// Side names a canvas edge.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

func parseSide(side Side) (Side, error) {
	switch side {
	case SideLeft, SideRight, SideTop, SideBottom:
		return side, nil
	}
	return "", storyerr.Configf("side", "unknown side %q", side)
}

// offscreen returns the position just outside the canvas on the given side.
func offscreen(s State, side Side, c Clip) Point {
	switch side {
	case SideLeft:
		return Point{X: -s.W, Y: s.Y}
	case SideRight:
		return Point{X: c.CanvasW, Y: s.Y}
	case SideTop:
		return Point{X: s.X, Y: -s.H}
	default:
		return Point{X: s.X, Y: c.CanvasH}
	}
}

// SlideIn enters from outside the canvas during the first Duration seconds.
type SlideIn struct {
	Side     Side
	Duration float64
}

// NewSlideIn validates the side and duration.
func NewSlideIn(side Side, d float64) (*SlideIn, error) {
	side, err := parseSide(side)
	if err != nil {
		return nil, err
	}
	if err := positive("duration", d); err != nil {
		return nil, err
	}
	return &SlideIn{Side: side, Duration: d}, nil
}

func (e *SlideIn) Name() string { return "slide_in" }
func (e *SlideIn) NeedsDuration() bool { return false }
func (e *SlideIn) sealed() {}

func (e *SlideIn) Transform(s State, t float64, c Clip) State {
	start := offscreen(s, e.Side, c)
	frac := clamp01(t / e.Duration)
	s.X = start.X + (s.X-start.X)*frac
	s.Y = start.Y + (s.Y-start.Y)*frac
	return s
}

// SlideOut leaves the canvas during the last Duration seconds.
type SlideOut struct {
	Side     Side
	Duration float64
}

// NewSlideOut validates the side and duration.
func NewSlideOut(side Side, d float64) (*SlideOut, error) {
	side, err := parseSide(side)
	if err != nil {
		return nil, err
	}
	if err := positive("duration", d); err != nil {
		return nil, err
	}
	return &SlideOut{Side: side, Duration: d}, nil
}

func (e *SlideOut) Name() string { return "slide_out" }
func (e *SlideOut) NeedsDuration() bool { return true }
func (e *SlideOut) sealed() {}

func (e *SlideOut) Transform(s State, t float64, c Clip) State {
	end := offscreen(s, e.Side, c)
	frac := clamp01((t - (c.Duration - e.Duration)) / e.Duration)
	s.X += (end.X - s.X) * frac
	s.Y += (end.Y - s.Y) * frac
	return s
}
