package effect

import "math"

// SquishBounce oscillates an element's size while its bottom-left corner
// stays fixed: width grows by A*sin(2πft) and height by A*cos(2πft).
type SquishBounce struct {
	Frequency float64
	Amplitude float64
}

// NewSquishBounce validates the frequency.
func NewSquishBounce(frequency, amplitude float64) (*SquishBounce, error) {
	if err := positive("frequency", frequency); err != nil {
		return nil, err
	}
	return &SquishBounce{Frequency: frequency, Amplitude: amplitude}, nil
}

// DefaultSquishBounce bounces twice a second by 10 pixels.
func DefaultSquishBounce() *SquishBounce {
	return &SquishBounce{Frequency: 2, Amplitude: 10}
}

// Delta returns the width and height change at time t.
func (e *SquishBounce) Delta(t float64) (dw, dh float64) {
	phase := 2 * math.Pi * e.Frequency * t
	return e.Amplitude * math.Sin(phase), e.Amplitude * math.Cos(phase)
}

func (e *SquishBounce) Name() string { return "squish_bounce" }
func (e *SquishBounce) NeedsDuration() bool { return false }
func (e *SquishBounce) sealed() {}

func (e *SquishBounce) Transform(s State, t float64, _ Clip) State {
	dw, dh := e.Delta(t)
	s.W += dw
	s.H += dh
	s.Y -= dh
	return s
}

// UniformScale interpolates a scale factor from From to To over Duration
// seconds, or over the element's lifetime when Duration is zero. The factor
// holds at To afterwards. Scaling keeps the element's center in place.
type UniformScale struct {
	From     float64
	To       float64
	Duration float64
}

// NewUniformScale validates that both factors are positive.
func NewUniformScale(from, to, duration float64) (*UniformScale, error) {
	if err := positive("from_scale", from); err != nil {
		return nil, err
	}
	if err := positive("to_scale", to); err != nil {
		return nil, err
	}
	if duration < 0 {
		return nil, positive("duration", duration)
	}
	return &UniformScale{From: from, To: to, Duration: duration}, nil
}

// Factor returns the scale at time t.
func (e *UniformScale) Factor(t float64, c Clip) float64 {
	d := e.Duration
	if d == 0 {
		d = c.Duration
	}
	if t >= d {
		return e.To
	}
	if t <= 0 {
		return e.From
	}
	return e.From + (e.To-e.From)*t/d
}

func (e *UniformScale) Name() string { return "uniform_scale" }
func (e *UniformScale) NeedsDuration() bool { return e.Duration == 0 }
func (e *UniformScale) sealed() {}

func (e *UniformScale) Transform(s State, t float64, c Clip) State {
	return scaleAboutCenter(s, e.Factor(t, c))
}

// Resize sets a fixed drawn size, keeping the top-left corner.
type Resize struct {
	W, H float64
}

// NewResize validates the target size.
func NewResize(w, h float64) (*Resize, error) {
	if err := positive("width", w); err != nil {
		return nil, err
	}
	if err := positive("height", h); err != nil {
		return nil, err
	}
	return &Resize{W: w, H: h}, nil
}

func (e *Resize) Name() string { return "resize" }
func (e *Resize) NeedsDuration() bool { return false }
func (e *Resize) sealed() {}

func (e *Resize) Transform(s State, _ float64, _ Clip) State {
	s.W, s.H = e.W, e.H
	return s
}

// ResizeBy multiplies the drawn size by a constant factor.
type ResizeBy struct {
	Factor float64
}

// NewResizeBy validates the factor.
func NewResizeBy(factor float64) (*ResizeBy, error) {
	if err := positive("factor", factor); err != nil {
		return nil, err
	}
	return &ResizeBy{Factor: factor}, nil
}

func (e *ResizeBy) Name() string { return "resize_by" }
func (e *ResizeBy) NeedsDuration() bool { return false }
func (e *ResizeBy) sealed() {}

func (e *ResizeBy) Transform(s State, _ float64, _ Clip) State {
	s.W *= e.Factor
	s.H *= e.Factor
	return s
}

func scaleAboutCenter(s State, f float64) State {
	nw, nh := s.W*f, s.H*f
	s.X -= (nw - s.W) / 2
	s.Y -= (nh - s.H) / 2
	s.W, s.H = nw, nh
	return s
}
