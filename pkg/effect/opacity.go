package effect

import "math"

// CrossFadeIn ramps opacity from 0 to 1 over the first Duration seconds.
type CrossFadeIn struct {
	Duration float64
}

// NewCrossFadeIn validates the fade length.
func NewCrossFadeIn(d float64) (*CrossFadeIn, error) {
	if err := positive("duration", d); err != nil {
		return nil, err
	}
	return &CrossFadeIn{Duration: d}, nil
}

func (e *CrossFadeIn) Name() string { return "crossfade_in" }
func (e *CrossFadeIn) NeedsDuration() bool { return false }
func (e *CrossFadeIn) sealed() {}

func (e *CrossFadeIn) Transform(s State, t float64, _ Clip) State {
	s.Opacity *= clamp01(t / e.Duration)
	return s
}

// CrossFadeOut ramps opacity down to 0 over the last Duration seconds.
type CrossFadeOut struct {
	Duration float64
}

// NewCrossFadeOut validates the fade length.
func NewCrossFadeOut(d float64) (*CrossFadeOut, error) {
	if err := positive("duration", d); err != nil {
		return nil, err
	}
	return &CrossFadeOut{Duration: d}, nil
}

func (e *CrossFadeOut) Name() string { return "crossfade_out" }
func (e *CrossFadeOut) NeedsDuration() bool { return true }
func (e *CrossFadeOut) sealed() {}

func (e *CrossFadeOut) Transform(s State, t float64, c Clip) State {
	s.Opacity *= clamp01((c.Duration - t) / e.Duration)
	return s
}

// Blink shows an element for On seconds, hides it for Off seconds, and repeats.
type Blink struct {
	On  float64
	Off float64
}

// NewBlink validates both phases.
func NewBlink(on, off float64) (*Blink, error) {
	if err := positive("on", on); err != nil {
		return nil, err
	}
	if err := positive("off", off); err != nil {
		return nil, err
	}
	return &Blink{On: on, Off: off}, nil
}

// Visible reports whether the element is shown at time t.
func (e *Blink) Visible(t float64) bool {
	return math.Mod(t, e.On+e.Off) < e.On
}

func (e *Blink) Name() string { return "blink" }
func (e *Blink) NeedsDuration() bool { return false }
func (e *Blink) sealed() {}

func (e *Blink) Transform(s State, t float64, _ Clip) State {
	if !e.Visible(t) {
		s.Opacity = 0
	}
	return s
}

// Mirror flips an element horizontally, vertically, or both.
type Mirror struct {
	X bool
	Y bool
}

// MirrorX flips left to right.
func MirrorX() *Mirror { return &Mirror{X: true} }

// MirrorY flips top to bottom.
func MirrorY() *Mirror { return &Mirror{Y: true} }

func (e *Mirror) Name() string { return "mirror" }
func (e *Mirror) NeedsDuration() bool { return false }
func (e *Mirror) sealed() {}

func (e *Mirror) Transform(s State, _ float64, _ Clip) State {
	if e.X {
		s.FlipX = !s.FlipX
	}
	if e.Y {
		s.FlipY = !s.FlipY
	}
	return s
}
