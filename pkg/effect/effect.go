// Package effect provides parametric, time-pure transforms for timeline elements.
//
// An Effect maps the visual state of an element (position, size, rotation,
// opacity) at local time t to a new state. Effects carry only their
// construction parameters and are safe to share between elements and
// goroutines. Some effects also implement PixelFilter and transform the
// decoded frame itself.
package effect

import (
	"fmt"
	"image"

	"github.com/user/storyshow/pkg/storyerr"
)

// ErrUnboundedDuration is returned when an effect that interpolates over the
// element's lifetime is evaluated without a bounded duration.
var ErrUnboundedDuration = fmt.Errorf("%w: effect requires a bounded duration", storyerr.ErrConfig)

// Point is a 2D coordinate in canvas pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// State is the per-frame visual state of an element.
type State struct {
	X, Y float64 // Top-left corner in canvas pixels
	W, H float64 // Drawn size

	// BaseW and BaseH hold the size before any effect ran.
	BaseW, BaseH float64

	Angle    float64 // Counter-clockwise rotation in degrees
	Pivot    *Point  // Rotation center relative to the top-left; nil rotates about the center
	Resample Resample

	Opacity      float64
	FlipX, FlipY bool
}

// NewState returns the state of an untransformed element.
func NewState(x, y, w, h float64) State {
	return State{
		X: x, Y: y,
		W: w, H: h,
		BaseW: w, BaseH: h,
		Resample: Bicubic,
		Opacity:  1,
	}
}

// Clip describes the time domain and canvas an effect is evaluated in.
type Clip struct {
	Duration float64 // Element lifetime in seconds; 0 means unbounded
	CanvasW  float64
	CanvasH  float64
}

// Effect is the closed set of element transforms defined by this package.
type Effect interface {
	// Name returns the effect's identifier as used in project files.
	Name() string

	// NeedsDuration reports whether the effect interpolates over Clip.Duration.
	NeedsDuration() bool

	// Transform returns the state at local time t.
	Transform(s State, t float64, c Clip) State

	sealed()
}

// PixelFilter is implemented by effects that alter frame pixels.
type PixelFilter interface {
	Effect
	Filter(img image.Image, t float64) image.Image
}

// Chain is an ordered list of effects. Later effects see the state produced
// by earlier ones, so order matters.
type Chain []Effect

// Validate checks that every effect can be evaluated within c.
func (ch Chain) Validate(c Clip) error {
	for _, e := range ch {
		if e.NeedsDuration() && c.Duration <= 0 {
			return fmt.Errorf("%s: %w", e.Name(), ErrUnboundedDuration)
		}
	}
	return nil
}

// Apply folds every effect over s at local time t.
func (ch Chain) Apply(s State, t float64, c Clip) (State, error) {
	if err := ch.Validate(c); err != nil {
		return s, err
	}
	for _, e := range ch {
		s = e.Transform(s, t, c)
	}
	return s, nil
}

// Filter runs the pixel filters of the chain in order.
func (ch Chain) Filter(img image.Image, t float64) image.Image {
	for _, e := range ch {
		if f, ok := e.(PixelFilter); ok {
			img = f.Filter(img, t)
		}
	}
	return img
}

// HasFilters reports whether any effect in the chain touches pixels.
func (ch Chain) HasFilters() bool {
	for _, e := range ch {
		if _, ok := e.(PixelFilter); ok {
			return true
		}
	}
	return false
}

// Names lists the effect names in order.
func (ch Chain) Names() []string {
	names := make([]string, len(ch))
	for i, e := range ch {
		names[i] = e.Name()
	}
	return names
}

// Must panics if err is non-nil. It is meant for effects built from literals.
func Must[T Effect](e T, err error) T {
	if err != nil {
		panic(err)
	}
	return e
}

func positive(field string, v float64) error {
	if v <= 0 {
		return storyerr.Configf(field, "must be > 0, got %v", v)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
