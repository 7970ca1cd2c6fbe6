package effect

import (
	"math"

	"github.com/user/storyshow/pkg/storyerr"
)

// Swing rotates an element back and forth between two angles:
//
//	angle(t) = mid + amp*sin(2π(t mod T)/T)
//
// with mid the midpoint of the two angles and amp half their distance.
type Swing struct {
	Start  float64
	End    float64
	Period float64

	radians  bool
	center   *Point
	resample Resample
}

type swingConfig struct {
	unit   string
	center *Point
	filter string
}

// SwingOption customizes a Swing.
type SwingOption func(*swingConfig)

// WithUnit sets the angle unit, "deg" (default) or "rad".
func WithUnit(unit string) SwingOption {
	return func(c *swingConfig) { c.unit = unit }
}

// WithCenter rotates about a point relative to the element's top-left corner.
func WithCenter(x, y float64) SwingOption {
	return func(c *swingConfig) { c.center = &Point{X: x, Y: y} }
}

// WithFilter selects the resampling filter: nearest, bilinear or bicubic.
func WithFilter(name string) SwingOption {
	return func(c *swingConfig) { c.filter = name }
}

// NewSwing validates the period, unit and filter.
func NewSwing(start, end, period float64, opts ...SwingOption) (*Swing, error) {
	cfg := swingConfig{unit: "deg", filter: "bicubic"}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := positive("period", period); err != nil {
		return nil, err
	}
	if cfg.unit != "deg" && cfg.unit != "rad" {
		return nil, storyerr.Configf("unit", "must be deg or rad, got %q", cfg.unit)
	}
	resample, err := ParseResample(cfg.filter)
	if err != nil {
		return nil, err
	}

	return &Swing{
		Start:    start,
		End:      end,
		Period:   period,
		radians:  cfg.unit == "rad",
		center:   cfg.center,
		resample: resample,
	}, nil
}

// Angle returns the rotation at time t in the configured unit.
func (s *Swing) Angle(t float64) float64 {
	mid := (s.Start + s.End) / 2
	amp := math.Abs(s.End-s.Start) / 2
	phase := math.Mod(t, s.Period) / s.Period
	return mid + amp*math.Sin(2*math.Pi*phase)
}

// Degrees returns the rotation at time t in degrees.
func (s *Swing) Degrees(t float64) float64 {
	a := s.Angle(t)
	if s.radians {
		return a * 180 / math.Pi
	}
	return a
}

func (s *Swing) Name() string { return "swing" }
func (s *Swing) NeedsDuration() bool { return false }
func (s *Swing) sealed() {}

func (s *Swing) Transform(st State, t float64, _ Clip) State {
	st.Angle += s.Degrees(t)
	st.Resample = s.resample
	if s.center != nil {
		c := *s.center
		st.Pivot = &c
	}
	return st
}
