package project

import (
	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// Effect is one entry of an element's effect list. Type selects the effect;
// the other fields are its parameters and default per type when omitted.
type Effect struct {
	Type string `yaml:"type"`

	// float, slide_in, slide_out
	Axis  string  `yaml:"axis"`
	Scale float64 `yaml:"scale"`
	Side  string  `yaml:"side"`

	// uniform_motion
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`

	// crossfade_in, crossfade_out, slide_in, slide_out, uniform_scale
	Duration float64 `yaml:"duration"`

	// blink
	On  float64 `yaml:"on"`
	Off float64 `yaml:"off"`

	// mirror
	X bool `yaml:"x"`
	Y bool `yaml:"y"`

	// blur, remove_color
	Sigma float64 `yaml:"sigma"`
	Color string  `yaml:"color"`

	// squish_bounce
	Frequency float64  `yaml:"frequency"`
	Amplitude *float64 `yaml:"amplitude"`

	// uniform_scale, resize, resize_by
	FromScale float64 `yaml:"from_scale"`
	ToScale   float64 `yaml:"to_scale"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Factor    float64 `yaml:"factor"`

	// swing
	StartAngle float64   `yaml:"start_angle"`
	EndAngle   float64   `yaml:"end_angle"`
	Period     float64   `yaml:"period"`
	Unit       string    `yaml:"unit"`
	Center     []float64 `yaml:"center"`
	Filter     string    `yaml:"filter"`
}

// Build constructs the effect.
func (s Effect) Build() (effect.Effect, error) {
	switch s.Type {
	case "float":
		if s.Scale == 0 {
			return effect.DefaultFloatAnimation(), nil
		}
		return effect.NewFloatAnimation(effect.Axis(s.Axis), s.Scale)
	case "uniform_motion":
		from, err := point("from", s.From)
		if err != nil {
			return nil, err
		}
		to, err := point("to", s.To)
		if err != nil {
			return nil, err
		}
		return effect.NewUniformMotion(from, to), nil
	case "slide_in":
		return effect.NewSlideIn(effect.Side(s.Side), orOne(s.Duration))
	case "slide_out":
		return effect.NewSlideOut(effect.Side(s.Side), orOne(s.Duration))
	case "crossfade_in":
		return effect.NewCrossFadeIn(orOne(s.Duration))
	case "crossfade_out":
		return effect.NewCrossFadeOut(orOne(s.Duration))
	case "blink":
		return effect.NewBlink(orOne(s.On), orOne(s.Off))
	case "mirror":
		if !s.X && !s.Y {
			return effect.MirrorX(), nil
		}
		return &effect.Mirror{X: s.X, Y: s.Y}, nil
	case "blur":
		return effect.NewBlur(orOne(s.Sigma))
	case "remove_color":
		c, err := timeline.ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		return effect.NewRemoveColor(c), nil
	case "squish_bounce":
		def := effect.DefaultSquishBounce()
		freq, amp := def.Frequency, def.Amplitude
		if s.Frequency != 0 {
			freq = s.Frequency
		}
		if s.Amplitude != nil {
			amp = *s.Amplitude
		}
		return effect.NewSquishBounce(freq, amp)
	case "uniform_scale":
		return effect.NewUniformScale(s.FromScale, s.ToScale, s.Duration)
	case "resize":
		return effect.NewResize(s.Width, s.Height)
	case "resize_by":
		return effect.NewResizeBy(s.Factor)
	case "swing":
		var opts []effect.SwingOption
		if s.Unit != "" {
			opts = append(opts, effect.WithUnit(s.Unit))
		}
		if s.Filter != "" {
			opts = append(opts, effect.WithFilter(s.Filter))
		}
		if len(s.Center) > 0 {
			c, err := point("center", s.Center)
			if err != nil {
				return nil, err
			}
			opts = append(opts, effect.WithCenter(c.X, c.Y))
		}
		return effect.NewSwing(s.StartAngle, s.EndAngle, orOne(s.Period), opts...)
	case "":
		return nil, storyerr.Configf("effect", "type is required")
	}
	return nil, storyerr.Configf("effect", "unknown type %q", s.Type)
}

func point(field string, v []float64) (effect.Point, error) {
	if len(v) != 2 {
		return effect.Point{}, storyerr.Configf(field, "want [x, y], got %v", v)
	}
	return effect.Point{X: v[0], Y: v[1]}, nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
