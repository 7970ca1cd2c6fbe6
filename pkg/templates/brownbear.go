package templates

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// BrownBearConfig is the config.json of the brownbear template: a
// "Brown bear, brown bear, what do you see?" chain where every object gets a
// question page and an answer page that hands over to the next object.
type BrownBearConfig struct {
	Objects []Bear `yaml:"objects"`
}

// Bear is one link of the chain.
type Bear struct {
	Image            string  `yaml:"image"`
	NextImage        string  `yaml:"next_image"` // Defaults to the next object's image
	QuestionText     string  `yaml:"question_text"`
	AnswerText       string  `yaml:"answer_text"`
	QuestionDuration float64 `yaml:"question_duration"`
	AnswerDuration   float64 `yaml:"answer_duration"`
}

const (
	bearFontSize    = 80
	bearTextMargin  = 50
	bearTextBottom  = 200
	bearFade        = 0.5
	bearMoveSeconds = 1.0
)

// ApplyDefaults fills every unset field.
func (c *BrownBearConfig) ApplyDefaults() {
	for i := range c.Objects {
		o := &c.Objects[i]
		o.QuestionDuration = orDefault(o.QuestionDuration, 4)
		o.AnswerDuration = orDefault(o.AnswerDuration, 4)
	}
}

// Validate reports the first invalid field.
func (c *BrownBearConfig) Validate() error {
	if len(c.Objects) == 0 {
		return storyerr.Configf("objects", "at least one object is required")
	}
	for i, o := range c.Objects {
		field := func(name string) string { return fmt.Sprintf("objects[%d].%s", i, name) }
		switch {
		case o.Image == "":
			return storyerr.Configf(field("image"), "is required")
		case o.QuestionText == "":
			return storyerr.Configf(field("question_text"), "is required")
		case o.AnswerText == "":
			return storyerr.Configf(field("answer_text"), "is required")
		case o.QuestionDuration < 0:
			return storyerr.Configf(field("question_duration"), "must be >= 0")
		case o.AnswerDuration < 2*bearMoveSeconds:
			return storyerr.Configf(field("answer_duration"), "must be >= %v, got %v", 2*bearMoveSeconds, o.AnswerDuration)
		}
	}
	return nil
}

// BrownBear is the brownbear template.
type BrownBear struct {
	deps Deps
}

// NewBrownBear creates the template.
func NewBrownBear(deps Deps) *BrownBear {
	return &BrownBear{deps: deps}
}

func (t *BrownBear) Name() string { return "brownbear" }

// Build loads the config from the input directory and adds two pages per object.
func (t *BrownBear) Build(ctx context.Context, m *timeline.Movie, p Params) error {
	var cfg BrownBearConfig
	if err := LoadConfig(t.deps.FS, p.InputDir, &cfg); err != nil {
		return err
	}
	return t.BuildConfig(ctx, m, p.Canvas, cfg)
}

// BuildConfig adds the pages described by cfg.
func (t *BrownBear) BuildConfig(ctx context.Context, m *timeline.Movie, canvas timeline.CanvasSize, cfg BrownBearConfig) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	b := bearBuilder{cfg: cfg, w: float64(canvas.Width), h: float64(canvas.Height)}
	for i := range cfg.Objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.question(m, i); err != nil {
			return fmt.Errorf("object %d question: %w", i+1, err)
		}
		if err := b.answer(m, i); err != nil {
			return fmt.Errorf("object %d answer: %w", i+1, err)
		}
	}
	t.deps.Logger.Debug("Built %d pages from %s", 2*len(cfg.Objects), t.Name())
	return nil
}

type bearBuilder struct {
	cfg  BrownBearConfig
	w, h float64
}

// image returns the full-canvas picture of object idx. Odd objects are
// mirrored so consecutive animals face each other.
func (b bearBuilder) image(idx int) (timeline.Source, []timeline.ElemOption) {
	return timeline.Image(b.cfg.Objects[idx].Image), []timeline.ElemOption{
		timeline.Size(b.w, b.h),
		timeline.Flip(idx%2 == 1, false),
	}
}

// next returns the picture that takes over from object idx.
func (b bearBuilder) next(idx int) (timeline.Source, []timeline.ElemOption) {
	if n := b.cfg.Objects[idx].NextImage; n != "" {
		return timeline.Image(n), nil
	}
	return b.image((idx + 1) % len(b.cfg.Objects))
}

func (b bearBuilder) caption(page *timeline.Page, text string) error {
	in, err := effect.NewCrossFadeIn(bearFade)
	if err != nil {
		return err
	}
	out, err := effect.NewCrossFadeOut(bearFade)
	if err != nil {
		return err
	}
	_, err = page.Elem(
		timeline.Text(text, ports.TextStyle{
			FontSize: bearFontSize,
			Color:    color.Black,
			Margin:   [2]int{bearTextMargin, bearTextMargin},
		}),
		timeline.Place(timeline.Position{
			X: timeline.Coord{Anchor: timeline.AlignCenter},
			Y: timeline.Coord{Value: b.h - bearTextBottom},
		}),
		timeline.Effects(in, out),
	)
	return err
}

func (b bearBuilder) question(m *timeline.Movie, idx int) error {
	o := b.cfg.Objects[idx]
	return m.Build(func(page *timeline.Page) error {
		bounce, err := effect.NewSquishBounce(1, effect.DefaultSquishBounce().Amplitude)
		if err != nil {
			return err
		}
		src, opts := b.image(idx)
		opts = append(opts, timeline.AtXY(0, 0), timeline.Effects(bounce))
		if _, err := page.Elem(src, opts...); err != nil {
			return err
		}
		return b.caption(page, o.QuestionText)
	}, timeline.PageDuration(o.QuestionDuration), timeline.PageBackground("#ffffff"), timeline.PageName(fmt.Sprintf("question-%d", idx+1)))
}

// answer slides object idx to one side while the next object enters from
// the other, bounces both, then moves the next object to the center.
func (b bearBuilder) answer(m *timeline.Movie, idx int) error {
	o := b.cfg.Objects[idx]
	total := o.AnswerDuration
	half := b.w / 2

	side := func(i int, v float64) float64 {
		if i%2 == 0 {
			return -v
		}
		return v
	}
	center := effect.Point{}
	oneSide := effect.Point{X: side(idx, half)}
	outside := effect.Point{X: side(idx, b.w)}
	nextOther := effect.Point{X: side(idx+1, half)}
	nextOutside := effect.Point{X: side(idx+1, b.w)}

	type step struct {
		next     bool
		from, to effect.Point
		start    float64
		duration float64
		bounce   bool
	}
	steps := []step{
		{next: false, from: center, to: oneSide, start: 0, duration: bearMoveSeconds},
		{next: true, from: nextOutside, to: nextOther, start: 0, duration: bearMoveSeconds},
		{next: false, from: oneSide, start: bearMoveSeconds, duration: total - 2*bearMoveSeconds, bounce: true},
		{next: true, from: nextOther, start: bearMoveSeconds, duration: total - 2*bearMoveSeconds, bounce: true},
		{next: false, from: oneSide, to: outside, start: total - bearMoveSeconds, duration: bearMoveSeconds},
		{next: true, from: nextOther, to: center, start: total - bearMoveSeconds, duration: bearMoveSeconds},
	}

	return m.Build(func(page *timeline.Page) error {
		for _, s := range steps {
			if s.duration <= 0 {
				continue
			}
			src, opts := b.image(idx)
			if s.next {
				src, opts = b.next(idx)
			}
			opts = append(opts,
				timeline.AtXY(s.from.X, s.from.Y),
				timeline.Start(s.start),
				timeline.Duration(s.duration),
			)
			if s.bounce {
				bounce, err := effect.NewSquishBounce(1, effect.DefaultSquishBounce().Amplitude)
				if err != nil {
					return err
				}
				opts = append(opts, timeline.Effects(bounce))
			} else {
				opts = append(opts, timeline.Effects(effect.NewUniformMotion(s.from, s.to)))
			}
			if _, err := page.Elem(src, opts...); err != nil {
				return err
			}
		}
		return b.caption(page, o.AnswerText)
	}, timeline.PageDuration(total), timeline.PageBackground("#ffffff"), timeline.PageName(fmt.Sprintf("answer-%d", idx+1)))
}
