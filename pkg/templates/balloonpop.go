package templates

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// BalloonPopConfig is the config.json of the balloonpop template. Each
// object gets one page: balloons float over the object and pop one by one,
// each leaving a burst of confetti.
type BalloonPopConfig struct {
	BalloonsAssets   []string  `yaml:"balloons_assets"`
	BalloonsCount    int       `yaml:"balloons_count"`
	BalloonsScale    float64   `yaml:"balloons_scale"`
	CongratsAsset    string    `yaml:"congrats_asset"`
	CongratsDuration float64   `yaml:"congrats_duration"`
	CongratsScale    float64   `yaml:"congrats_scale"`
	Seed             int64     `yaml:"seed"`
	Objects          []Balloon `yaml:"objects"`
}

// Balloon is one page of the balloonpop template.
type Balloon struct {
	Object        string  `yaml:"object"`
	ObjectScale   float64 `yaml:"object_scale"`
	Background    string  `yaml:"background"`
	IntroDuration float64 `yaml:"intro_duration"`
	PopDuration   float64 `yaml:"pop_duration"`
	OutroDuration float64 `yaml:"outtro_duration"`
}

const (
	balloonMargin     = 100
	balloonFloatScale = 30
	balloonMaxSwing   = 5.0
	confettiBaseScale = 0.5
)

// ApplyDefaults fills every unset field.
func (c *BalloonPopConfig) ApplyDefaults() {
	if len(c.BalloonsAssets) == 0 {
		c.BalloonsAssets = []string{"BalloonYellow.png", "BalloonRed.png", "BalloonGreen.png", "BalloonBlue.png"}
	}
	c.BalloonsCount = orDefault(c.BalloonsCount, 40)
	c.BalloonsScale = orDefault(c.BalloonsScale, 0.8)
	c.CongratsAsset = orDefault(c.CongratsAsset, "Confetti2.gif")
	c.CongratsDuration = orDefault(c.CongratsDuration, 1.2)
	c.CongratsScale = orDefault(c.CongratsScale, 0.5)
	c.Seed = orDefault(c.Seed, int64(DefaultSeed))
	for i := range c.Objects {
		o := &c.Objects[i]
		o.ObjectScale = orDefault(o.ObjectScale, 1)
		o.IntroDuration = orDefault(o.IntroDuration, 2)
		o.PopDuration = orDefault(o.PopDuration, 8)
		o.OutroDuration = orDefault(o.OutroDuration, 4)
	}
}

// Validate reports the first invalid field.
func (c *BalloonPopConfig) Validate() error {
	if len(c.Objects) == 0 {
		return storyerr.Configf("objects", "at least one object is required")
	}
	if c.BalloonsCount < 0 {
		return storyerr.Configf("balloons_count", "must be >= 0, got %d", c.BalloonsCount)
	}
	for i, o := range c.Objects {
		if o.Object == "" {
			return storyerr.Configf(fmt.Sprintf("objects[%d].object", i), "is required")
		}
		if o.IntroDuration < 0 || o.PopDuration < 0 || o.OutroDuration < 0 {
			return storyerr.Configf(fmt.Sprintf("objects[%d]", i), "durations must be >= 0")
		}
	}
	return nil
}

// BalloonPop is the balloonpop template.
type BalloonPop struct {
	deps Deps
}

// NewBalloonPop creates the template.
func NewBalloonPop(deps Deps) *BalloonPop {
	return &BalloonPop{deps: deps}
}

func (t *BalloonPop) Name() string { return "balloonpop" }

// Build loads the config from the input directory and adds one page per object.
func (t *BalloonPop) Build(ctx context.Context, m *timeline.Movie, p Params) error {
	var cfg BalloonPopConfig
	if err := LoadConfig(t.deps.FS, p.InputDir, &cfg); err != nil {
		return err
	}
	return t.BuildConfig(ctx, m, p.Canvas, cfg)
}

// BuildConfig adds the pages described by cfg.
func (t *BalloonPop) BuildConfig(ctx context.Context, m *timeline.Movie, canvas timeline.CanvasSize, cfg BalloonPopConfig) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i, obj := range cfg.Objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.page(ctx, m, canvas, cfg, obj, rng); err != nil {
			return fmt.Errorf("object %d: %w", i+1, err)
		}
	}
	t.deps.Logger.Debug("Built %d pages from %s", len(cfg.Objects), t.Name())
	return nil
}

func (t *BalloonPop) page(ctx context.Context, m *timeline.Movie, canvas timeline.CanvasSize, cfg BalloonPopConfig, obj Balloon, rng *rand.Rand) error {
	cw, ch := float64(canvas.Width), float64(canvas.Height)
	total := obj.IntroDuration + obj.PopDuration + obj.OutroDuration

	confW, confH, err := assetSize(ctx, t.deps, cfg.CongratsAsset)
	if err != nil {
		return err
	}
	confScale := confettiBaseScale * cfg.CongratsScale
	confW, confH = confW*confScale, confH*confScale

	return m.Build(func(page *timeline.Page) error {
		if obj.Background != "" {
			if _, err := page.Elem(timeline.Image(obj.Background), timeline.Place(timeline.Centered()), timeline.Size(cw, ch)); err != nil {
				return err
			}
		}

		ow, oh, err := assetSize(ctx, t.deps, obj.Object)
		if err != nil {
			return err
		}
		if _, err := page.Elem(timeline.Image(obj.Object),
			timeline.Place(timeline.Centered()),
			timeline.Size(ow*obj.ObjectScale, oh*obj.ObjectScale),
			timeline.Effects(effect.DefaultSquishBounce()),
		); err != nil {
			return err
		}

		n := cfg.BalloonsCount
		for i := 0; i < n; i++ {
			asset := cfg.BalloonsAssets[i%len(cfg.BalloonsAssets)]
			angle := rng.Float64() * balloonMaxSwing
			// Balloons pop back to front, one every PopDuration/n seconds.
			life := obj.IntroDuration + obj.PopDuration/float64(n)*float64(n-i)

			bw, bh, err := assetSize(ctx, t.deps, asset)
			if err != nil {
				return err
			}
			bw, bh = bw*cfg.BalloonsScale, bh*cfg.BalloonsScale
			x := randomIn(rng, balloonMargin, cw-balloonMargin-bw)
			y := randomIn(rng, balloonMargin, ch-balloonMargin-bh)

			swing, err := effect.NewSwing(-angle, angle, 1)
			if err != nil {
				return err
			}
			bob, err := effect.NewFloatAnimation(effect.AxisY, balloonFloatScale)
			if err != nil {
				return err
			}
			if _, err := page.Elem(balloonSource(asset),
				timeline.AtXY(x, y),
				timeline.Size(bw, bh),
				timeline.Duration(life),
				timeline.Effects(bob, swing),
			); err != nil {
				return err
			}

			c := timeline.AnchorCenter(x, y, bw, bh, confW, confH)
			if _, err := page.Elem(timeline.Video(cfg.CongratsAsset, false),
				timeline.AtXY(max(0, c.X), max(0, c.Y)),
				timeline.Size(confW, confH),
				timeline.Start(life),
				timeline.Duration(cfg.CongratsDuration),
			); err != nil {
				return err
			}
		}
		return nil
	}, timeline.PageDuration(total), timeline.PageBackground("#ffffff"), timeline.PageName(obj.Object))
}

// balloonSource treats PNG balloons as stills and anything else as a
// looping animation.
func balloonSource(asset string) timeline.Source {
	if strings.HasSuffix(strings.ToLower(asset), ".png") {
		return timeline.Image(asset)
	}
	return timeline.Video(asset, true)
}

// randomIn returns an integral coordinate in [lo, hi), or lo when the range
// is empty.
func randomIn(rng *rand.Rand, lo, hi float64) float64 {
	n := int(hi - lo)
	if n <= 0 {
		return lo
	}
	return lo + float64(rng.Intn(n))
}
