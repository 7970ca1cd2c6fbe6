package timeline

import (
	"math"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/storyerr"
)

// PlanOptions controls how a movie is laid out for rendering.
type PlanOptions struct {
	AspectRatio string  `json:"aspectRatio" yaml:"aspect_ratio"`
	Resolution  string  `json:"resolution" yaml:"resolution"`
	FPS         float64 `json:"fps" yaml:"fps"`
	Filter      string  `json:"filter,omitempty" yaml:"filter"`
	Upscaler    float64 `json:"upscaler" yaml:"upscaler"`
}

// DefaultPlanOptions returns a 1080p 16:9 layout at 30 fps.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{AspectRatio: "16:9", Resolution: "1080p", FPS: 30, Upscaler: 1}
}

// Clip is an element placed on the absolute movie timeline.
type Clip struct {
	Page    int        `json:"page"`
	Layer   int        `json:"layer"` // 0 is the page background
	Kind    SourceKind `json:"kind"`
	Start   float64    `json:"start"`
	End     float64    `json:"end"`
	Path    string     `json:"path,omitempty"`
	Effects []string   `json:"effects,omitempty"`

	Element *Element `json:"-"`
}

func newClip(p *Page, e *Element, layer int, start, end float64) Clip {
	path, _ := assetPath(e.Source)
	return Clip{
		Page:    p.Number,
		Layer:   layer,
		Kind:    e.Source.Kind(),
		Start:   start,
		End:     end,
		Path:    path,
		Effects: e.Effects.Names(),
		Element: e,
	}
}

// Duration is the clip length in seconds.
func (c Clip) Duration() float64 { return c.End - c.Start }

// Active reports whether the clip is visible at absolute time t.
func (c Clip) Active(t float64) bool { return t >= c.Start && t < c.End }

// PageSpan is a selected page on the absolute timeline.
type PageSpan struct {
	Number int     `json:"number"`
	Name   string  `json:"name,omitempty"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// Plan is the deterministic layout of a movie: canvas geometry and every
// clip with absolute timing.
type Plan struct {
	Title        string     `json:"title"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	OutputWidth  int        `json:"outputWidth"`
	OutputHeight int        `json:"outputHeight"`
	FPS          float64    `json:"fps"`
	Duration     float64    `json:"duration"`
	Pages        []PageSpan `json:"pages"`
	Video        []Clip     `json:"video"`
	Audio        []Clip     `json:"audio"`
}

// Empty reports whether no page was selected.
func (p Plan) Empty() bool { return len(p.Pages) == 0 }

// FrameCount is the number of frames covering Duration.
func (p Plan) FrameCount() int {
	return int(math.Ceil(p.Duration*p.FPS - 1e-9))
}

// FrameTime returns the timestamp of frame i in seconds.
func (p Plan) FrameTime(i int) float64 { return float64(i) / p.FPS }

// VisibleAt returns the video clips active at t in Z-order.
func (p Plan) VisibleAt(t float64) []Clip {
	var out []Clip
	for _, c := range p.Video {
		if c.Active(t) {
			out = append(out, c)
		}
	}
	return out
}

// Span is the timing metadata of one clip.
type Span struct {
	Page  int        `json:"page"`
	Layer int        `json:"layer"`
	Kind  SourceKind `json:"kind"`
	Start float64    `json:"start"`
	End   float64    `json:"end"`
}

// Timing lists the spans of every video clip followed by every audio clip.
func (p Plan) Timing() []Span {
	spans := make([]Span, 0, len(p.Video)+len(p.Audio))
	for _, clips := range [][]Clip{p.Video, p.Audio} {
		for _, c := range clips {
			spans = append(spans, Span{Page: c.Page, Layer: c.Layer, Kind: c.Kind, Start: c.Start, End: c.End})
		}
	}
	return spans
}

// Plan lays out the selected pages back to back. Page start times are the
// prefix sums of the selected pages' durations.
func (m *Movie) Plan(opts PlanOptions) (Plan, error) {
	size, err := Dimensions(opts.Resolution, opts.AspectRatio)
	if err != nil {
		return Plan{}, err
	}
	if opts.FPS <= 0 {
		return Plan{}, storyerr.Configf("fps", "must be > 0, got %v", opts.FPS)
	}
	if opts.Upscaler == 0 {
		opts.Upscaler = 1
	}
	if opts.Upscaler < 1 {
		return Plan{}, storyerr.Configf("upscaler", "must be >= 1, got %v", opts.Upscaler)
	}
	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Title:        m.Title,
		Width:        size.Width,
		Height:       size.Height,
		OutputWidth:  even(float64(size.Width) * opts.Upscaler),
		OutputHeight: even(float64(size.Height) * opts.Upscaler),
		FPS:          opts.FPS,
	}

	cursor := 0.0
	for _, p := range m.Select(filter) {
		plan.Pages = append(plan.Pages, PageSpan{Number: p.Number, Name: p.Name, Start: cursor, End: cursor + p.Duration})
		for _, c := range p.Render(cursor) {
			if IsAudio(c.Element.Source) {
				plan.Audio = append(plan.Audio, c)
				continue
			}
			ec := effect.Clip{Duration: c.Duration(), CanvasW: float64(size.Width), CanvasH: float64(size.Height)}
			if err := c.Element.Effects.Validate(ec); err != nil {
				return Plan{}, err
			}
			plan.Video = append(plan.Video, c)
		}
		cursor += p.Duration
	}
	plan.Duration = cursor
	return plan, nil
}

// even rounds v to the nearest even integer, as H.264 requires.
func even(v float64) int {
	n := int(math.Round(v))
	return n + n%2
}
