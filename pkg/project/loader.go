package project

import (
	"context"
	"fmt"
	"math"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// Voices returns the path of a synthesized voiceover, synthesizing it on
// first use.
type Voices interface {
	Path(ctx context.Context, text, voice string) (string, error)
}

// Loader turns project files into movies.
type Loader struct {
	fs     ports.FileSystem
	assets ports.AssetResolver
	prober ports.MediaProber
	voices Voices // nil disables voiceover elements
	logger ports.Logger
}

// NewLoader creates a Loader. voices may be nil.
func NewLoader(fs ports.FileSystem, assets ports.AssetResolver, prober ports.MediaProber, voices Voices, logger ports.Logger) *Loader {
	return &Loader{
		fs:     fs,
		assets: assets,
		prober: prober,
		voices: voices,
		logger: logger.WithComponent("project"),
	}
}

// LoadFile reads and builds the project at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*timeline.Movie, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, p)
}

// Build maps p onto a new movie.
func (l *Loader) Build(ctx context.Context, p Project) (*timeline.Movie, error) {
	m := timeline.New(p.Title, timeline.WithAssets(l.assets))
	for i, pg := range p.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.page(ctx, m, p, pg); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	l.logger.Debug("Loaded %d pages", m.Len())
	return m, nil
}

// resolved is an element whose source is ready to attach.
type resolved struct {
	src  timeline.Source
	opts []timeline.ElemOption
	end  float64 // page-relative end of an audio element, 0 if unknown
}

func (l *Loader) page(ctx context.Context, m *timeline.Movie, p Project, pg Page) error {
	elems := make([]resolved, 0, len(pg.Elements))
	var longest float64
	for j, e := range pg.Elements {
		r, err := l.element(ctx, p, e)
		if err != nil {
			return fmt.Errorf("element %d: %w", j+1, err)
		}
		longest = math.Max(longest, r.end)
		elems = append(elems, r)
	}

	duration := pg.Duration
	if duration == 0 && longest > 0 {
		duration = longest
	}

	return m.Build(func(page *timeline.Page) error {
		for j, r := range elems {
			if _, err := page.Elem(r.src, r.opts...); err != nil {
				return fmt.Errorf("element %d: %w", j+1, err)
			}
		}
		return nil
	}, timeline.PageName(pg.Name), timeline.PageDuration(duration), timeline.PageBackground(pg.Background))
}

func (l *Loader) element(ctx context.Context, p Project, e Element) (resolved, error) {
	set := e.sources()
	if len(set) != 1 {
		return resolved{}, storyerr.Configf("source", "want exactly one of image, video, text, color, audio or voiceover, got %v", set)
	}

	opts, err := elementOptions(e)
	if err != nil {
		return resolved{}, err
	}
	r := resolved{opts: opts}

	switch {
	case e.Image != "":
		r.src = timeline.Image(e.Image)
	case e.Video != "":
		r.src = timeline.Video(e.Video, e.Loop)
	case e.Text != "":
		style, err := textStyle(e.Style)
		if err != nil {
			return resolved{}, err
		}
		r.src = timeline.Text(e.Text, style)
	case e.Color != "":
		c, err := timeline.ParseColor(e.Color)
		if err != nil {
			return resolved{}, err
		}
		r.src = timeline.Color(c, int(e.Width), int(e.Height))
	default:
		return l.audio(ctx, p, e, r)
	}
	return r, nil
}

// audio resolves an audio or voiceover element and measures how far into
// the page it plays.
func (l *Loader) audio(ctx context.Context, p Project, e Element, r resolved) (resolved, error) {
	name, path := e.Audio, ""
	if e.Voiceover != "" {
		if l.voices == nil {
			return resolved{}, storyerr.Configf("voiceover", "no voice synthesizer configured")
		}
		voice := e.Voice
		if voice == "" {
			voice = p.Voice
		}
		var err error
		if path, err = l.voices.Path(ctx, e.Voiceover, voice); err != nil {
			return resolved{}, fmt.Errorf("voiceover: %w", err)
		}
		name = path
	} else {
		var err error
		if path, err = l.assets.AssetPath(e.Audio); err != nil {
			return resolved{}, err
		}
	}

	src := timeline.Audio(name)
	if e.Volume != nil {
		src = src.WithVolume(*e.Volume)
	}
	r.src = src

	switch {
	case e.Duration > 0:
		r.end = e.Start + e.Duration
	case e.End > e.Start:
		r.end = e.End
	default:
		info, err := l.prober.Probe(ctx, path)
		if err != nil {
			return resolved{}, fmt.Errorf("probe %s: %w", path, err)
		}
		r.end = e.Start + info.Duration.Seconds()
	}
	return r, nil
}

func elementOptions(e Element) ([]timeline.ElemOption, error) {
	opts := []timeline.ElemOption{
		timeline.Start(e.Start),
		timeline.End(e.End),
		timeline.Duration(e.Duration),
		timeline.Rotate(e.Rotation),
		timeline.Flip(e.FlipX, e.FlipY),
	}
	if e.Color == "" {
		opts = append(opts, timeline.Size(e.Width, e.Height))
	}
	if e.Opacity != nil {
		opts = append(opts, timeline.Opacity(*e.Opacity))
	}
	if e.X != "" || e.Y != "" {
		pos, err := timeline.ParsePosition(orZero(e.X), orZero(e.Y))
		if err != nil {
			return nil, err
		}
		opts = append(opts, timeline.Place(pos))
	}

	effs := make([]effect.Effect, 0, len(e.Effects))
	for _, spec := range e.Effects {
		eff, err := spec.Build()
		if err != nil {
			return nil, err
		}
		effs = append(effs, eff)
	}
	if len(effs) > 0 {
		opts = append(opts, timeline.Effects(effs...))
	}
	return opts, nil
}

func textStyle(s TextStyle) (ports.TextStyle, error) {
	style := ports.TextStyle{FontSize: s.FontSize, FontPath: s.Font}
	if s.Color != "" {
		c, err := timeline.ParseColor(s.Color)
		if err != nil {
			return style, err
		}
		style.Color = c
	}
	switch len(s.Margin) {
	case 0:
	case 1:
		style.Margin = [2]int{s.Margin[0], s.Margin[0]}
	case 2:
		style.Margin = [2]int{s.Margin[0], s.Margin[1]}
	default:
		return style, storyerr.Configf("margin", "want [x] or [x, y], got %v", s.Margin)
	}
	switch s.Align {
	case "", "center":
		style.Align = ports.AlignCenter
	case "left":
		style.Align = ports.AlignLeft
	case "right":
		style.Align = ports.AlignRight
	default:
		return style, storyerr.Configf("align", "unknown alignment %q", s.Align)
	}
	return style, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
