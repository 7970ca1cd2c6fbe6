package timeline

import (
	"path/filepath"
	"strings"

	"github.com/user/storyshow/pkg/storyerr"
)

// DefaultPageDuration is used when a page is created without a duration.
const DefaultPageDuration = 5.0

var (
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true, ".avi": true, ".m4v": true}
)

// Page is a segment of the movie with its own background and elements.
type Page struct {
	Number     int
	Name       string
	Duration   float64
	Background *Element // nil for a transparent background

	elements []*Element
	movie    *Movie
}

type pageConfig struct {
	name       string
	duration   float64
	background string
}

// PageOption configures a new Page.
type PageOption func(*pageConfig)

// PageName labels the page in logs and summaries.
func PageName(name string) PageOption { return func(c *pageConfig) { c.name = name } }

// PageDuration sets the page length in seconds.
func PageDuration(d float64) PageOption { return func(c *pageConfig) { c.duration = d } }

// PageBackground sets the background: an image or video asset, a color, or
// "" for transparent.
func PageBackground(bg string) PageOption { return func(c *pageConfig) { c.background = bg } }

// Elements returns the page's elements in Z-order.
func (p *Page) Elements() []*Element {
	out := make([]*Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Elem attaches a new element. Assets are resolved immediately so a missing
// file fails here rather than at render time.
func (p *Page) Elem(src Source, opts ...ElemOption) (*Element, error) {
	if src == nil {
		return nil, storyerr.Configf("source", "must not be nil")
	}
	src, err := p.movie.resolveSource(src)
	if err != nil {
		return nil, err
	}
	e, err := newElement(src, opts)
	if err != nil {
		return nil, err
	}
	p.elements = append(p.elements, e)
	return e, nil
}

// Render returns the page's renderables shifted to absStart: the background
// first, then elements in declaration order. Zero-length clips are dropped.
func (p *Page) Render(absStart float64) []Clip {
	clips := make([]Clip, 0, len(p.elements)+1)
	layer := 0
	if p.Background != nil {
		start, end := p.Background.Span(absStart, p.Duration)
		clips = append(clips, newClip(p, p.Background, layer, start, end))
	}
	for _, e := range p.elements {
		layer++
		start, end := e.Span(absStart, p.Duration)
		if end <= start {
			continue
		}
		clips = append(clips, newClip(p, e, layer, start, end))
	}
	return clips
}

func (m *Movie) newBackground(spec string) (*Element, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var src Source
	ext := strings.ToLower(filepath.Ext(spec))
	switch {
	case imageExts[ext]:
		src = Image(spec)
	case videoExts[ext]:
		src = Video(spec, true)
	default:
		c, err := ParseColor(spec)
		if err != nil {
			return nil, storyerr.Configf("background", "%q is neither a media file nor a color", spec)
		}
		src = Color(c, 0, 0)
	}
	src, err := m.resolveSource(src)
	if err != nil {
		return nil, err
	}
	return &Element{Source: src, Opacity: 1, Fill: true}, nil
}
