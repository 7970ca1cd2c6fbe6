// Package timeline builds a movie out of pages and elements and computes
// the deterministic render plan for it.
//
// A Movie is not safe for concurrent mutation. Build it on one goroutine,
// then hand it to the orchestrator.
package timeline

import (
	"os"

	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
)

// Movie is an ordered list of pages.
type Movie struct {
	Title string

	pages  []*Page
	assets ports.AssetResolver
}

// Option configures a Movie.
type Option func(*Movie)

// WithAssets resolves element asset names through r. Without it, asset
// names are treated as file paths.
func WithAssets(r ports.AssetResolver) Option {
	return func(m *Movie) { m.assets = r }
}

// New creates an empty movie.
func New(title string, opts ...Option) *Movie {
	m := &Movie{Title: title, assets: fileResolver{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Page appends a new page numbered after the existing ones.
func (m *Movie) Page(opts ...PageOption) (*Page, error) {
	cfg := pageConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.duration < 0 {
		return nil, storyerr.Configf("page duration", "must be >= 0, got %v", cfg.duration)
	}
	if cfg.duration == 0 {
		cfg.duration = DefaultPageDuration
	}
	bg, err := m.newBackground(cfg.background)
	if err != nil {
		return nil, err
	}
	p := &Page{
		Number:     len(m.pages) + 1,
		Name:       cfg.name,
		Duration:   cfg.duration,
		Background: bg,
		movie:      m,
	}
	m.pages = append(m.pages, p)
	return p, nil
}

// Build appends a page and runs fn against it. If fn fails the page is
// removed again.
func (m *Movie) Build(fn func(p *Page) error, opts ...PageOption) error {
	p, err := m.Page(opts...)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		m.pages = m.pages[:len(m.pages)-1]
		return err
	}
	return nil
}

// Pages returns the pages in order.
func (m *Movie) Pages() []*Page {
	out := make([]*Page, len(m.pages))
	copy(out, m.pages)
	return out
}

// Len returns the number of pages.
func (m *Movie) Len() int { return len(m.pages) }

// Select returns the pages passing f in order.
func (m *Movie) Select(f Filter) []*Page {
	var out []*Page
	for _, p := range m.pages {
		if f.Selects(p.Number) {
			out = append(out, p)
		}
	}
	return out
}

// Duration returns the total length of every page.
func (m *Movie) Duration() float64 {
	var d float64
	for _, p := range m.pages {
		d += p.Duration
	}
	return d
}

func (m *Movie) resolveSource(src Source) (Source, error) {
	name, ok := assetPath(src)
	if !ok {
		return src, nil
	}
	path, err := m.assets.AssetPath(name)
	if err != nil {
		return nil, err
	}
	return withPath(src, path), nil
}

// fileResolver treats asset names as paths and checks they exist.
type fileResolver struct{}

func (fileResolver) AssetPath(name string) (string, error) {
	if _, err := os.Stat(name); err != nil {
		return "", &storyerr.AssetNotFoundError{Name: name}
	}
	return name, nil
}

func (fileResolver) BuildPath(name string) string { return name }
