// Package templates builds complete movies from an input directory holding
// images and a config file. Each template has a typed config with defaults
// for every optional field.
package templates

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// DefaultSeed seeds random placement when a config does not set one.
const DefaultSeed = 42

// configNames are tried in order inside the input directory.
var configNames = []string{"config.json", "config.yaml", "config.yml"}

// Params describe one template run.
type Params struct {
	InputDir string
	Canvas   timeline.CanvasSize
}

// Sizer reports the pixel size of an image or video asset.
type Sizer interface {
	Size(ctx context.Context, path string) (width, height int, err error)
}

// Deps are the services a template needs besides the movie.
type Deps struct {
	FS     ports.FileSystem
	Assets ports.AssetResolver
	Sizer  Sizer
	Logger ports.Logger
}

// Template adds its pages to a movie.
type Template interface {
	Name() string
	Build(ctx context.Context, m *timeline.Movie, p Params) error
}

var registry = map[string]func(Deps) Template{
	"balloonpop": func(d Deps) Template { return NewBalloonPop(d) },
	"brownbear":  func(d Deps) Template { return NewBrownBear(d) },
}

// Names returns the registered template names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the template registered under name.
func Lookup(name string, deps Deps) (Template, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, storyerr.Configf("template", "unknown template %q (want one of %v)", name, Names())
	}
	return ctor(deps), nil
}

// LoadConfig decodes the first config file found in dir into out. JSON is
// read through the YAML decoder, so both formats share one set of tags.
func LoadConfig(fs ports.FileSystem, dir string, out any) error {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		exists, err := fs.Exists(path)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		data, err := fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return storyerr.Configf("config", "%s: %v", path, err)
		}
		return nil
	}
	return storyerr.Configf("config", "no config.json in %s", dir)
}

// MediaSizer measures images by decoding their header and falls back to
// probing for video containers.
type MediaSizer struct {
	images ports.ImageLoader
	prober ports.MediaProber
}

// NewMediaSizer creates a MediaSizer.
func NewMediaSizer(images ports.ImageLoader, prober ports.MediaProber) *MediaSizer {
	return &MediaSizer{images: images, prober: prober}
}

// Size implements Sizer.
func (s *MediaSizer) Size(ctx context.Context, path string) (int, int, error) {
	w, h, imgErr := s.images.ImageSize(path)
	if imgErr == nil {
		return w, h, nil
	}
	info, err := s.prober.Probe(ctx, path)
	if err != nil {
		return 0, 0, errors.Join(imgErr, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return 0, 0, fmt.Errorf("%s has no picture", path)
	}
	return info.Width, info.Height, nil
}

// assetSize resolves name and measures it.
func assetSize(ctx context.Context, d Deps, name string) (w, h float64, err error) {
	path, err := d.Assets.AssetPath(name)
	if err != nil {
		return 0, 0, err
	}
	iw, ih, err := d.Sizer.Size(ctx, path)
	if err != nil {
		return 0, 0, fmt.Errorf("measure %s: %w", name, err)
	}
	return float64(iw), float64(ih), nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
