// Package medialoader decodes still image assets from disk.
package medialoader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/user/storyshow/pkg/ports"
)

// Loader implements ports.ImageLoader. JPEG files are rotated according to
// their EXIF orientation so phone photos come out upright.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// LoadImage decodes the image at path.
func (l *Loader) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("medialoader: %w", err)
	}
	return img, nil
}

// ImageSize reads only the image header.
func (l *Loader) ImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("medialoader: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("medialoader: decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Ensure Loader implements ports.ImageLoader
var _ ports.ImageLoader = (*Loader)(nil)
