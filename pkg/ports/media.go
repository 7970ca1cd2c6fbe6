package ports

import (
	"context"
	"image"
	"time"
)

// MediaInfo describes a media file as reported by a prober.
type MediaInfo struct {
	Duration   time.Duration
	Width      int
	Height     int
	FPS        float64
	VideoCodec string
	AudioCodec string
	HasVideo   bool
	HasAudio   bool
}

// MediaProber inspects media files without decoding them.
type MediaProber interface {
	Probe(ctx context.Context, path string) (MediaInfo, error)
}

// ImageLoader decodes still images from disk.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)

	// ImageSize returns the pixel size of an image without a full decode.
	ImageSize(path string) (width, height int, err error)
}
