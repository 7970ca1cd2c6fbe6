package mocks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/user/storyshow/pkg/ports"
)

// ImageLoader is a mock implementation of ports.ImageLoader. Without
// LoadImageFunc it returns a 100x100 opaque white image.
type ImageLoader struct {
	mu sync.Mutex

	LoadImageFunc func(path string) (image.Image, error)

	Loaded []string
}

func (m *ImageLoader) LoadImage(path string) (image.Image, error) {
	m.mu.Lock()
	m.Loaded = append(m.Loaded, path)
	m.mu.Unlock()
	if m.LoadImageFunc != nil {
		return m.LoadImageFunc(path)
	}
	return Solid(100, 100, color.White), nil
}

func (m *ImageLoader) ImageSize(path string) (int, int, error) {
	img, err := m.LoadImage(path)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

var _ ports.ImageLoader = (*ImageLoader)(nil)

// VideoDecoder is a mock implementation of ports.VideoDecoder. Without
// DecodeFramesFunc it returns Frames solid frames, fewer when limit cuts
// them short.
type VideoDecoder struct {
	DecodeFramesFunc func(ctx context.Context, path string, fps float64, width, height int, limit float64) ([]ports.VideoFrame, error)

	Frames int
	Calls  []string
	Limits []float64
}

func (m *VideoDecoder) DecodeFrames(ctx context.Context, path string, fps float64, width, height int, limit float64) ([]ports.VideoFrame, error) {
	m.Calls = append(m.Calls, path)
	m.Limits = append(m.Limits, limit)
	if m.DecodeFramesFunc != nil {
		return m.DecodeFramesFunc(ctx, path, fps, width, height, limit)
	}
	if width <= 0 || height <= 0 {
		width, height = 64, 36
	}
	n := m.Frames
	if limit > 0 {
		if most := int(math.Ceil(limit * fps)); most < n {
			n = most
		}
	}
	frames := make([]ports.VideoFrame, n)
	for i := range frames {
		frames[i] = ports.VideoFrame{
			Image:       Solid(width, height, color.Gray{Y: uint8(i)}),
			TimestampMs: int(float64(i) * 1000 / fps),
		}
	}
	return frames, nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	ProbeFunc func(ctx context.Context, path string) (ports.MediaInfo, error)

	// Infos answers Probe by path when ProbeFunc is nil.
	Infos map[string]ports.MediaInfo
	Calls []string
}

func (m *MediaProber) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	m.Calls = append(m.Calls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	if info, ok := m.Infos[path]; ok {
		return info, nil
	}
	return ports.MediaInfo{}, fmt.Errorf("no media info for %s", path)
}

var _ ports.MediaProber = (*MediaProber)(nil)

// AudioMuxer is a mock implementation of ports.AudioMuxer.
type AudioMuxer struct {
	MuxFunc func(ctx context.Context, videoPath string, tracks []ports.AudioTrack, duration float64, outputPath string) error

	Calls []MuxCall
}

// MuxCall records a call to Mux.
type MuxCall struct {
	VideoPath  string
	Tracks     []ports.AudioTrack
	Duration   float64
	OutputPath string
}

func (m *AudioMuxer) Mux(ctx context.Context, videoPath string, tracks []ports.AudioTrack, duration float64, outputPath string) error {
	m.Calls = append(m.Calls, MuxCall{VideoPath: videoPath, Tracks: tracks, Duration: duration, OutputPath: outputPath})
	if m.MuxFunc != nil {
		return m.MuxFunc(ctx, videoPath, tracks, duration, outputPath)
	}
	return nil
}

var _ ports.AudioMuxer = (*AudioMuxer)(nil)

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
