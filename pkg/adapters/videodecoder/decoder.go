// Package videodecoder extracts frames from video files with ffmpeg.
package videodecoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"strconv"

	"github.com/user/storyshow/pkg/adapters/ffmpeg"
	"github.com/user/storyshow/pkg/ports"
)

// ErrNoFrames is returned when ffmpeg produced no frames.
var ErrNoFrames = errors.New("videodecoder: no frames decoded")

// Decoder implements ports.VideoDecoder by piping PNG frames out of ffmpeg.
type Decoder struct{}

// New creates a new decoder.
func New() *Decoder {
	return &Decoder{}
}

// Args returns the ffmpeg arguments used to sample path.
func Args(path string, fps float64, width, height int, limit float64) []string {
	filter := "fps=" + strconv.FormatFloat(fps, 'f', -1, 64)
	if width > 0 && height > 0 {
		filter += fmt.Sprintf(",scale=%d:%d", width, height)
	}
	args := []string{"-hide_banner", "-loglevel", "error"}
	if limit > 0 {
		args = append(args, "-t", strconv.FormatFloat(limit, 'f', 3, 64))
	}
	return append(args,
		"-i", path,
		"-an",
		"-vf", filter,
		"-pix_fmt", "rgba",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	)
}

// DecodeFrames decodes the frames of path resampled to fps, up to limit
// seconds when limit is positive.
func (d *Decoder) DecodeFrames(ctx context.Context, path string, fps float64, width, height int, limit float64) ([]ports.VideoFrame, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("videodecoder: invalid fps %v", fps)
	}
	out, err := ffmpeg.Run(ctx, Args(path, fps, width, height, limit)...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	frames, err := splitPNG(bytes.NewReader(out), fps)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return frames, nil
}

// splitPNG decodes back-to-back PNG images from r.
func splitPNG(r *bytes.Reader, fps float64) ([]ports.VideoFrame, error) {
	var frames []ports.VideoFrame
	for r.Len() > 0 {
		img, err := png.Decode(r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, ports.VideoFrame{
			Image:       img,
			TimestampMs: int(float64(len(frames)) * 1000 / fps),
		})
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return frames, nil
}

var _ ports.VideoDecoder = (*Decoder)(nil)
