package ports

import (
	"context"
	"image"
)

// VideoFrame is one decoded frame of a video asset.
type VideoFrame struct {
	Image       image.Image
	TimestampMs int
}

// VideoDecoder turns a video file into frames sampled at a fixed rate.
type VideoDecoder interface {
	// DecodeFrames decodes path at fps, scaled to width x height when both are
	// positive. A positive limit stops decoding after limit seconds.
	DecodeFrames(ctx context.Context, path string, fps float64, width, height int, limit float64) ([]VideoFrame, error)
}
