// Package encode implements the video encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
)

// ErrNoFrames is returned when the frame sequence is empty.
var ErrNoFrames = errors.New("encode: no frames to encode")

// Stage encodes composed frames into a silent H.264 video file.
type Stage struct {
	encoder ports.VideoEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.VideoEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute streams every frame into the encoder. On any failure the partial
// output is discarded.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{Path: input.OutputPath}

	if input.Frames == nil || input.Frames.Len() == 0 {
		return result, ErrNoFrames
	}

	opts := ports.EncoderOptions{
		OutputPath: input.OutputPath,
		Quality:    input.Quality,
		Bitrate:    input.Bitrate,
		Preset:     input.Preset,
		Threads:    input.Threads,
	}

	if err := s.encoder.Begin(input.Width, input.Height, input.FPS, opts); err != nil {
		return result, fmt.Errorf("begin encoding: %w", err)
	}

	total := input.Frames.Len()
	lastTs := 0
	count := 0
	err := input.Frames.Each(ctx, func(frame pipeline.ComposedFrame) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.encoder.EncodeFrame(frame.Image, frame.TimestampMs); err != nil {
			return fmt.Errorf("encode frame at %dms: %w", frame.TimestampMs, err)
		}
		count++
		lastTs = frame.TimestampMs
		if count%100 == 0 {
			s.logger.Debug("Encoded %d of %d frames", count, total)
		}
		return nil
	})
	if err != nil {
		s.encoder.Abort()
		return result, err
	}

	if err := s.encoder.End(); err != nil {
		s.encoder.Abort()
		return result, fmt.Errorf("end encoding: %w", err)
	}

	result.FrameCount = count
	result.DurationMs = lastTs
	if input.FPS > 0 {
		result.DurationMs = lastTs + int(1000/input.FPS)
	}
	s.logger.Debug("Encoded %d frames into %s", count, input.OutputPath)

	return result, nil
}
