// Package mux implements the audio composite stage.
package mux

import (
	"context"
	"fmt"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/timeline"
)

// Stage mixes the audio clips of a plan into the encoded video.
type Stage struct {
	muxer  ports.AudioMuxer
	logger ports.Logger
}

// NewStage creates a new mux stage.
func NewStage(muxer ports.AudioMuxer, logger ports.Logger) *Stage {
	return &Stage{
		muxer:  muxer,
		logger: logger.WithComponent("mux"),
	}
}

// Tracks converts the audio clips of a plan into muxer tracks. Clips that
// end before they start are dropped.
func Tracks(plan timeline.Plan) []ports.AudioTrack {
	tracks := make([]ports.AudioTrack, 0, len(plan.Audio))
	for _, clip := range plan.Audio {
		if clip.Duration() <= 0 {
			continue
		}
		volume := 1.0
		if clip.Element != nil {
			if src, ok := clip.Element.Source.(*timeline.AudioSource); ok {
				volume = src.Volume
			}
		}
		tracks = append(tracks, ports.AudioTrack{
			Path:   clip.Path,
			Start:  clip.Start,
			End:    clip.End,
			Volume: volume,
		})
	}
	return tracks
}

// Execute writes input.OutputPath with the video stream and the mixed audio.
func (s *Stage) Execute(ctx context.Context, input pipeline.MuxInput) (pipeline.MuxResult, error) {
	result := pipeline.MuxResult{Path: input.OutputPath, Tracks: len(input.Tracks)}

	if input.Duration <= 0 {
		return result, fmt.Errorf("mux: duration must be positive, got %.3f", input.Duration)
	}

	s.logger.Debug("Mixing %d audio tracks into %s", len(input.Tracks), input.OutputPath)
	if err := s.muxer.Mux(ctx, input.VideoPath, input.Tracks, input.Duration, input.OutputPath); err != nil {
		return result, err
	}
	return result, nil
}
