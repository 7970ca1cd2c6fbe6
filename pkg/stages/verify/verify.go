// Package verify implements the output verification stage.
package verify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
)

// ErrMismatch is returned when the written file differs from the plan.
var ErrMismatch = errors.New("verify: output does not match plan")

// DefaultTolerance is the allowed difference between planned and actual
// duration.
const DefaultTolerance = 250 * time.Millisecond

// Stage probes a finished file and checks it against the plan.
type Stage struct {
	prober    ports.MediaProber
	logger    ports.Logger
	Tolerance time.Duration
}

// NewStage creates a new verify stage.
func NewStage(prober ports.MediaProber, logger ports.Logger) *Stage {
	return &Stage{
		prober:    prober,
		logger:    logger.WithComponent("verify"),
		Tolerance: DefaultTolerance,
	}
}

// Execute probes input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.VerifyInput) (pipeline.VerifyResult, error) {
	info, err := s.prober.Probe(ctx, input.Path)
	if err != nil {
		return pipeline.VerifyResult{}, fmt.Errorf("probe %s: %w", input.Path, err)
	}
	result := pipeline.VerifyResult{Info: info}

	if !info.HasVideo {
		return result, fmt.Errorf("%w: no video track", ErrMismatch)
	}
	if input.Width > 0 && input.Height > 0 && (info.Width != input.Width || info.Height != input.Height) {
		return result, fmt.Errorf("%w: size %dx%d, expected %dx%d",
			ErrMismatch, info.Width, info.Height, input.Width, input.Height)
	}
	if input.Duration > 0 {
		want := time.Duration(input.Duration * float64(time.Second))
		if diff := time.Duration(math.Abs(float64(info.Duration - want))); diff > s.Tolerance {
			return result, fmt.Errorf("%w: duration %v, expected %v", ErrMismatch, info.Duration, want)
		}
	}
	if input.HasAudio && !info.HasAudio {
		return result, fmt.Errorf("%w: missing audio track", ErrMismatch)
	}

	s.logger.Debug("Verified %s: %dx%d %s %v", input.Path, info.Width, info.Height, info.VideoCodec, info.Duration)
	return result, nil
}
