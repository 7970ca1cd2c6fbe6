// Package plan implements the planning stage: it turns a movie into
// absolute, per-clip timing without touching any pixels.
package plan

import (
	"context"
	"encoding/json"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
)

// Stage computes the render plan.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new plan stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("plan"),
	}
}

// Execute plans the movie.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.PlanResult, error) {
	if input.Movie == nil {
		return pipeline.PlanResult{}, storyerr.Configf("movie", "must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return pipeline.PlanResult{}, err
	}

	plan, err := input.Movie.Plan(input.Options)
	if err != nil {
		return pipeline.PlanResult{}, err
	}

	s.logger.Debug("Planned %d pages (%d video, %d audio clips) over %.2fs at %dx%d",
		len(plan.Pages), len(plan.Video), len(plan.Audio), plan.Duration, plan.Width, plan.Height)

	if s.sink.Enabled() {
		name := input.Name
		if name == "" {
			name = "plan"
		}
		if data, err := json.MarshalIndent(plan, "", "  "); err == nil {
			if err := s.sink.SavePlanJSON(name, data); err != nil {
				s.logger.Warn("Failed to save plan debug output: %v", err)
			}
		}
	}

	return pipeline.PlanResult{Plan: plan}, nil
}
