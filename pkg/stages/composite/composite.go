// Package composite implements the frame composition stage.
package composite

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/timeline"
)

// Stage rasterizes a plan into frames.
type Stage struct {
	renderer   ports.Renderer
	images     ports.ImageLoader
	decoder    ports.VideoDecoder
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new composite stage.
func NewStage(
	renderer ports.Renderer,
	images ports.ImageLoader,
	decoder ports.VideoDecoder,
	sink ports.DebugSink,
	logger ports.Logger,
	numWorkers int,
) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		images:     images,
		decoder:    decoder,
		sink:       sink,
		logger:     logger.WithComponent("composite"),
		numWorkers: numWorkers,
	}
}

// Execute loads every source the plan references and returns a sequence
// that composes frames on demand.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	plan := input.Plan
	s.logger.Debug("Loading %d clips", len(plan.Video))

	assets, err := s.loadAssets(ctx, plan)
	if err != nil {
		return pipeline.CompositeResult{}, err
	}

	seq := &sequence{
		stage:      s,
		plan:       plan,
		assets:     assets,
		background: input.Background,
	}
	s.logger.Debug("Compositing %d frames with %d workers", seq.Len(), s.numWorkers)
	return pipeline.CompositeResult{Frames: seq}, nil
}

// sequence renders frames in batches of parallel work and hands them out in
// order.
type sequence struct {
	stage      *Stage
	plan       timeline.Plan
	assets     map[*timeline.Element]*asset
	background color.Color
}

func (q *sequence) Len() int { return q.plan.FrameCount() }

func (q *sequence) Each(ctx context.Context, fn func(pipeline.ComposedFrame) error) error {
	total := q.Len()
	batch := q.stage.numWorkers * 2

	for start := 0; start < total; start += batch {
		end := start + batch
		if end > total {
			end = total
		}

		frames := make([]image.Image, end-start)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(q.stage.numWorkers)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := q.stage.composeFrame(q.plan, q.assets, q.background, i)
				if err != nil {
					return fmt.Errorf("compose frame %d: %w", i, err)
				}
				frames[i-start] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for j, img := range frames {
			idx := start + j
			if q.stage.sink.Enabled() {
				if err := q.stage.sink.SaveFrame(idx, img); err != nil {
					q.stage.logger.Warn("Failed to save frame %d: %v", idx, err)
				}
			}
			frame := pipeline.ComposedFrame{
				Index:       idx,
				TimestampMs: int(q.plan.FrameTime(idx) * 1000),
				Image:       img,
			}
			if err := fn(frame); err != nil {
				return err
			}
		}
	}
	return nil
}
