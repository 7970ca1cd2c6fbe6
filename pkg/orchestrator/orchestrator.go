// Package orchestrator runs the render pipeline: plan, composite, encode,
// mux and verify.
package orchestrator

import (
	"context"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/stages/mux"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// RenderOptions contains everything a render needs besides the movie.
type RenderOptions struct {
	Plan       timeline.PlanOptions
	Background color.Color // Beneath every page; nil is black

	// Encoding
	Quality int // CRF 0-51
	Bitrate int // kbps, 0 for CRF only
	Preset  string
	Threads int

	// TempDir holds intermediate files; empty uses the output's directory.
	TempDir string

	// Verify probes the result before it replaces the output file.
	Verify bool
}

// DefaultRenderOptions returns RenderOptions with default values.
func DefaultRenderOptions() RenderOptions {
	enc := pipeline.DefaultEncodeInput()
	return RenderOptions{
		Plan:       timeline.DefaultPlanOptions(),
		Background: color.Black,
		Quality:    enc.Quality,
		Preset:     enc.Preset,
		Verify:     true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	planStage      pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	encodeStage    pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	muxStage       pipeline.Stage[pipeline.MuxInput, pipeline.MuxResult]
	verifyStage    pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult]
	fs             ports.FileSystem
	logger         ports.Logger
}

// New creates a new Orchestrator. verifyStage may be nil.
func New(
	planStage pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	muxStage pipeline.Stage[pipeline.MuxInput, pipeline.MuxResult],
	verifyStage pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult],
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		planStage:      planStage,
		compositeStage: compositeStage,
		encodeStage:    encodeStage,
		muxStage:       muxStage,
		verifyStage:    verifyStage,
		fs:             fs,
		logger:         logger,
	}
}

// Render writes the pages selected by opts.Plan.Filter to output as one
// video. An empty selection logs a warning and writes nothing.
func (o *Orchestrator) Render(ctx context.Context, movie *timeline.Movie, output string, opts RenderOptions) (RunResult, error) {
	started := time.Now()
	o.logger.Info("Rendering %s", output)

	planned, err := o.planStage.Execute(ctx, pipeline.PlanInput{
		Name:    strings.TrimSuffix(filepath.Base(output), filepath.Ext(output)),
		Movie:   movie,
		Options: opts.Plan,
	})
	if err != nil {
		o.logger.Error("Failed to plan timeline: %s", err)
		return RunResult{}, stageError("plan", err)
	}
	plan := planned.Plan
	result := RunResult{OutputPath: output, Plan: plan}

	if plan.Empty() {
		o.logger.Warn("Nothing to render for %s: no pages selected", output)
		result.Skipped = true
		return result, nil
	}
	o.logger.Info("Planned %d pages, %.2fs at %dx%d", len(plan.Pages), plan.Duration, plan.OutputWidth, plan.OutputHeight)

	composite, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{Plan: plan, Background: opts.Background})
	if err != nil {
		o.logger.Error("Failed to composite frames: %s", err)
		return result, stageError("composite", err)
	}

	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = filepath.Dir(output)
	}

	videoPath, err := o.fs.TempFile(tempDir, "storyshow-video-*.mp4")
	if err != nil {
		return result, stageError("encode", err)
	}
	defer o.fs.Remove(videoPath)

	o.logger.Info("Encoding %d frames at %.1f fps", composite.Frames.Len(), plan.FPS)
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Frames:     composite.Frames,
		Width:      plan.OutputWidth,
		Height:     plan.OutputHeight,
		FPS:        plan.FPS,
		OutputPath: videoPath,
		Quality:    opts.Quality,
		Bitrate:    opts.Bitrate,
		Preset:     opts.Preset,
		Threads:    opts.Threads,
	})
	if err != nil {
		o.logger.Error("Failed to encode video: %s", err)
		return result, stageError("encode", err)
	}
	result.FrameCount = encoded.FrameCount
	result.VideoDurationMs = encoded.DurationMs

	// The final file is muxed next to output so the closing rename never
	// crosses filesystems.
	muxPath, err := o.fs.TempFile(filepath.Dir(output), ".storyshow-mux-*.mp4")
	if err != nil {
		return result, stageError("mux", err)
	}
	defer o.fs.Remove(muxPath)

	tracks := mux.Tracks(plan)
	o.logger.Info("Mixing %d audio tracks", len(tracks))
	muxed, err := o.muxStage.Execute(ctx, pipeline.MuxInput{
		VideoPath:  videoPath,
		Tracks:     tracks,
		Duration:   plan.Duration,
		OutputPath: muxPath,
	})
	if err != nil {
		o.logger.Error("Failed to mix audio: %s", err)
		return result, stageError("mux", err)
	}
	result.AudioTracks = muxed.Tracks

	if opts.Verify && o.verifyStage != nil {
		verified, err := o.verifyStage.Execute(ctx, pipeline.VerifyInput{
			Path:     muxPath,
			Width:    plan.OutputWidth,
			Height:   plan.OutputHeight,
			Duration: plan.Duration,
			HasAudio: len(tracks) > 0,
		})
		if err != nil {
			o.logger.Error("Output verification failed: %s", err)
			return result, stageError("verify", err)
		}
		result.Info = verified.Info
	}

	if err := o.fs.Rename(muxPath, output); err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return result, stageError("write", err)
	}

	result.Elapsed = time.Since(started)
	o.logger.Info("Output saved to %s", output)
	return result, nil
}

// RenderEachPage renders every selected page to its own file named
// <name>-<page>.<ext> next to output.
func (o *Orchestrator) RenderEachPage(ctx context.Context, movie *timeline.Movie, output string, opts RenderOptions) ([]RunResult, error) {
	if movie == nil {
		return nil, storyerr.Configf("movie", "must not be nil")
	}
	filter, err := timeline.ParseFilter(opts.Plan.Filter)
	if err != nil {
		return nil, err
	}

	pages := movie.Select(filter)
	if len(pages) == 0 {
		o.logger.Warn("Nothing to render for %s: no pages selected", output)
		return nil, nil
	}

	results := make([]RunResult, 0, len(pages))
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		pageOpts := opts
		pageOpts.Plan.Filter = strconv.Itoa(p.Number)

		r, err := o.Render(ctx, movie, PageOutput(output, p.Number), pageOpts)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// PageOutput returns the per-page file name for output: "out/story.mp4"
// and page 3 give "out/story-3.mp4".
func PageOutput(output string, page int) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-" + strconv.Itoa(page) + ext
}

func stageError(stage string, err error) error {
	return &storyerr.RenderError{Stage: stage, Err: err}
}

// RunResult describes one render for summaries.
type RunResult struct {
	OutputPath string
	Skipped    bool // Nothing was selected; no file was written

	Plan timeline.Plan

	FrameCount      int
	VideoDurationMs int
	AudioTracks     int

	// Info is the probed output; zero unless verification ran.
	Info ports.MediaInfo

	Elapsed time.Duration
}
