package main

import (
	"context"
	"os"

	"github.com/user/storyshow/pkg/config"
	"github.com/user/storyshow/pkg/orchestrator"
	"github.com/user/storyshow/pkg/project"
	"github.com/user/storyshow/pkg/storyshow"
	"github.com/user/storyshow/pkg/summarizer"
	"github.com/user/storyshow/pkg/timeline"
	"github.com/user/storyshow/pkg/workspace"
)

// RenderFlags control the canvas, encoding and output of a render. Pointer
// fields override the config file only when set.
type RenderFlags struct {
	// Required arguments
	Output string `short:"o" required:"" help:"Output MP4 file path."`

	// Canvas
	Preset      *string  `short:"p" help:"Output preset (landscape, shorts, square)."`
	AspectRatio *string  `short:"a" help:"Aspect ratio (16:9, 9:16, 4:3, 3:4, 1:1)."`
	Resolution  *string  `short:"r" help:"Resolution tier (1080p, 720p, 480p)."`
	FPS         *float64 `help:"Frames per second."`
	Upscaler    *float64 `help:"Scale the output by this factor after compositing."`
	Filter      string   `short:"f" help:"Pages to render, e.g. 1,3 (default: all)."`
	Background  *string  `help:"Color beneath every page (name or hex)."`

	// Encoding
	Quality      *string `short:"q" help:"Quality preset (low, medium, high)."`
	CRF          *int    `help:"H.264 CRF (0-51, lower is better, overrides quality preset)."`
	Bitrate      *int    `help:"Maximum video bitrate in kbps (0 = CRF only)."`
	EncodePreset *string `help:"x264 speed preset (overrides quality preset)."`
	Threads      *int    `help:"Encoder threads (0 = auto)."`
	Workers      *int    `short:"w" help:"Frame workers (0 = sized from CPU and memory)."`
	NoVerify     bool    `help:"Skip probing the output before it replaces the destination."`
	TempDir      string  `help:"Directory for intermediate files (default: a workspace job directory)."`

	// Output
	Summary string `short:"s" help:"Write a Markdown render summary to this path."`

	// Debug options
	Debug      bool    `short:"d" help:"Dump the render plan and frames."`
	DebugDir   *string `help:"Directory for debug output."`
	DebugEvery *int    `help:"Dump one frame out of every N."`
}

// RenderCmd renders a project file.
type RenderCmd struct {
	GlobalFlags `embed:""`
	RenderFlags `embed:""`

	Project  string `arg:"" type:"existingfile" help:"Project file (YAML or JSON)."`
	EachPage bool   `short:"e" help:"Write one file per page (name-<n>.mp4)."`
}

// Run executes the render command.
func (cmd *RenderCmd) Run() error {
	a, err := cmd.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(a.log)
	defer cancel()

	res, err := a.resolver()
	if err != nil {
		return err
	}
	voices, err := a.voices()
	if err != nil {
		return err
	}

	var v project.Voices
	if voices != nil {
		v = voices
	}
	loader := project.NewLoader(a.fs, res, a.prober, v, a.log)
	movie, err := loader.LoadFile(ctx, cmd.Project)
	if err != nil {
		return err
	}

	return a.render(ctx, movie, &cmd.RenderFlags, cmd.EachPage)
}

// settings merges the config file with the flags.
func (f *RenderFlags) settings(a *app) (storyshow.Config, error) {
	cfg := a.cfg
	cfg.Preset, cfg.Quality = f.presetNames(cfg)

	b, err := cfg.Builder()
	if err != nil {
		return storyshow.Config{}, err
	}

	if f.AspectRatio != nil {
		b.WithAspectRatio(*f.AspectRatio)
	}
	if f.Resolution != nil {
		b.WithResolution(*f.Resolution)
	}
	if f.FPS != nil {
		b.WithFPS(*f.FPS)
	}
	if f.Upscaler != nil {
		b.WithUpscaler(*f.Upscaler)
	}
	if f.Background != nil {
		bg, err := timeline.ParseColor(*f.Background)
		if err != nil {
			return storyshow.Config{}, err
		}
		b.WithBackgroundColor(bg)
	}
	if f.CRF != nil {
		b.WithVideoCRF(*f.CRF)
	}
	if f.Bitrate != nil {
		b.WithBitrate(*f.Bitrate)
	}
	if f.EncodePreset != nil {
		b.WithEncodePreset(*f.EncodePreset)
	}
	if f.Threads != nil {
		b.WithThreads(*f.Threads)
	}
	if f.NoVerify {
		b.WithVerify(false)
	}
	b.WithFilter(f.Filter).WithTempDir(f.TempDir)

	return b.Build(), nil
}

// presetNames returns the output and quality preset names in effect.
func (f *RenderFlags) presetNames(cfg config.Config) (preset, quality string) {
	preset, quality = cfg.Preset, cfg.Quality
	if f.Preset != nil {
		preset = *f.Preset
	}
	if f.Quality != nil {
		quality = *f.Quality
	}
	return preset, quality
}

// render runs the pipeline for movie, once or per page, and writes the
// optional summaries.
func (a *app) render(ctx context.Context, movie *timeline.Movie, f *RenderFlags, eachPage bool) error {
	settings, err := f.settings(a)
	if err != nil {
		return err
	}
	opts := settings.ToRenderOptions()

	// Intermediates go to a fresh job directory unless one was given.
	if opts.TempDir == "" {
		job, err := workspace.New(a.cfg.Workspace.Root, a.fs, a.log).Create()
		if err != nil {
			return err
		}
		opts.TempDir = job.Dir
		defer a.fs.RemoveAll(job.Dir)
	}

	debugDir := a.cfg.DebugDir
	if f.DebugDir != nil {
		debugDir = *f.DebugDir
	}
	every := a.cfg.DebugEvery
	if f.DebugEvery != nil {
		every = *f.DebugEvery
	}
	sink, err := a.debugSink(f.Debug || a.cfg.Debug, debugDir, every)
	if err != nil {
		return err
	}

	n := a.cfg.Workers
	if f.Workers != nil {
		n = *f.Workers
	}
	orch := a.orchestrator(sink, workers(n, opts.Plan))

	var results []orchestrator.RunResult
	if eachPage {
		if results, err = orch.RenderEachPage(ctx, movie, f.Output, opts); err != nil {
			return err
		}
	} else {
		r, err := orch.Render(ctx, movie, f.Output, opts)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	if f.Summary == "" {
		return nil
	}
	for _, r := range results {
		path := f.Summary
		if eachPage && len(r.Plan.Pages) > 0 {
			path = orchestrator.PageOutput(f.Summary, r.Plan.Pages[0].Number)
		}
		if err := a.writeSummary(path, r, f, settings); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeSummary(path string, r orchestrator.RunResult, f *RenderFlags, settings storyshow.Config) error {
	preset, quality := f.presetNames(a.cfg)
	b := summarizer.NewBuilder().
		WithMovie("", settings.Filter).
		WithSettings(summarizer.Settings{
			Preset:      preset,
			Quality:     quality,
			AspectRatio: settings.AspectRatio,
			Resolution:  settings.Resolution,
			FPS:         settings.FPS,
			Upscaler:    settings.Upscaler,
			CRF:         settings.VideoCRF,
			Codec:       "H.264",
		})
	if info, err := os.Stat(r.OutputPath); err == nil && !r.Skipped {
		b.WithFileSize(info.Size())
	}
	summary := b.WithResult(r).Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(translate),
		summarizer.WithVersion(version),
	)
	if err := summarizer.NewWriter(formatter, a.fs).Write(path, summary); err != nil {
		return err
	}
	a.log.Info("Summary saved to %s", path)
	return nil
}
