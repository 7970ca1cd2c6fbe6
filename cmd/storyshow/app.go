package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"

	"github.com/user/storyshow/pkg/adapters/assets"
	"github.com/user/storyshow/pkg/adapters/audiomux"
	"github.com/user/storyshow/pkg/adapters/ffmpeg"
	"github.com/user/storyshow/pkg/adapters/ffprobe"
	"github.com/user/storyshow/pkg/adapters/filesink"
	"github.com/user/storyshow/pkg/adapters/ggrenderer"
	"github.com/user/storyshow/pkg/adapters/h264encoder"
	"github.com/user/storyshow/pkg/adapters/logger"
	"github.com/user/storyshow/pkg/adapters/medialoader"
	"github.com/user/storyshow/pkg/adapters/mp4probe"
	"github.com/user/storyshow/pkg/adapters/nullsink"
	"github.com/user/storyshow/pkg/adapters/osfilesystem"
	"github.com/user/storyshow/pkg/adapters/sysinfo"
	"github.com/user/storyshow/pkg/adapters/ttscommand"
	"github.com/user/storyshow/pkg/adapters/videodecoder"
	"github.com/user/storyshow/pkg/adapters/voicecache"
	"github.com/user/storyshow/pkg/config"
	"github.com/user/storyshow/pkg/orchestrator"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/stages/composite"
	"github.com/user/storyshow/pkg/stages/encode"
	"github.com/user/storyshow/pkg/stages/mux"
	"github.com/user/storyshow/pkg/stages/plan"
	"github.com/user/storyshow/pkg/stages/verify"
	"github.com/user/storyshow/pkg/timeline"
)

// GlobalFlags are shared by every command that reads configuration.
type GlobalFlags struct {
	Config    string   `short:"C" type:"path" help:"YAML configuration file."`
	EnvFile   string   `default:".env" help:"Environment file loaded before ASSET_PATH is read."`
	AssetPath []string `sep:"," help:"Asset search path, comma separated (overrides ASSET_PATH)."`

	// External tools
	FFmpeg  string `help:"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)."`
	FFprobe string `help:"Path to ffprobe (falls back to FFPROBE_PATH, then PATH)."`

	// Logging options
	LogLevel *string `short:"l" help:"Log level (debug, info, warn, error)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// app holds the configuration and adapters shared by the commands.
type app struct {
	cfg config.Config
	log ports.Logger

	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	images   *medialoader.Loader
	prober   *ffprobe.Prober
}

// setup loads the environment and configuration, then creates the logger.
func (g *GlobalFlags) setup() (*app, error) {
	if err := loadEnv(g.EnvFile); err != nil {
		return nil, err
	}

	cfg := config.Defaults()
	if g.Config != "" {
		var err error
		if cfg, err = config.LoadFromFile(g.Config); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if g.LogLevel != nil {
		cfg.LogLevel = *g.LogLevel
	}
	if g.FFmpeg != "" {
		cfg.FFmpeg = g.FFmpeg
	}
	if g.FFprobe != "" {
		cfg.FFprobe = g.FFprobe
	}
	if len(g.AssetPath) > 0 {
		cfg.Assets.SearchPaths = g.AssetPath
	}

	log, err := newLogger(cfg.LogLevel, g.Quiet)
	if err != nil {
		return nil, err
	}

	if cfg.FFmpeg != "" {
		ffmpeg.SetFFmpegPath(cfg.FFmpeg)
	}
	if cfg.FFprobe != "" {
		ffmpeg.SetFFprobePath(cfg.FFprobe)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
		images:   medialoader.New(),
		prober:   ffprobe.New(),
	}, nil
}

func newLogger(level string, quiet bool) (ports.Logger, error) {
	if quiet {
		return logger.NewNoop(), nil
	}
	lvl, err := ports.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return logger.NewConsole(lvl), nil
}

// loadEnv loads path into the environment when it exists. Variables already
// set are kept.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolver returns the asset resolver: configured search paths first, then
// ASSET_PATH.
func (a *app) resolver() (*assets.Resolver, error) {
	if paths := a.cfg.Assets.SearchPaths; len(paths) > 0 {
		build := a.cfg.Assets.BuildPath
		if build == "" {
			build = os.Getenv(assets.EnvBuildPath)
		}
		return assets.New(paths, build, a.fs), nil
	}
	return assets.FromEnv(a.fs)
}

// voices returns the voiceover cache, or nil when no TTS command is configured.
func (a *app) voices() (*voicecache.Cache, error) {
	if a.cfg.Voice.Command == "" {
		return nil, nil
	}
	synth, err := ttscommand.Parse(a.cfg.Voice.Command)
	if err != nil {
		return nil, err
	}
	// Cached files are referenced by absolute path so they resolve from any
	// asset search path.
	dir, err := filepath.Abs(a.cfg.Voice.CacheDir)
	if err != nil {
		return nil, err
	}
	return voicecache.New(synth, a.fs, a.log, dir, a.cfg.Voice.Model), nil
}

// debugSink returns a frame and plan dump sink when debug output is enabled.
func (a *app) debugSink(enabled bool, dir string, every int) (ports.DebugSink, error) {
	if !enabled {
		return nullsink.New(), nil
	}
	if err := a.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	sink := filesink.New(dir, a.fs, a.renderer)
	sink.Every = every
	return sink, nil
}

// orchestrator wires the render pipeline.
func (a *app) orchestrator(sink ports.DebugSink, workers int) *orchestrator.Orchestrator {
	return orchestrator.New(
		plan.NewStage(sink, a.log),
		composite.NewStage(a.renderer, a.images, videodecoder.New(), sink, a.log, workers),
		encode.NewStage(h264encoder.New(), a.log),
		mux.NewStage(audiomux.New(), a.log),
		verify.NewStage(mp4probe.New(), a.log),
		a.fs,
		a.log,
	)
}

// workers returns the configured worker count, or one sized to the host for
// frames of the given plan options.
func workers(configured int, opts timeline.PlanOptions) int {
	if configured > 0 {
		return configured
	}
	size, err := timeline.Dimensions(opts.Resolution, opts.AspectRatio)
	if err != nil {
		return 1
	}
	up := opts.Upscaler
	if up < 1 {
		up = 1
	}
	return sysinfo.RecommendedWorkers(int(float64(size.Width)*up), int(float64(size.Height)*up))
}

// translate is the label translator for Markdown summaries.
func translate(s string) string {
	return l10n.T(s)
}
