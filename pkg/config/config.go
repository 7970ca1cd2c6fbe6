// Package config provides configuration loading and management.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/storyshow/pkg/storyshow"
	"github.com/user/storyshow/pkg/timeline"
)

// Config represents the full configuration file for storyshow.
type Config struct {
	// Canvas
	Preset      string  `yaml:"preset"`
	AspectRatio string  `yaml:"aspect_ratio"`
	Resolution  string  `yaml:"resolution"`
	FPS         float64 `yaml:"fps"`
	Upscaler    float64 `yaml:"upscaler"`

	// Style
	BackgroundColor string `yaml:"background_color"`

	// Encoding
	Quality      string `yaml:"quality"`
	CRF          int    `yaml:"crf"` // Overrides Quality when > 0
	Bitrate      int    `yaml:"bitrate"`
	EncodePreset string `yaml:"encode_preset"` // Overrides the quality preset's x264 preset
	Threads      int    `yaml:"threads"`
	Workers      int    `yaml:"workers"` // Frame workers, 0 sizes the pool from CPU and memory
	Verify       bool   `yaml:"verify"`

	// Files
	Assets    AssetsConfig    `yaml:"assets"`
	Voice     VoiceConfig     `yaml:"voice"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	FFmpeg    string          `yaml:"ffmpeg"`
	FFprobe   string          `yaml:"ffprobe"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"`
	LogLevel   string `yaml:"log_level"`
}

// AssetsConfig overrides ASSET_PATH and BUILD_PATH.
type AssetsConfig struct {
	SearchPaths []string `yaml:"search_paths"`
	BuildPath   string   `yaml:"build_path"`
}

// VoiceConfig configures voiceover synthesis.
type VoiceConfig struct {
	Command  string `yaml:"command"` // e.g. "say -v {voice} -o {output}"
	Voice    string `yaml:"voice"`
	Model    string `yaml:"model"`
	CacheDir string `yaml:"cache_dir"`
}

// WorkspaceConfig configures per-job project directories.
type WorkspaceConfig struct {
	Root   string        `yaml:"root"`
	MaxAge time.Duration `yaml:"max_age"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Canvas
		// Aspect ratio and resolution follow the preset when empty
		Preset:   string(storyshow.PresetLandscape),
		FPS:      30,
		Upscaler: 1,

		// Style
		BackgroundColor: "black",

		// Encoding
		Quality: string(storyshow.QualityMedium),
		Verify:  true,

		// Files
		Voice: VoiceConfig{
			Voice:    "Arthur",
			CacheDir: ".cache/voice",
		},
		Workspace: WorkspaceConfig{
			Root:   "projects",
			MaxAge: 24 * time.Hour,
		},

		// Debug
		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Builder returns a render configuration builder seeded from c: the named
// preset first, then every canvas and encoding field of the file.
func (c Config) Builder() (*storyshow.ConfigBuilder, error) {
	b := storyshow.NewPresetBuilder(storyshow.Preset(c.Preset))
	if c.AspectRatio != "" {
		b.WithAspectRatio(c.AspectRatio)
	}
	if c.Resolution != "" {
		b.WithResolution(c.Resolution)
	}
	b.WithFPS(c.FPS).WithUpscaler(c.Upscaler)

	if c.BackgroundColor != "" {
		bg, err := timeline.ParseColor(c.BackgroundColor)
		if err != nil {
			return nil, err
		}
		b.WithBackgroundColor(bg)
	}

	if c.Quality != "" {
		b.WithQualityPreset(storyshow.QualityPreset(c.Quality))
	}
	if c.CRF > 0 {
		b.WithVideoCRF(c.CRF)
	}
	if c.EncodePreset != "" {
		b.WithEncodePreset(c.EncodePreset)
	}
	b.WithBitrate(c.Bitrate).WithThreads(c.Threads).WithVerify(c.Verify)
	return b, nil
}
