// Package storyshow provides a high-level API for configuring story video
// renders.
package storyshow

import (
	"image/color"

	"github.com/user/storyshow/pkg/orchestrator"
	"github.com/user/storyshow/pkg/timeline"
)

// Preset names an output format.
type Preset string

const (
	PresetLandscape Preset = "landscape"
	PresetShorts    Preset = "shorts"
	PresetSquare    Preset = "square"
)

// QualityPreset represents a video quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings contains quality parameters for video encoding.
type QualitySettings struct {
	VideoCRF     int    // H.264 CRF value (0-51, lower is better)
	EncodePreset string // x264 speed preset
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{VideoCRF: 30, EncodePreset: "veryfast"}
	case QualityHigh:
		return QualitySettings{VideoCRF: 18, EncodePreset: "slow"}
	default: // medium
		return QualitySettings{VideoCRF: 23, EncodePreset: "medium"}
	}
}

// Config represents the configuration for one render.
type Config struct {
	// Canvas
	AspectRatio string  // 16:9, 9:16, 4:3, 3:4 or 1:1
	Resolution  string  // 1080p, 720p or 480p
	FPS         float64 // Frames per second (default: 30)
	Upscaler    float64 // Output scale factor (min: 1)

	// Selection
	Filter string // Pages to render, e.g. "1,3-5"; empty renders all

	// Style
	BackgroundColor color.Color // Beneath every page

	// Encoding
	VideoCRF     int    // H.264 CRF value (0-51, lower is better)
	Bitrate      int    // Maximum bitrate in kbps (0 = CRF only)
	EncodePreset string // x264 speed preset
	Threads      int    // Encoder threads (0 = auto)

	// Output
	TempDir string // Intermediate files; empty uses the output directory
	Verify  bool   // Probe the result before replacing the output
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with landscape preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return NewPresetBuilder(PresetLandscape)
}

// NewPresetBuilder creates a ConfigBuilder for a named preset. Unknown names
// use the landscape preset.
func NewPresetBuilder(preset Preset) *ConfigBuilder {
	cfg := landscapeDefaults()
	switch preset {
	case PresetShorts:
		cfg.AspectRatio = "9:16"
	case PresetSquare:
		cfg.AspectRatio = "1:1"
		cfg.Resolution = "720p"
	}
	return &ConfigBuilder{config: cfg}
}

// landscapeDefaults returns the landscape preset configuration.
func landscapeDefaults() Config {
	q := GetQualitySettings(QualityMedium)
	return Config{
		AspectRatio: "16:9",
		Resolution:  "1080p",
		FPS:         30,
		Upscaler:    1,

		BackgroundColor: color.Black,

		VideoCRF:     q.VideoCRF,
		EncodePreset: q.EncodePreset,

		Verify: true,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Upscaler < 1 {
		cfg.Upscaler = 1
	}
	if cfg.VideoCRF < 0 {
		cfg.VideoCRF = 0
	}
	if cfg.VideoCRF > 51 {
		cfg.VideoCRF = 51
	}
	if cfg.Bitrate < 0 {
		cfg.Bitrate = 0
	}
	if cfg.BackgroundColor == nil {
		cfg.BackgroundColor = color.Black
	}

	return cfg
}

// WithAspectRatio sets the canvas aspect ratio.
func (b *ConfigBuilder) WithAspectRatio(aspect string) *ConfigBuilder {
	b.config.AspectRatio = aspect
	return b
}

// WithResolution sets the quality tier (1080p, 720p, 480p).
func (b *ConfigBuilder) WithResolution(resolution string) *ConfigBuilder {
	b.config.Resolution = resolution
	return b
}

// WithFPS sets the frame rate.
// Values at or below 0 will be forced to 30.
func (b *ConfigBuilder) WithFPS(fps float64) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithUpscaler scales the encoded output relative to the canvas.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithUpscaler(factor float64) *ConfigBuilder {
	b.config.Upscaler = factor
	return b
}

// WithFilter restricts the render to the listed pages.
func (b *ConfigBuilder) WithFilter(filter string) *ConfigBuilder {
	b.config.Filter = filter
	return b
}

// WithBackgroundColor sets the color beneath every page.
func (b *ConfigBuilder) WithBackgroundColor(c color.Color) *ConfigBuilder {
	b.config.BackgroundColor = c
	return b
}

// WithVideoCRF sets the H.264 CRF value (0-51, lower is better).
func (b *ConfigBuilder) WithVideoCRF(crf int) *ConfigBuilder {
	b.config.VideoCRF = crf
	return b
}

// WithBitrate caps the bitrate in kbps. Use 0 for CRF only.
func (b *ConfigBuilder) WithBitrate(kbps int) *ConfigBuilder {
	b.config.Bitrate = kbps
	return b
}

// WithEncodePreset sets the x264 speed preset.
func (b *ConfigBuilder) WithEncodePreset(preset string) *ConfigBuilder {
	b.config.EncodePreset = preset
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	settings := GetQualitySettings(preset)
	b.config.VideoCRF = settings.VideoCRF
	b.config.EncodePreset = settings.EncodePreset
	return b
}

// WithThreads sets the encoder thread count.
func (b *ConfigBuilder) WithThreads(n int) *ConfigBuilder {
	b.config.Threads = n
	return b
}

// WithTempDir sets where intermediate files are written.
func (b *ConfigBuilder) WithTempDir(dir string) *ConfigBuilder {
	b.config.TempDir = dir
	return b
}

// WithVerify enables probing the output before it is moved into place.
func (b *ConfigBuilder) WithVerify(verify bool) *ConfigBuilder {
	b.config.Verify = verify
	return b
}

// PlanOptions returns the timeline layout options of c.
func (c Config) PlanOptions() timeline.PlanOptions {
	return timeline.PlanOptions{
		AspectRatio: c.AspectRatio,
		Resolution:  c.Resolution,
		FPS:         c.FPS,
		Filter:      c.Filter,
		Upscaler:    c.Upscaler,
	}
}

// ToRenderOptions converts Config to orchestrator.RenderOptions.
func (c Config) ToRenderOptions() orchestrator.RenderOptions {
	return orchestrator.RenderOptions{
		Plan:       c.PlanOptions(),
		Background: c.BackgroundColor,
		Quality:    c.VideoCRF,
		Bitrate:    c.Bitrate,
		Preset:     c.EncodePreset,
		Threads:    c.Threads,
		TempDir:    c.TempDir,
		Verify:     c.Verify,
	}
}
