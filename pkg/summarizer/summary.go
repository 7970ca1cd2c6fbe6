// Package summarizer provides summary generation for render results.
package summarizer

import (
	"time"

	"github.com/user/storyshow/pkg/orchestrator"
)

// Summary contains all data collected during a render.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Movie information
	Movie MovieInfo

	// Timing results
	Timing TimingInfo

	// Render settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// MovieInfo describes the rendered movie.
type MovieInfo struct {
	Title  string
	Pages  []PageInfo
	Filter string
}

// PageInfo is one rendered page.
type PageInfo struct {
	Number   int
	Name     string
	StartSec float64
	EndSec   float64
}

// TimingInfo contains timing measurements.
type TimingInfo struct {
	ElapsedMs int
}

// Settings contains the render configuration.
type Settings struct {
	Preset      string
	Quality     string
	AspectRatio string
	Resolution  string
	FPS         float64
	Upscaler    float64
	CRF         int
	Codec       string
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	OutputPath   string
	FrameCount   int
	DurationMs   int
	FileSize     int64
	CanvasWidth  int
	CanvasHeight int
	AudioTracks  int
	VideoCodec   string
	AudioCodec   string
	Skipped      bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithMovie sets movie information.
func (b *Builder) WithMovie(title, filter string, pages ...PageInfo) *Builder {
	b.summary.Movie = MovieInfo{
		Title:  title,
		Pages:  pages,
		Filter: filter,
	}
	return b
}

// WithElapsed sets the wall-clock render time.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Timing = TimingInfo{ElapsedMs: int(d.Milliseconds())}
	return b
}

// WithSettings sets render settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithResult fills movie, video and timing from a finished render.
// Settings and file size are left to the caller.
func (b *Builder) WithResult(r orchestrator.RunResult) *Builder {
	pages := make([]PageInfo, 0, len(r.Plan.Pages))
	for _, p := range r.Plan.Pages {
		pages = append(pages, PageInfo{Number: p.Number, Name: p.Name, StartSec: p.Start, EndSec: p.End})
	}
	b.WithMovie(r.Plan.Title, b.summary.Movie.Filter, pages...)
	b.WithElapsed(r.Elapsed)

	size := b.summary.Video.FileSize
	b.summary.Video = VideoInfo{
		OutputPath:   r.OutputPath,
		FrameCount:   r.FrameCount,
		DurationMs:   r.VideoDurationMs,
		FileSize:     size,
		CanvasWidth:  r.Plan.OutputWidth,
		CanvasHeight: r.Plan.OutputHeight,
		AudioTracks:  r.AudioTracks,
		VideoCodec:   r.Info.VideoCodec,
		AudioCodec:   r.Info.AudioCodec,
		Skipped:      r.Skipped,
	}
	return b
}

// WithFileSize sets the size of the output file in bytes.
func (b *Builder) WithFileSize(size int64) *Builder {
	b.summary.Video.FileSize = size
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
