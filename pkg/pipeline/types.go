package pipeline

import (
	"context"
	"image"
	"image/color"

	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/timeline"
)

// =============================================================================
// Plan Stage Types
// =============================================================================

// PlanInput is a movie and the layout to render it with.
type PlanInput struct {
	Name    string // Label for debug output
	Movie   *timeline.Movie
	Options timeline.PlanOptions
}

// PlanResult wraps the deterministic render plan.
type PlanResult struct {
	Plan timeline.Plan
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains the plan to rasterize.
type CompositeInput struct {
	Plan       timeline.Plan
	Background color.Color // Canvas color beneath every page
}

// CompositeResult exposes the composed frames as a lazy sequence.
type CompositeResult struct {
	Frames FrameSequence
}

// FrameSequence produces composed frames in presentation order. Frames are
// rendered on demand so a long movie never sits in memory at once.
type FrameSequence interface {
	// Len returns the number of frames.
	Len() int

	// Each calls fn for every frame in order and stops at the first error.
	Each(ctx context.Context, fn func(ComposedFrame) error) error
}

// Frames adapts an in-memory slice to a FrameSequence.
type Frames []ComposedFrame

func (f Frames) Len() int { return len(f) }

func (f Frames) Each(ctx context.Context, fn func(ComposedFrame) error) error {
	for _, frame := range f {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(frame); err != nil {
			return err
		}
	}
	return nil
}

// ComposedFrame is one output frame.
type ComposedFrame struct {
	Index       int
	TimestampMs int
	Image       image.Image
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for video encoding.
type EncodeInput struct {
	Frames     FrameSequence
	Width      int
	Height     int
	FPS        float64
	OutputPath string
	Quality    int    // CRF: 0-51 (lower is higher quality)
	Bitrate    int    // Target bitrate in kbps, 0 for CRF only
	Preset     string // x264 preset
	Threads    int
}

// DefaultEncodeInput returns EncodeInput with default values.
func DefaultEncodeInput() EncodeInput {
	return EncodeInput{
		Quality: 23,
		FPS:     30,
		Preset:  "medium",
	}
}

// EncodeResult describes the silent video file.
type EncodeResult struct {
	Path       string
	FrameCount int
	DurationMs int
}

// =============================================================================
// Mux Stage Types
// =============================================================================

// MuxInput combines a silent video with the audio track.
type MuxInput struct {
	VideoPath  string
	Tracks     []ports.AudioTrack
	Duration   float64
	OutputPath string
}

// MuxResult describes the muxed file.
type MuxResult struct {
	Path   string
	Tracks int
}

// =============================================================================
// Verify Stage Types
// =============================================================================

// VerifyInput names the file to check and what it should contain.
type VerifyInput struct {
	Path     string
	Width    int
	Height   int
	Duration float64
	HasAudio bool
}

// VerifyResult is what the container actually holds.
type VerifyResult struct {
	Info ports.MediaInfo
}
