package ports

import "context"

// AudioTrack is one audio asset placed on the output timeline.
type AudioTrack struct {
	Path   string
	Start  float64 // Absolute start in seconds
	End    float64 // Absolute end in seconds
	Volume float64 // 1.0 keeps the source level
}

// AudioMuxer mixes audio tracks into a video file.
type AudioMuxer interface {
	// Mux writes outputPath with the video stream of videoPath and the mix of
	// tracks, trimmed to duration seconds.
	Mux(ctx context.Context, videoPath string, tracks []AudioTrack, duration float64, outputPath string) error
}
