package ports

import (
	"image"
)

// VideoEncoder writes a silent video stream to a file.
type VideoEncoder interface {
	// Begin starts an encode of width x height frames at fps into opts.OutputPath.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends one frame. Frames must arrive in presentation order.
	EncodeFrame(img image.Image, timestampMs int) error

	// End flushes the encoder and closes the output file.
	End() error

	// Abort stops the encode and discards the output file.
	Abort()
}

// EncoderOptions configures a video encode.
type EncoderOptions struct {
	OutputPath string
	Quality    int    // CRF 0-51, lower is better; 0 selects the encoder default
	Bitrate    int    // kbps; 0 leaves rate control to Quality
	Preset     string // x264 speed preset
	Threads    int
}
