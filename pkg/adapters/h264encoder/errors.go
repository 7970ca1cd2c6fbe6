package h264encoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("h264encoder: encoder not initialized")

	// ErrAlreadyStarted is returned when Begin is called twice without End.
	ErrAlreadyStarted = errors.New("h264encoder: encode already in progress")

	// ErrInvalidSize is returned for frame sizes or rates H.264 cannot carry.
	ErrInvalidSize = errors.New("h264encoder: invalid frame size")

	// ErrNoOutput is returned when no output path is configured.
	ErrNoOutput = errors.New("h264encoder: no output path")

	// ErrEncodingFailed is returned when ffmpeg rejects the stream.
	ErrEncodingFailed = errors.New("h264encoder: encoding failed")

	// ErrNoFrames is returned when End is called before any frame was written.
	ErrNoFrames = errors.New("h264encoder: no frames to encode")
)
