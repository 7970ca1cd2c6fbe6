package ffmpeg

import (
	"errors"
	"fmt"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg cannot be located.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found")

	// ErrFFprobeNotFound is returned when ffprobe cannot be located.
	ErrFFprobeNotFound = errors.New("ffmpeg: ffprobe not found")
)

// ExecError is a failed ffmpeg or ffprobe invocation.
type ExecError struct {
	Err    error
	Stderr string
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg: %v\nstderr: %s", e.Err, e.Stderr)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
