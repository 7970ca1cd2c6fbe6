// Package h264encoder encodes frames to an H.264 MP4 file by streaming raw
// RGBA pixels into an ffmpeg process.
package h264encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/storyshow/pkg/adapters/ffmpeg"
	"github.com/user/storyshow/pkg/ports"
)

const defaultCRF = 23

// Encoder implements ports.VideoEncoder.
type Encoder struct {
	mu sync.Mutex

	width  int
	height int
	opts   ports.EncoderOptions

	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	buf        *image.RGBA
	frameCount int
}

// New creates a new H.264 encoder.
func New() *Encoder {
	return &Encoder{}
}

// Args returns the ffmpeg arguments for an encode. It is exported for tests
// and for logging the exact command line.
func Args(width, height int, fps float64, opts ports.EncoderOptions) []string {
	crf := opts.Quality
	if crf <= 0 {
		crf = defaultCRF
	}
	if crf > 51 {
		crf = 51
	}
	preset := opts.Preset
	if preset == "" {
		preset = "medium"
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-an",
		"-c:v", "libx264",
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
	}
	if opts.Bitrate > 0 {
		args = append(args, "-maxrate", fmt.Sprintf("%dk", opts.Bitrate), "-bufsize", fmt.Sprintf("%dk", opts.Bitrate*2))
	}
	if opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(opts.Threads))
	}
	return append(args,
		"-movflags", "+faststart",
		"-f", "mp4",
		opts.OutputPath,
	)
}

// Begin starts ffmpeg writing to opts.OutputPath.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return ErrAlreadyStarted
	}
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if fps <= 0 {
		return fmt.Errorf("%w: fps %v", ErrInvalidSize, fps)
	}
	if opts.OutputPath == "" {
		return ErrNoOutput
	}

	path, err := ffmpeg.FindFFmpeg()
	if err != nil {
		return err
	}

	e.width = width
	e.height = height
	e.opts = opts
	e.frameCount = 0
	e.stderr.Reset()
	e.buf = image.NewRGBA(image.Rect(0, 0, width, height))

	cmd := exec.Command(path, Args(width, height, fps, opts)...)
	cmd.Stderr = &e.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// EncodeFrame writes one frame. Images of a different size are drawn at the
// top-left corner of the frame buffer.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	pix := e.buf.Pix
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds() == e.buf.Bounds() && rgba.Stride == e.buf.Stride {
		pix = rgba.Pix
	} else {
		draw.Draw(e.buf, e.buf.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	if _, err := e.stdin.Write(pix); err != nil {
		return fmt.Errorf("%w: frame at %dms: %v: %s", ErrEncodingFailed, timestampMs, err, ffmpeg.StderrTail(e.stderr.Bytes()))
	}
	e.frameCount++
	return nil
}

// End closes the input and waits for ffmpeg to finish the file.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}
	defer e.reset()

	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrEncodingFailed, err, ffmpeg.StderrTail(e.stderr.Bytes()))
	}
	if e.frameCount == 0 {
		os.Remove(e.opts.OutputPath)
		return ErrNoFrames
	}
	return nil
}

// Abort kills ffmpeg and removes the partial output.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return
	}
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.cmd.Wait()
	os.Remove(e.opts.OutputPath)
	e.reset()
}

// FrameCount returns the number of frames written so far.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

func (e *Encoder) reset() {
	e.cmd = nil
	e.stdin = nil
	e.buf = nil
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
