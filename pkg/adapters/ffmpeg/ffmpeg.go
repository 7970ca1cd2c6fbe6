// Package ffmpeg locates the ffmpeg and ffprobe executables and runs them.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

var (
	mu              sync.RWMutex
	customFFmpeg    string
	customFFprobe   string
	stderrTailBytes = 2048
)

// SetFFmpegPath overrides the ffmpeg lookup. An empty path restores it.
func SetFFmpegPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customFFmpeg = path
}

// SetFFprobePath overrides the ffprobe lookup. An empty path restores it.
func SetFFprobePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customFFprobe = path
}

// Available reports whether ffmpeg can be found.
func Available() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	mu.RLock()
	custom := customFFmpeg
	mu.RUnlock()
	return find("ffmpeg", custom, "FFMPEG_PATH")
}

// FindFFprobe searches for ffprobe the same way as FindFFmpeg using
// FFPROBE_PATH. As a last resort it looks next to the ffmpeg binary.
func FindFFprobe() (string, error) {
	mu.RLock()
	custom := customFFprobe
	mu.RUnlock()
	path, err := find("ffprobe", custom, "FFPROBE_PATH")
	if err == nil || custom != "" || os.Getenv("FFPROBE_PATH") != "" {
		return path, err
	}
	if ff, ffErr := FindFFmpeg(); ffErr == nil {
		sibling := strings.TrimSuffix(ff, exeName("ffmpeg")) + exeName("ffprobe")
		if _, statErr := os.Stat(sibling); statErr == nil {
			return sibling, nil
		}
	}
	return "", err
}

func find(name, custom, envVar string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", errNotFound(name), custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", errNotFound(name), envVar, envPath)
	}

	exe := exeName(name)
	if path, err := exec.LookPath(exe); err == nil {
		return path, nil
	}

	var dirs []string
	switch runtime.GOOS {
	case "windows":
		dirs = []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`, `C:\Program Files (x86)\ffmpeg\bin`}
	case "darwin":
		dirs = []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		dirs = []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/snap/bin"}
	}
	sep := string(os.PathSeparator)
	for _, dir := range dirs {
		p := dir + sep + exe
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", errNotFound(name)
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func errNotFound(name string) error {
	if name == "ffprobe" {
		return ErrFFprobeNotFound
	}
	return ErrFFmpegNotFound
}

// Run executes ffmpeg with args and returns its stdout. On failure the
// error carries the tail of stderr.
func Run(ctx context.Context, args ...string) ([]byte, error) {
	path, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	return run(ctx, path, args)
}

// Probe executes ffprobe with args and returns its stdout.
func Probe(ctx context.Context, args ...string) ([]byte, error) {
	path, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return run(ctx, path, args)
}

func run(ctx context.Context, path string, args []string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ExecError{Err: err, Stderr: StderrTail(stderr.Bytes())}
	}
	return stdout.Bytes(), nil
}

// StderrTail trims process output to its last few kilobytes.
func StderrTail(b []byte) string {
	if len(b) > stderrTailBytes {
		b = b[len(b)-stderrTailBytes:]
	}
	return strings.TrimSpace(string(b))
}
