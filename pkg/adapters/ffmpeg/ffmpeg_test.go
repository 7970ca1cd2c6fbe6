package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindFFmpeg_CustomPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	SetFFmpegPath(fake)
	defer SetFFmpegPath("")

	got, err := FindFFmpeg()
	if err != nil {
		t.Fatalf("FindFFmpeg: %v", err)
	}
	if got != fake {
		t.Errorf("expected %s, got %s", fake, got)
	}
}

func TestFindFFmpeg_MissingCustomPath(t *testing.T) {
	SetFFmpegPath(filepath.Join(t.TempDir(), "nope"))
	defer SetFFmpegPath("")

	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFprobe_MissingEnvPath(t *testing.T) {
	t.Setenv("FFPROBE_PATH", filepath.Join(t.TempDir(), "nope"))

	if _, err := FindFFprobe(); !errors.Is(err, ErrFFprobeNotFound) {
		t.Errorf("expected ErrFFprobeNotFound, got %v", err)
	}
}

func TestStderrTail(t *testing.T) {
	long := strings.Repeat("x", stderrTailBytes+100) + "end"
	got := StderrTail([]byte(long))
	if len(got) != stderrTailBytes || !strings.HasSuffix(got, "end") {
		t.Errorf("expected the last %d bytes, got %d", stderrTailBytes, len(got))
	}
}

func TestExecError_Unwrap(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &ExecError{Err: inner, Stderr: "Invalid data"}
	if !errors.Is(err, inner) {
		t.Error("ExecError should unwrap")
	}
	if !strings.Contains(err.Error(), "Invalid data") {
		t.Errorf("message should include stderr: %q", err.Error())
	}
}
