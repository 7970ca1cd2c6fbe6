package voicecache

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/user/storyshow/pkg/adapters/logger"
	"github.com/user/storyshow/pkg/mocks"
)

func writingSynth(fs *mocks.FileSystem, payload string) *mocks.VoiceSynthesizer {
	return &mocks.VoiceSynthesizer{
		SynthesizeFunc: func(ctx context.Context, text, voice, outputPath string) error {
			return fs.WriteFile(outputPath, []byte(payload))
		},
	}
}

func TestKey(t *testing.T) {
	key := Key("Arthur", "flash", "Hello, world! How are you?")

	if !strings.HasPrefix(key, "Arthur_flash_") {
		t.Errorf("unexpected prefix in %q", key)
	}
	if !strings.HasSuffix(key, "_Hello__wor") {
		t.Errorf("expected sanitized ten-character suffix, got %q", key)
	}
	if Key("Arthur", "flash", "Hello") == Key("Daria", "flash", "Hello") {
		t.Error("expected voice to change the key")
	}
	if Key("Arthur", "flash", "Hello") != Key("Arthur", "flash", "Hello") {
		t.Error("expected keys to be deterministic")
	}
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"a/b\\c.d?e!f", "a_b_c_d_e_"},
		{"くまさんがおどります", "くまさんがおどります"},
		{"line\nbreak here", "line_break"},
	}
	for _, tt := range tests {
		if got := suffix(tt.in); got != tt.want {
			t.Errorf("suffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCache_Path(t *testing.T) {
	fs := mocks.NewFileSystem()
	synth := writingSynth(fs, "mp3 data")
	cache := New(synth, fs, logger.NewNoop(), "/cache", "")

	path, err := cache.Path(context.Background(), "The bear dances", "Arthur")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}

	want := filepath.Join("/cache", Key("Arthur", DefaultModel, "The bear dances")+".mp3")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
	if data, ok := fs.GetFile(path); !ok || string(data) != "mp3 data" {
		t.Errorf("expected cached file, got %q (exists=%v)", data, ok)
	}

	// Second call is served from the cache.
	if _, err := cache.Path(context.Background(), "The bear dances", "Arthur"); err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if n := synth.CallCount(); n != 1 {
		t.Errorf("expected 1 synthesis, got %d", n)
	}
	if len(fs.Renamed) != 1 {
		t.Errorf("expected temp file renamed once, got %d", len(fs.Renamed))
	}
}

func TestCache_PathConcurrent(t *testing.T) {
	fs := mocks.NewFileSystem()
	synth := writingSynth(fs, "mp3")
	cache := New(synth, fs, logger.NewNoop(), "/cache", "m")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Path(context.Background(), "same line", "Arthur"); err != nil {
				t.Errorf("Path failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := synth.CallCount(); n != 1 {
		t.Errorf("expected a single synthesis, got %d", n)
	}
}

func TestCache_EmptyOutput(t *testing.T) {
	fs := mocks.NewFileSystem()
	cache := New(writingSynth(fs, ""), fs, logger.NewNoop(), "/cache", "m")

	_, err := cache.Path(context.Background(), "silence", "Arthur")
	if !errors.Is(err, ErrEmptyVoiceover) {
		t.Fatalf("expected ErrEmptyVoiceover, got %v", err)
	}
	if len(fs.Removed) != 1 {
		t.Errorf("expected the empty temp file to be removed, got %v", fs.Removed)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Errorf("expected no files left, got %v", fs.GetAllFiles())
	}
}

func TestCache_SynthesizerError(t *testing.T) {
	fs := mocks.NewFileSystem()
	boom := errors.New("quota exceeded")
	synth := &mocks.VoiceSynthesizer{
		SynthesizeFunc: func(context.Context, string, string, string) error { return boom },
	}
	cache := New(synth, fs, logger.NewNoop(), "/cache", "m")

	if _, err := cache.Path(context.Background(), "hello", "Arthur"); !errors.Is(err, boom) {
		t.Errorf("expected synthesizer error, got %v", err)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected temp file cleanup")
	}
}

func TestCache_EmptyText(t *testing.T) {
	fs := mocks.NewFileSystem()
	synth := writingSynth(fs, "x")
	cache := New(synth, fs, logger.NewNoop(), "/cache", "m")

	if _, err := cache.Path(context.Background(), "  ", "Arthur"); err == nil {
		t.Error("expected error for blank text")
	}
	if synth.CallCount() != 0 {
		t.Error("expected no synthesis for blank text")
	}
}

func TestCache_Synthesize(t *testing.T) {
	fs := mocks.NewFileSystem()
	cache := New(writingSynth(fs, "voice"), fs, logger.NewNoop(), "/cache", "m")

	if err := cache.Synthesize(context.Background(), "hi", "Arthur", "/out/hi.mp3"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if data, ok := fs.GetFile("/out/hi.mp3"); !ok || string(data) != "voice" {
		t.Errorf("expected copied voiceover, got %q", data)
	}
}
