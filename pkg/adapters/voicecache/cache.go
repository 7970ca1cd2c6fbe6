// Package voicecache stores synthesized voiceovers by content so each line
// of narration is generated once.
package voicecache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/user/storyshow/pkg/ports"
)

// ErrEmptyVoiceover is returned when the synthesizer produced an empty file.
var ErrEmptyVoiceover = errors.New("voicecache: voiceover is empty")

// DefaultModel labels cache entries when no model is configured.
const DefaultModel = "default"

// Cache wraps a synthesizer with a file cache keyed by voice, model and text.
type Cache struct {
	synth  ports.VoiceSynthesizer
	fs     ports.FileSystem
	logger ports.Logger
	dir    string
	model  string
	group  singleflight.Group
}

// New creates a Cache storing files in dir.
func New(synth ports.VoiceSynthesizer, fs ports.FileSystem, logger ports.Logger, dir, model string) *Cache {
	if model == "" {
		model = DefaultModel
	}
	return &Cache{
		synth:  synth,
		fs:     fs,
		logger: logger.WithComponent("voice"),
		dir:    dir,
		model:  model,
	}
}

// Key returns the cache key for text spoken by voice with model.
func Key(voice, model, text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf("%s_%s_%s_%s", voice, model, hex.EncodeToString(sum[:]), suffix(text))
}

var suffixReplacer = strings.NewReplacer(
	" ", "_", "\n", "_", ",", "_", ".", "_", "?", "_", "!", "_", "/", "_", "\\", "_",
)

// suffix is a readable tag built from the first ten characters of text.
func suffix(text string) string {
	r := []rune(text)
	if len(r) > 10 {
		r = r[:10]
	}
	return suffixReplacer.Replace(string(r))
}

// Path returns the audio file for text, synthesizing it on a cache miss.
// Concurrent requests for the same line share one synthesis.
func (c *Cache) Path(ctx context.Context, text, voice string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("voicecache: empty text")
	}
	key := Key(voice, c.model, text)
	path := filepath.Join(c.dir, key+".mp3")

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if ok, _ := c.fs.Exists(path); ok {
			c.logger.Debug("Voiceover cache hit: %s", key)
			return path, nil
		}
		return path, c.synthesize(ctx, text, voice, key, path)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) synthesize(ctx context.Context, text, voice, key, path string) error {
	c.logger.Debug("Synthesizing voiceover: %s", key)
	if err := c.fs.MkdirAll(c.dir); err != nil {
		return fmt.Errorf("voicecache: %w", err)
	}
	tmp, err := c.fs.TempFile(c.dir, key+"-*.mp3")
	if err != nil {
		return fmt.Errorf("voicecache: %w", err)
	}

	if err := c.synth.Synthesize(ctx, text, voice, tmp); err != nil {
		c.fs.Remove(tmp)
		return fmt.Errorf("voicecache: synthesize: %w", err)
	}
	data, err := c.fs.ReadFile(tmp)
	if err != nil {
		c.fs.Remove(tmp)
		return fmt.Errorf("voicecache: %w", err)
	}
	if len(data) == 0 {
		c.fs.Remove(tmp)
		return ErrEmptyVoiceover
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		c.fs.Remove(tmp)
		return fmt.Errorf("voicecache: %w", err)
	}
	return nil
}

// Synthesize implements ports.VoiceSynthesizer by copying the cached file
// to outputPath.
func (c *Cache) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	path, err := c.Path(ctx, text, voice)
	if err != nil {
		return err
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("voicecache: %w", err)
	}
	return c.fs.WriteFile(outputPath, data)
}

// Ensure Cache implements ports.VoiceSynthesizer
var _ ports.VoiceSynthesizer = (*Cache)(nil)
