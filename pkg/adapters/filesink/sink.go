// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/storyshow/pkg/ports"
)

// Sink writes render plans and frames under a debug directory:
//
//	<baseDir>/<name>.plan.json
//	<baseDir>/frames/frame-0000.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer

	// Every keeps one frame out of every N; 0 or 1 keeps all.
	Every int
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlanJSON saves a render plan.
func (s *Sink) SavePlanJSON(name string, data []byte) error {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	path := filepath.Join(s.baseDir, name+".plan.json")
	return s.fs.WriteFile(path, data)
}

// SaveFrame saves a composed frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	if s.Every > 1 && index%s.Every != 0 {
		return nil
	}
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
