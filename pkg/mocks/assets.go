package mocks

import (
	"context"
	"path"
	"sync"

	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
)

// AssetResolver is a mock implementation of ports.AssetResolver backed by a
// name to path map.
type AssetResolver struct {
	Assets   map[string]string
	BuildDir string
}

func (m *AssetResolver) AssetPath(name string) (string, error) {
	if p, ok := m.Assets[name]; ok {
		return p, nil
	}
	return "", &storyerr.AssetNotFoundError{Name: name, SearchPaths: []string{"mock"}}
}

func (m *AssetResolver) BuildPath(name string) string {
	dir := m.BuildDir
	if dir == "" {
		dir = "/build"
	}
	return path.Join(dir, name)
}

var _ ports.AssetResolver = (*AssetResolver)(nil)

// VoiceSynthesizer is a mock implementation of ports.VoiceSynthesizer.
type VoiceSynthesizer struct {
	mu sync.Mutex

	SynthesizeFunc func(ctx context.Context, text, voice, outputPath string) error

	Calls []string
}

func (m *VoiceSynthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, voice, outputPath)
	}
	return nil
}

// CallCount returns the number of Synthesize calls.
func (m *VoiceSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.VoiceSynthesizer = (*VoiceSynthesizer)(nil)
