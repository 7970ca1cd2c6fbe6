// Package assets resolves logical asset names against a search path.
package assets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
)

// Environment variables read by FromEnv.
const (
	EnvAssetPath = "ASSET_PATH"
	EnvBuildPath = "BUILD_PATH"
)

// Resolver implements ports.AssetResolver. Names are tried against each
// search directory in order; the first existing file wins.
type Resolver struct {
	searchPaths []string
	buildDir    string
	fs          ports.FileSystem
}

// New creates a Resolver. An empty buildDir is derived from the search path.
func New(searchPaths []string, buildDir string, fs ports.FileSystem) *Resolver {
	return &Resolver{
		searchPaths: cleanPaths(searchPaths),
		buildDir:    buildDir,
		fs:          fs,
	}
}

// FromEnv builds a Resolver from ASSET_PATH (comma separated, required) and
// BUILD_PATH (optional).
func FromEnv(fs ports.FileSystem) (*Resolver, error) {
	raw := os.Getenv(EnvAssetPath)
	if strings.TrimSpace(raw) == "" {
		return nil, storyerr.Configf(EnvAssetPath, "not set")
	}
	return New(strings.Split(raw, ","), os.Getenv(EnvBuildPath), fs), nil
}

// WithSearchPath returns a copy of r that also searches dir, after the
// existing directories.
func (r *Resolver) WithSearchPath(dir string) *Resolver {
	paths := make([]string, len(r.searchPaths), len(r.searchPaths)+1)
	copy(paths, r.searchPaths)
	return &Resolver{
		searchPaths: append(paths, cleanPaths([]string{dir})...),
		buildDir:    r.buildDir,
		fs:          r.fs,
	}
}

// SearchPaths returns the directories searched, in order.
func (r *Resolver) SearchPaths() []string {
	out := make([]string, len(r.searchPaths))
	copy(out, r.searchPaths)
	return out
}

// AssetPath returns the first existing match for name. Absolute paths are
// returned as-is when they exist.
func (r *Resolver) AssetPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		if ok, _ := r.fs.Exists(name); ok {
			return name, nil
		}
		return "", &storyerr.AssetNotFoundError{Name: name}
	}
	for _, dir := range r.searchPaths {
		p := filepath.Join(dir, name)
		if ok, _ := r.fs.Exists(p); ok {
			return p, nil
		}
	}
	return "", &storyerr.AssetNotFoundError{Name: name, SearchPaths: r.SearchPaths()}
}

// BuildPath returns where a derived asset called name is written: under
// BUILD_PATH, else <last search path>/build, else ./build.
func (r *Resolver) BuildPath(name string) string {
	return filepath.Join(r.BuildDir(), name)
}

// BuildDir returns the build directory.
func (r *Resolver) BuildDir() string {
	if r.buildDir != "" {
		return r.buildDir
	}
	if n := len(r.searchPaths); n > 0 {
		return filepath.Join(r.searchPaths[n-1], "build")
	}
	return "build"
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ensure Resolver implements ports.AssetResolver
var _ ports.AssetResolver = (*Resolver)(nil)
