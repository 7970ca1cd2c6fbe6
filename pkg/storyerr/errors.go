// Package storyerr defines the error kinds shared across storyshow.
//
// Callers distinguish kinds with errors.Is against the sentinels below:
// configuration mistakes are programmer errors, missing assets are usually
// fixed by uploading a file, and render errors are fatal for one job.
package storyerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig marks invalid parameters detected at construction time.
	ErrConfig = errors.New("storyshow: configuration error")

	// ErrAssetNotFound marks an asset missing from every search path.
	ErrAssetNotFound = errors.New("storyshow: asset not found")

	// ErrRender marks a failure while exporting a timeline.
	ErrRender = errors.New("storyshow: render error")
)

// ConfigError describes a rejected parameter.
type ConfigError struct {
	Field  string
	Reason string
}

// Configf builds a ConfigError with a formatted reason.
func Configf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// AssetNotFoundError reports the logical name and where it was looked up.
type AssetNotFoundError struct {
	Name        string
	SearchPaths []string
}

func (e *AssetNotFoundError) Error() string {
	if len(e.SearchPaths) == 0 {
		return fmt.Sprintf("asset not found: %s", e.Name)
	}
	return fmt.Sprintf("asset not found: %s (searched %s)", e.Name, strings.Join(e.SearchPaths, ", "))
}

// Is reports whether target is ErrAssetNotFound.
func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// RenderError wraps a failure of a named pipeline stage.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
