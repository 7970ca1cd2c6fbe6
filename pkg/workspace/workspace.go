// Package workspace manages per-job project directories and their cleanup.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/user/storyshow/pkg/ports"
)

// DefaultMaxAge is how long a job directory survives before Sweep removes it.
const DefaultMaxAge = 24 * time.Hour

// Job is one render job's private directory.
type Job struct {
	ID  string
	Dir string
}

// Path returns name inside the job directory.
func (j Job) Path(name string) string {
	return filepath.Join(j.Dir, name)
}

// Workspace creates job directories under a root and sweeps stale ones.
type Workspace struct {
	root   string
	fs     ports.FileSystem
	logger ports.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Workspace rooted at root.
func New(root string, fs ports.FileSystem, logger ports.Logger) *Workspace {
	return &Workspace{
		root:   root,
		fs:     fs,
		logger: logger.WithComponent("workspace"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Create makes a fresh job directory named by a random UUID.
func (w *Workspace) Create() (Job, error) {
	id := w.newID()
	job := Job{ID: id, Dir: filepath.Join(w.root, id)}
	if err := w.fs.MkdirAll(job.Dir); err != nil {
		return Job{}, fmt.Errorf("create job directory: %w", err)
	}
	w.logger.Debug("Created job %s", id)
	return job, nil
}

// Sweep removes every entry under the root last modified more than maxAge
// ago and returns the removed paths. A missing root is not an error.
func (w *Workspace) Sweep(ctx context.Context, maxAge time.Duration) ([]string, error) {
	exists, err := w.fs.Exists(w.root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	names, err := w.fs.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	cutoff := w.now().Add(-maxAge)
	var removed []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		p := filepath.Join(w.root, name)
		mod, err := w.fs.ModTime(p)
		if err != nil {
			w.logger.Warn("Skipping %s: %v", p, err)
			continue
		}
		if !mod.Before(cutoff) {
			continue
		}

		if err := w.fs.RemoveAll(p); err != nil {
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}

	w.logger.Info("Removed %d stale jobs from %s", len(removed), w.root)
	return removed, nil
}
