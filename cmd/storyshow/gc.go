package main

import (
	"time"

	"github.com/user/storyshow/pkg/workspace"
)

// GCCmd removes stale job directories.
type GCCmd struct {
	GlobalFlags `embed:""`

	Root   string        `help:"Workspace root (overrides the config file)."`
	MaxAge time.Duration `help:"Remove jobs older than this (overrides the config file)."`
}

// Run executes the gc command.
func (cmd *GCCmd) Run() error {
	a, err := cmd.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(a.log)
	defer cancel()

	root := a.cfg.Workspace.Root
	if cmd.Root != "" {
		root = cmd.Root
	}
	maxAge := a.cfg.Workspace.MaxAge
	if cmd.MaxAge > 0 {
		maxAge = cmd.MaxAge
	}
	if maxAge <= 0 {
		maxAge = workspace.DefaultMaxAge
	}

	_, err = workspace.New(root, a.fs, a.log).Sweep(ctx, maxAge)
	return err
}
