package main

import (
	"path/filepath"

	"github.com/user/storyshow/pkg/templates"
	"github.com/user/storyshow/pkg/timeline"
)

// TemplateCmd renders a built-in template.
type TemplateCmd struct {
	GlobalFlags `embed:""`
	RenderFlags `embed:""`

	Name     string `arg:"" help:"Template name (balloonpop, brownbear)."`
	InputDir string `short:"i" required:"" type:"existingdir" help:"Directory holding config.json and the template's images."`
	Compile  bool   `short:"c" help:"Write a single file instead of one file per page."`
}

// Run executes the template command.
func (cmd *TemplateCmd) Run() error {
	a, err := cmd.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(a.log)
	defer cancel()

	res, err := a.resolver()
	if err != nil {
		return err
	}
	// Template images live next to config.json.
	res = res.WithSearchPath(cmd.InputDir)
	if err := a.fs.MkdirAll(res.BuildDir()); err != nil {
		return err
	}

	tpl, err := templates.Lookup(cmd.Name, templates.Deps{
		FS:     a.fs,
		Assets: res,
		Sizer:  templates.NewMediaSizer(a.images, a.prober),
		Logger: a.log,
	})
	if err != nil {
		return err
	}

	settings, err := cmd.settings(a)
	if err != nil {
		return err
	}
	canvas, err := timeline.Dimensions(settings.Resolution, settings.AspectRatio)
	if err != nil {
		return err
	}

	movie := timeline.New(filepath.Base(filepath.Clean(cmd.InputDir)), timeline.WithAssets(res))
	if err := tpl.Build(ctx, movie, templates.Params{InputDir: cmd.InputDir, Canvas: canvas}); err != nil {
		return err
	}
	a.log.Info("Built %d pages from template %s", movie.Len(), tpl.Name())

	return a.render(ctx, movie, &cmd.RenderFlags, !cmd.Compile)
}
