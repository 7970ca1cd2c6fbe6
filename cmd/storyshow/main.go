// Package main provides the CLI entry point for storyshow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/storyshow/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render    RenderCmd    `cmd:"" help:"Render a project file (YAML or JSON) to MP4."`
	Template  TemplateCmd  `cmd:"" help:"Render a built-in template from an input directory."`
	Voiceover VoiceoverCmd `cmd:"" help:"Synthesize a voiceover through the voice cache."`
	GC        GCCmd        `cmd:"" name:"gc" help:"Remove stale job directories from the workspace."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("storyshow"),
		kong.Description("Compose short animated story videos from pages of images, video, text and sound."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("storyshow version %s", version))
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
