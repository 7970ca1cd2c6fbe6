package main

import (
	"fmt"

	"github.com/user/storyshow/pkg/storyerr"
)

// VoiceoverCmd synthesizes speech through the voice cache.
type VoiceoverCmd struct {
	GlobalFlags `embed:""`

	Text   string  `arg:"" help:"Text to speak."`
	Output string  `short:"o" help:"Copy the audio here (default: print the cached path)."`
	Voice  *string `short:"v" help:"Voice name (overrides the config file)."`
}

// Run executes the voiceover command.
func (cmd *VoiceoverCmd) Run() error {
	a, err := cmd.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(a.log)
	defer cancel()

	cache, err := a.voices()
	if err != nil {
		return err
	}
	if cache == nil {
		return storyerr.Configf("voice.command", "no TTS command configured")
	}

	voice := a.cfg.Voice.Voice
	if cmd.Voice != nil {
		voice = *cmd.Voice
	}

	if cmd.Output != "" {
		if err := cache.Synthesize(ctx, cmd.Text, voice, cmd.Output); err != nil {
			return err
		}
		a.log.Info("Output saved to %s", cmd.Output)
		return nil
	}

	path, err := cache.Path(ctx, cmd.Text, voice)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
