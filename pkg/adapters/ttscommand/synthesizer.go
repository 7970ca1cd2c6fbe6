// Package ttscommand synthesizes speech by running an external TTS program.
package ttscommand

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/storyshow/pkg/ports"
)

// ErrNoCommand is returned when no program is configured.
var ErrNoCommand = errors.New("ttscommand: no command configured")

// Placeholders substituted in Args.
const (
	PlaceholderText   = "{text}"
	PlaceholderVoice  = "{voice}"
	PlaceholderOutput = "{output}"
)

// Synthesizer runs Command with Args for each line. Arguments may contain
// {text}, {voice} and {output}. When no argument mentions {text}, the text
// is written to the program's stdin.
type Synthesizer struct {
	Command string
	Args    []string
}

// New creates a Synthesizer.
func New(command string, args ...string) *Synthesizer {
	return &Synthesizer{Command: command, Args: args}
}

// Parse splits a command line such as `say -v {voice} -o {output}` on
// whitespace.
func Parse(line string) (*Synthesizer, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	return New(fields[0], fields[1:]...), nil
}

// Expand returns the argument list for one call and whether the text was
// placed on the command line.
func (s *Synthesizer) Expand(text, voice, outputPath string) ([]string, bool) {
	r := strings.NewReplacer(PlaceholderText, text, PlaceholderVoice, voice, PlaceholderOutput, outputPath)
	args := make([]string, len(s.Args))
	inline := false
	for i, a := range s.Args {
		if strings.Contains(a, PlaceholderText) {
			inline = true
		}
		args[i] = r.Replace(a)
	}
	return args, inline
}

// Synthesize runs the program once.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	if s.Command == "" {
		return ErrNoCommand
	}
	args, inline := s.Expand(text, voice, outputPath)

	cmd := exec.CommandContext(ctx, s.Command, args...)
	if !inline {
		cmd.Stdin = strings.NewReader(text)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 512 {
			msg = msg[len(msg)-512:]
		}
		return fmt.Errorf("ttscommand: %s: %w: %s", s.Command, err, msg)
	}
	return nil
}

// Ensure Synthesizer implements ports.VoiceSynthesizer
var _ ports.VoiceSynthesizer = (*Synthesizer)(nil)
