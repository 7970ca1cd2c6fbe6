package audiomux

import (
	"strings"
	"testing"

	"github.com/user/storyshow/pkg/ports"
)

func TestArgs_NoTracks(t *testing.T) {
	args := strings.Join(New().Args("v.mp4", nil, 4, "out.mp4"), " ")
	if strings.Contains(args, "-filter_complex") {
		t.Errorf("no filter graph expected: %s", args)
	}
	if !strings.Contains(args, "-c:v copy -an -t 4.000") {
		t.Errorf("expected a plain stream copy: %s", args)
	}
}

func TestArgs_SingleTrack(t *testing.T) {
	tracks := []ports.AudioTrack{{Path: "voice.mp3", Start: 1.5, End: 3, Volume: 1}}
	args := New().Args("v.mp4", tracks, 5, "out.mp4")
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-i v.mp4 -i voice.mp3") {
		t.Errorf("inputs out of order: %s", joined)
	}
	if !strings.Contains(joined, "[1:a]atrim=0:1.500,asetpts=PTS-STARTPTS,adelay=1500|1500,volume=1[a0]") {
		t.Errorf("unexpected filter: %s", joined)
	}
	if strings.Contains(joined, "amix") {
		t.Errorf("single track must not be mixed: %s", joined)
	}
	if !strings.Contains(joined, "-map [a0]") {
		t.Errorf("expected [a0] to be mapped: %s", joined)
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output must be last")
	}
}

func TestArgs_Mix(t *testing.T) {
	tracks := []ports.AudioTrack{
		{Path: "music.mp3", Start: 0, End: 10, Volume: 0.3},
		{Path: "voice.mp3", Start: 2, End: 4, Volume: 1},
	}
	joined := strings.Join(New().Args("v.mp4", tracks, 10, "out.mp4"), " ")

	for _, want := range []string{
		"volume=0.3[a0]",
		"[2:a]atrim=0:2.000,asetpts=PTS-STARTPTS,adelay=2000|2000,volume=1[a1]",
		"[a0][a1]amix=inputs=2:duration=longest:dropout_transition=0:normalize=0[aout]",
		"-map [aout]",
		"-c:a aac -b:a 192k",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestArgs_MutedTrack(t *testing.T) {
	tracks := []ports.AudioTrack{
		{Path: "music.mp3", Start: 0, End: 10, Volume: 0},
		{Path: "voice.mp3", Start: 2, End: 4, Volume: -1},
	}
	joined := strings.Join(New().Args("v.mp4", tracks, 10, "out.mp4"), " ")

	for _, want := range []string{
		"adelay=0|0,volume=0[a0]",
		"adelay=2000|2000,volume=0[a1]",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if strings.Contains(joined, "volume=1[") {
		t.Errorf("muted tracks must not be raised to full volume: %s", joined)
	}
}
