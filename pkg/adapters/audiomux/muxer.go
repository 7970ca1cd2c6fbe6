// Package audiomux mixes audio clips into a rendered video with ffmpeg.
package audiomux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/storyshow/pkg/adapters/ffmpeg"
	"github.com/user/storyshow/pkg/ports"
)

// Muxer implements ports.AudioMuxer.
type Muxer struct {
	// Bitrate is the AAC bitrate in kbps.
	Bitrate int
}

// New creates a muxer encoding AAC at 192 kbps.
func New() *Muxer {
	return &Muxer{Bitrate: 192}
}

// Mux copies the video stream of videoPath and adds the mixed tracks.
func (m *Muxer) Mux(ctx context.Context, videoPath string, tracks []ports.AudioTrack, duration float64, outputPath string) error {
	if _, err := ffmpeg.Run(ctx, m.Args(videoPath, tracks, duration, outputPath)...); err != nil {
		return fmt.Errorf("mux audio: %w", err)
	}
	return nil
}

// Args builds the ffmpeg command line. Each track is trimmed to its span,
// delayed to its start and scaled by its volume; the results are mixed
// without normalization so a lone voice keeps its level. A volume of 0
// mutes the track.
func (m *Muxer) Args(videoPath string, tracks []ports.AudioTrack, duration float64, outputPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", videoPath}
	for _, t := range tracks {
		args = append(args, "-i", t.Path)
	}

	if len(tracks) == 0 {
		return append(args, "-map", "0:v", "-c:v", "copy", "-an", "-t", seconds(duration), "-movflags", "+faststart", outputPath)
	}

	var filters, labels []string
	for i, t := range tracks {
		span := t.End - t.Start
		delay := int(t.Start * 1000)
		vol := t.Volume
		if vol < 0 {
			vol = 0
		}
		label := fmt.Sprintf("a%d", i)
		filters = append(filters, fmt.Sprintf("[%d:a]atrim=0:%s,asetpts=PTS-STARTPTS,adelay=%d|%d,volume=%s[%s]",
			i+1, seconds(span), delay, delay, strconv.FormatFloat(vol, 'f', -1, 64), label))
		labels = append(labels, "["+label+"]")
	}
	out := "[a0]"
	if len(tracks) > 1 {
		filters = append(filters, fmt.Sprintf("%samix=inputs=%d:duration=longest:dropout_transition=0:normalize=0[aout]",
			strings.Join(labels, ""), len(tracks)))
		out = "[aout]"
	}

	bitrate := m.Bitrate
	if bitrate <= 0 {
		bitrate = 192
	}
	return append(args,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", "0:v",
		"-map", out,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", bitrate),
		"-t", seconds(duration),
		"-movflags", "+faststart",
		outputPath,
	)
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

var _ ports.AudioMuxer = (*Muxer)(nil)
