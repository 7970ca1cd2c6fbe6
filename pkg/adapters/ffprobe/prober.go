// Package ffprobe reads media metadata with ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/user/storyshow/pkg/adapters/ffmpeg"
	"github.com/user/storyshow/pkg/ports"
)

// Prober implements ports.MediaProber.
type Prober struct{}

// New creates a new prober.
func New() *Prober {
	return &Prober{}
}

// Probe returns duration, geometry and codecs of path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	if path == "" {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe: file path is required")
	}
	out, err := ffmpeg.Probe(ctx,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return Parse(out)
}

// Parse converts ffprobe JSON output to MediaInfo.
func Parse(data []byte) (ports.MediaInfo, error) {
	var probe probeResult
	if err := json.Unmarshal(data, &probe); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := ports.MediaInfo{}
	if dur, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(dur * float64(time.Second))
	}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName
			info.FPS = parseFrameRate(stream.RFrameRate)
		case "audio":
			if info.HasAudio {
				continue
			}
			info.HasAudio = true
			info.AudioCodec = stream.CodecName
		}
	}
	return info, nil
}

// parseFrameRate parses "30000/1001" or "25".
func parseFrameRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

var _ ports.MediaProber = (*Prober)(nil)
