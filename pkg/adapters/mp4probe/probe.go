// Package mp4probe reads MP4 container metadata without external tools. The
// render pipeline uses it to verify its own output.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/storyshow/pkg/ports"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.MediaProber for MP4 files.
type Prober struct{}

// New creates a new prober.
func New() *Prober {
	return &Prober{}
}

// Probe opens path and inspects its moov box.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.MediaInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Inspect(f)
}

// Inspect reads media info from an MP4 stream. Sample data is not loaded.
func Inspect(r io.ReadSeeker) (ports.MediaInfo, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := file.Moov
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	info := ports.MediaInfo{}
	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		info.Duration = seconds(moov.Mvhd.Duration, moov.Mvhd.Timescale)
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.VideoCodec = sampleEntryCodec(trak)
			if trak.Tkhd != nil {
				info.Width = int(trak.Tkhd.Width >> 16)
				info.Height = int(trak.Tkhd.Height >> 16)
			}
			info.FPS = frameRate(trak)
		case "soun":
			if info.HasAudio {
				continue
			}
			info.HasAudio = true
			info.AudioCodec = sampleEntryCodec(trak)
		}
	}

	if !info.HasVideo {
		return info, ErrNoVideoTrack
	}
	return info, nil
}

func sampleEntryCodec(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if name := codecName(child.Type()); name != "" {
			return name
		}
	}
	return ""
}

// codecName maps a sample entry type to a codec name.
func codecName(boxType string) string {
	switch boxType {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "mp4a":
		return "aac"
	case "Opus":
		return "opus"
	case "ac-3":
		return "ac3"
	}
	return ""
}

// frameRate derives the average rate from the sample count and media duration.
func frameRate(trak *mp4.TrakBox) float64 {
	mdhd := trak.Mdia.Mdhd
	if mdhd == nil || mdhd.Timescale == 0 || mdhd.Duration == 0 {
		return 0
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stts == nil {
		return 0
	}
	var samples uint64
	for _, n := range trak.Mdia.Minf.Stbl.Stts.SampleCount {
		samples += uint64(n)
	}
	return float64(samples) * float64(mdhd.Timescale) / float64(mdhd.Duration)
}

func seconds(duration uint64, timescale uint32) time.Duration {
	return time.Duration(float64(duration) / float64(timescale) * float64(time.Second))
}

var _ ports.MediaProber = (*Prober)(nil)
