package ffprobe

import (
	"math"
	"testing"
	"time"
)

const sample = `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1080, "height": 1920, "r_frame_rate": "30000/1001"},
    {"codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"duration": "12.500000"}
}`

func TestParse(t *testing.T) {
	info, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Duration != 12500*time.Millisecond {
		t.Errorf("duration: got %v", info.Duration)
	}
	if !info.HasVideo || info.Width != 1080 || info.Height != 1920 || info.VideoCodec != "h264" {
		t.Errorf("video stream not parsed: %+v", info)
	}
	if math.Abs(info.FPS-29.97) > 0.01 {
		t.Errorf("fps: got %v", info.FPS)
	}
	if !info.HasAudio || info.AudioCodec != "aac" {
		t.Errorf("audio stream not parsed: %+v", info)
	}
}

func TestParse_AudioOnly(t *testing.T) {
	info, err := Parse([]byte(`{"streams":[{"codec_type":"audio","codec_name":"mp3"}],"format":{"duration":"3.2"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.HasVideo || !info.HasAudio {
		t.Errorf("expected audio only: %+v", info)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.in); got != tt.want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
