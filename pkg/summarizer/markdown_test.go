package summarizer

import (
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Movie: MovieInfo{
			Title:  "Bear Story",
			Filter: "1-2",
			Pages: []PageInfo{
				{Number: 1, Name: "intro", StartSec: 0, EndSec: 2},
				{Number: 2, Name: "forest", StartSec: 2, EndSec: 5.5},
			},
		},
		Timing: TimingInfo{ElapsedMs: 4200},
		Settings: Settings{
			Preset:      "shorts",
			Quality:     "medium",
			AspectRatio: "9:16",
			Resolution:  "1080p",
			FPS:         30,
			CRF:         23,
			Codec:       "H.264",
		},
		Video: VideoInfo{
			OutputPath:   "out/bear.mp4",
			FrameCount:   165,
			DurationMs:   5500,
			FileSize:     1024 * 1024,
			CanvasWidth:  1080,
			CanvasHeight: 1920,
			AudioTracks:  2,
			VideoCodec:   "h264",
			AudioCodec:   "aac",
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Render Summary",
		"Bear Story",
		"| 2 | forest | 2.00s | 5.50s |",
		"shorts",
		"9:16 @ 1080p",
		"H.264",
		"1080x1920",
		"| Frames | 165 |",
		"5.50s",
		"h264 / aac",
		"1.00 MB",
		"Render Time: 4.20s",
		"2024-01-15 10:30:00",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Skipped(t *testing.T) {
	result := NewMarkdownFormatter().Format(&Summary{
		GeneratedAt: time.Now(),
		Movie:       MovieInfo{Title: "Empty", Filter: "9"},
		Video:       VideoInfo{Skipped: true},
	})

	if !strings.Contains(result, "no pages selected") {
		t.Error("expected skipped notice")
	}
	if strings.Contains(result, "| Frames |") {
		t.Error("skipped render should not list frames")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Render Summary": "レンダリング概要",
			"Title":          "タイトル",
			"Frames":         "フレーム数",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	result := formatter.Format(&Summary{
		GeneratedAt: time.Now(),
		Movie:       MovieInfo{Title: "Test"},
	})

	for _, want := range []string{"レンダリング概要", "タイトル", "フレーム数"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(&Summary{GeneratedAt: time.Now()})

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
