package templates

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/storyshow/pkg/adapters/logger"
	"github.com/user/storyshow/pkg/mocks"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

var hd = timeline.CanvasSize{Width: 1920, Height: 1080}

type fixedSizer map[string][2]int

func (s fixedSizer) Size(_ context.Context, path string) (int, int, error) {
	if wh, ok := s[path]; ok {
		return wh[0], wh[1], nil
	}
	return 0, 0, errors.New("unknown media " + path)
}

func newDeps(fs *mocks.FileSystem, names ...string) Deps {
	assets := &mocks.AssetResolver{Assets: map[string]string{}}
	sizer := fixedSizer{}
	for _, n := range names {
		assets.Assets[n] = "/in/" + n
		sizer["/in/"+n] = [2]int{200, 300}
	}
	return Deps{FS: fs, Assets: assets, Sizer: sizer, Logger: logger.NewNoop()}
}

func TestNamesAndLookup(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "balloonpop" || names[1] != "brownbear" {
		t.Errorf("unexpected names %v", names)
	}

	tpl, err := Lookup("brownbear", Deps{})
	if err != nil || tpl.Name() != "brownbear" {
		t.Errorf("Lookup(brownbear) = %v, %v", tpl, err)
	}

	if _, err := Lookup("sharks", Deps{}); !errors.Is(err, storyerr.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    int
		wantErr bool
	}{
		{
			name:  "json",
			files: map[string]string{"in/config.json": `{"balloons_count": 7, "objects": [{"object": "cat.png"}]}`},
			want:  7,
		},
		{
			name:  "yaml fallback",
			files: map[string]string{"in/config.yaml": "balloons_count: 9\n"},
			want:  9,
		},
		{
			name:    "missing",
			files:   map[string]string{},
			wantErr: true,
		},
		{
			name:    "malformed",
			files:   map[string]string{"in/config.json": `{"balloons_count": [}`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			for p, data := range tt.files {
				fs.WriteFile(p, []byte(data))
			}

			var cfg BalloonPopConfig
			err := LoadConfig(fs, "in", &cfg)
			if tt.wantErr {
				if !errors.Is(err, storyerr.ErrConfig) {
					t.Errorf("expected ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.BalloonsCount != tt.want {
				t.Errorf("expected balloons_count %d, got %d", tt.want, cfg.BalloonsCount)
			}
		})
	}
}

func TestMediaSizer(t *testing.T) {
	images := &mocks.ImageLoader{LoadImageFunc: func(path string) (image.Image, error) {
		if path == "/a/still.png" {
			return mocks.Solid(40, 30, color.White), nil
		}
		return nil, errors.New("not an image")
	}}
	prober := &mocks.MediaProber{Infos: map[string]ports.MediaInfo{
		"/a/clip.mp4":  {Width: 640, Height: 360, HasVideo: true},
		"/a/sound.mp3": {HasAudio: true},
	}}
	s := NewMediaSizer(images, prober)

	tests := []struct {
		path    string
		w, h    int
		wantErr bool
	}{
		{path: "/a/still.png", w: 40, h: 30},
		{path: "/a/clip.mp4", w: 640, h: 360},
		{path: "/a/sound.mp3", wantErr: true},
		{path: "/a/missing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, h, err := s.Size(context.Background(), tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil || w != tt.w || h != tt.h {
				t.Errorf("Size = %d, %d, %v; want %d, %d", w, h, err, tt.w, tt.h)
			}
		})
	}
}
