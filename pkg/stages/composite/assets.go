package composite

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/user/storyshow/pkg/timeline"
)

// asset is the decoded pixel source of one element.
type asset struct {
	still  image.Image
	frames []image.Image
	fps    float64
	loop   bool
}

// size returns the intrinsic size of the source.
func (a *asset) size() (float64, float64) {
	img := a.still
	if img == nil && len(a.frames) > 0 {
		img = a.frames[0]
	}
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// frameAt returns the image to show at local time t. Non-looping videos hold
// their last frame.
func (a *asset) frameAt(t float64) image.Image {
	if a.still != nil {
		return a.still
	}
	n := len(a.frames)
	if n == 0 {
		return nil
	}
	idx := int(math.Floor(t*a.fps + 1e-9))
	if idx < 0 {
		idx = 0
	}
	if a.loop {
		idx %= n
	} else if idx >= n {
		idx = n - 1
	}
	return a.frames[idx]
}

// videoKey identifies one decoding of a video file.
type videoKey struct {
	path string
	w, h int
}

// loadAssets decodes every source used by the plan's video clips. Image
// files shared between elements are decoded once, as are videos shared at
// the same size. A video is decoded only as far as its longest clip plays.
func (s *Stage) loadAssets(ctx context.Context, plan timeline.Plan) (map[*timeline.Element]*asset, error) {
	assets := make(map[*timeline.Element]*asset, len(plan.Video))
	stills := make(map[string]image.Image)
	videos := make(map[videoKey][]image.Image)
	limits := videoLimits(plan)

	for _, clip := range plan.Video {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e := clip.Element
		if _, ok := assets[e]; ok {
			continue
		}

		var a *asset
		switch src := e.Source.(type) {
		case *timeline.ImageSource:
			img, ok := stills[src.Path]
			if !ok {
				var err error
				if img, err = s.images.LoadImage(src.Path); err != nil {
					return nil, fmt.Errorf("load image %s: %w", src.Path, err)
				}
				stills[src.Path] = img
			}
			a = &asset{still: img}

		case *timeline.VideoSource:
			w, h := videoDecodeSize(e, plan)
			key := videoKey{src.Path, w, h}
			images, ok := videos[key]
			if !ok {
				frames, err := s.decoder.DecodeFrames(ctx, src.Path, plan.FPS, w, h, limits[key])
				if err != nil {
					return nil, fmt.Errorf("decode video %s: %w", src.Path, err)
				}
				if len(frames) == 0 {
					return nil, fmt.Errorf("decode video %s: no frames", src.Path)
				}
				images = make([]image.Image, len(frames))
				for i, f := range frames {
					images[i] = f.Image
				}
				videos[key] = images
			}
			a = &asset{frames: images, fps: plan.FPS, loop: src.Loop}

		case *timeline.TextSource:
			img, err := s.renderer.RenderText(src.Text, src.Style)
			if err != nil {
				return nil, fmt.Errorf("render text %q: %w", src.Text, err)
			}
			a = &asset{still: img}

		case *timeline.ColorSource:
			w, h := src.Width, src.Height
			if e.Fill || w <= 0 || h <= 0 {
				w, h = plan.Width, plan.Height
			}
			img := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.Draw(img, img.Bounds(), image.NewUniform(src.Color), image.Point{}, draw.Src)
			a = &asset{still: img}

		default:
			return nil, fmt.Errorf("unsupported source %s", e.Source.Kind())
		}
		assets[e] = a
	}

	s.logger.Debug("Loaded %d sources (%d distinct images)", len(assets), len(stills))
	return assets, nil
}

// videoLimits returns, per decoding, the longest span any clip shows it plus
// one frame. Later frames are never drawn.
func videoLimits(plan timeline.Plan) map[videoKey]float64 {
	limits := make(map[videoKey]float64)
	for _, clip := range plan.Video {
		src, ok := clip.Element.Source.(*timeline.VideoSource)
		if !ok {
			continue
		}
		w, h := videoDecodeSize(clip.Element, plan)
		key := videoKey{src.Path, w, h}
		span := clip.Duration() + 1/plan.FPS
		if span > limits[key] {
			limits[key] = span
		}
	}
	return limits
}

// videoDecodeSize asks the decoder for the final size when it is known up
// front, so frames are scaled once by ffmpeg instead of per frame.
func videoDecodeSize(e *timeline.Element, plan timeline.Plan) (int, int) {
	if e.Fill {
		return plan.Width, plan.Height
	}
	if e.Width > 0 && e.Height > 0 {
		return int(math.Round(e.Width)), int(math.Round(e.Height))
	}
	return 0, 0
}
