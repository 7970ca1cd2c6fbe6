package composite

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/timeline"
)

// composeFrame draws every clip visible at frame i in Z-order.
func (s *Stage) composeFrame(plan timeline.Plan, assets map[*timeline.Element]*asset, bg color.Color, i int) (image.Image, error) {
	t := plan.FrameTime(i)
	canvasW, canvasH := float64(plan.Width), float64(plan.Height)
	canvas := s.renderer.CreateCanvas(plan.Width, plan.Height, bg)

	for _, clip := range plan.VisibleAt(t) {
		a := assets[clip.Element]
		if a == nil {
			continue
		}
		local := t - clip.Start
		img := a.frameAt(local)
		if img == nil {
			continue
		}

		e := clip.Element
		srcW, srcH := a.size()
		state := e.BaseState(canvasW, canvasH, srcW, srcH)
		state, err := e.Effects.Apply(state, local, effect.Clip{Duration: clip.Duration(), CanvasW: canvasW, CanvasH: canvasH})
		if err != nil {
			return nil, err
		}

		layer, x, y, ok := s.rasterize(img, e.Effects, state, local)
		if !ok {
			continue
		}
		canvas.DrawImage(layer, x, y)
	}

	frame := canvas.ToImage()
	if plan.OutputWidth != plan.Width || plan.OutputHeight != plan.Height {
		frame = resize.Resize(uint(plan.OutputWidth), uint(plan.OutputHeight), frame, resize.Lanczos3)
	}
	return frame, nil
}

// rasterize applies an element state to its source image and returns the
// layer with the canvas position of its top-left corner.
func (s *Stage) rasterize(img image.Image, chain effect.Chain, st effect.State, t float64) (image.Image, int, int, bool) {
	if st.Opacity <= 0 {
		return nil, 0, 0, false
	}
	w, h := int(math.Round(st.W)), int(math.Round(st.H))
	if w < 1 || h < 1 {
		return nil, 0, 0, false
	}

	img = chain.Filter(img, t)
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		img = s.renderer.ResizeImage(img, w, h)
	}
	if st.FlipX || st.FlipY {
		img = effect.Flip(img, st.FlipX, st.FlipY)
	}

	x, y := st.X, st.Y
	if st.Angle != 0 {
		var dx, dy float64
		img, dx, dy = effect.Rotate(img, st.Angle, st.Pivot, st.Resample)
		x += dx
		y += dy
	}
	img = effect.Fade(img, st.Opacity)

	return img, int(math.Round(x)), int(math.Round(y)), true
}
