package timeline

import (
	"math"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/storyerr"
)

// Element is one asset placed on a page. Start and End are page-relative
// seconds; End == 0 means "until the end of the page".
type Element struct {
	Source   Source
	Start    float64
	End      float64
	Position Position
	Width    float64
	Height   float64
	Rotation float64
	Opacity  float64
	FlipX    bool
	FlipY    bool
	Effects  effect.Chain

	// Fill stretches the element over the whole canvas (backgrounds).
	Fill bool

	duration float64
}

// ElemOption configures an Element.
type ElemOption func(*Element)

// Start sets the page-relative start time. Negative values are clamped to 0.
func Start(s float64) ElemOption { return func(e *Element) { e.Start = s } }

// End sets the page-relative end time.
func End(s float64) ElemOption { return func(e *Element) { e.End = s } }

// Duration sets End relative to Start, regardless of option order.
func Duration(d float64) ElemOption { return func(e *Element) { e.duration = d } }

// Place sets the element's position.
func Place(p Position) ElemOption { return func(e *Element) { e.Position = p } }

// AtXY places the top-left corner at (x, y).
func AtXY(x, y float64) ElemOption { return Place(At(x, y)) }

// Size sets the drawn size. A zero dimension follows the source aspect ratio.
func Size(w, h float64) ElemOption {
	return func(e *Element) {
		e.Width = w
		e.Height = h
	}
}

// Rotate sets a static rotation in degrees, counter-clockwise.
func Rotate(deg float64) ElemOption { return func(e *Element) { e.Rotation = deg } }

// Opacity sets the static opacity in [0, 1].
func Opacity(o float64) ElemOption { return func(e *Element) { e.Opacity = o } }

// Flip mirrors the element horizontally and/or vertically.
func Flip(x, y bool) ElemOption {
	return func(e *Element) {
		e.FlipX = x
		e.FlipY = y
	}
}

// Effects appends effects, applied in the given order.
func Effects(effs ...effect.Effect) ElemOption {
	return func(e *Element) { e.Effects = append(e.Effects, effs...) }
}

func newElement(src Source, opts []ElemOption) (*Element, error) {
	e := &Element{Source: src, Opacity: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.duration < 0 {
		return nil, storyerr.Configf("duration", "must be >= 0, got %v", e.duration)
	}
	if e.Width < 0 || e.Height < 0 {
		return nil, storyerr.Configf("size", "must be >= 0, got %vx%v", e.Width, e.Height)
	}
	if e.Opacity < 0 || e.Opacity > 1 {
		return nil, storyerr.Configf("opacity", "must be in [0,1], got %v", e.Opacity)
	}
	if e.Start < 0 {
		e.Start = 0
	}
	if e.duration > 0 {
		e.End = e.Start + e.duration
	}
	// A non-positive interval means "fill the page".
	if e.End != 0 && e.End <= e.Start {
		e.End = 0
	}
	return e, nil
}

// Span returns the absolute interval of the element on a page starting at
// pageStart with the given duration. The result is empty when the element
// starts at or after the page end.
func (e *Element) Span(pageStart, pageDuration float64) (start, end float64) {
	pageEnd := pageStart + pageDuration
	start = math.Min(pageStart+e.Start, pageEnd)
	end = pageEnd
	if e.End > 0 {
		end = math.Min(pageStart+e.End, pageEnd)
	}
	if end < start {
		end = start
	}
	return start, end
}

// DrawSize returns the drawn size for a source whose intrinsic size is
// srcW x srcH.
func (e *Element) DrawSize(canvasW, canvasH, srcW, srcH float64) (w, h float64) {
	switch {
	case e.Fill:
		return canvasW, canvasH
	case e.Width > 0 && e.Height > 0:
		return e.Width, e.Height
	case e.Width > 0 && srcW > 0:
		return e.Width, srcH * e.Width / srcW
	case e.Height > 0 && srcH > 0:
		return srcW * e.Height / srcH, e.Height
	}
	return srcW, srcH
}

// BaseState is the element's geometry before effects run.
func (e *Element) BaseState(canvasW, canvasH, srcW, srcH float64) effect.State {
	w, h := e.DrawSize(canvasW, canvasH, srcW, srcH)
	x, y := 0.0, 0.0
	if !e.Fill {
		x, y = e.Position.Resolve(canvasW, canvasH, w, h)
	}
	s := effect.NewState(x, y, w, h)
	s.Angle = e.Rotation
	s.Opacity = e.Opacity
	s.FlipX = e.FlipX
	s.FlipY = e.FlipY
	return s
}
