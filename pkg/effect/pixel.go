package effect

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Blur applies a Gaussian blur with a fixed sigma to every frame.
type Blur struct {
	Sigma float64
}

// NewBlur validates sigma.
func NewBlur(sigma float64) (*Blur, error) {
	if err := positive("sigma", sigma); err != nil {
		return nil, err
	}
	return &Blur{Sigma: sigma}, nil
}

func (e *Blur) Name() string { return "blur" }
func (e *Blur) NeedsDuration() bool { return false }
func (e *Blur) sealed() {}

func (e *Blur) Transform(s State, _ float64, _ Clip) State { return s }

func (e *Blur) Filter(img image.Image, _ float64) image.Image {
	return imaging.Blur(img, e.Sigma)
}

// RemoveColor makes every pixel whose RGB equals Color fully transparent.
type RemoveColor struct {
	Color color.NRGBA
}

// NewRemoveColor keys out the RGB components of c.
func NewRemoveColor(c color.Color) *RemoveColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &RemoveColor{Color: n}
}

func (e *RemoveColor) Name() string { return "remove_color" }
func (e *RemoveColor) NeedsDuration() bool { return false }
func (e *RemoveColor) sealed() {}

func (e *RemoveColor) Transform(s State, _ float64, _ Clip) State { return s }

func (e *RemoveColor) Filter(img image.Image, _ float64) image.Image {
	out := imaging.Clone(img)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i] == e.Color.R && out.Pix[i+1] == e.Color.G && out.Pix[i+2] == e.Color.B {
			out.Pix[i+3] = 0
		}
	}
	return out
}

var (
	_ PixelFilter = (*Blur)(nil)
	_ PixelFilter = (*RemoveColor)(nil)
)
