package effect

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/user/storyshow/pkg/storyerr"
)

// Resample selects the interpolation used for general rotation.
type Resample int

const (
	Bicubic Resample = iota
	Bilinear
	Nearest
)

// ParseResample maps a filter name to a Resample.
func ParseResample(name string) (Resample, error) {
	switch strings.ToLower(name) {
	case "", "bicubic":
		return Bicubic, nil
	case "bilinear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	}
	return Bicubic, storyerr.Configf("filter", "unknown resample filter %q (want nearest, bilinear or bicubic)", name)
}

func (r Resample) String() string {
	switch r {
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest"
	default:
		return "bicubic"
	}
}

func (r Resample) interpolator() draw.Interpolator {
	switch r {
	case Bilinear:
		return draw.BiLinear
	case Nearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Rotate turns img counter-clockwise by deg degrees.
//
// Without a pivot the result is expanded to hold the whole rotated image and
// (dx, dy) is the offset of its top-left corner relative to the original
// top-left, keeping both centers aligned. Quarter turns take a lossless
// transpose path. With a pivot the canvas keeps its size and dx, dy are 0.
func Rotate(img image.Image, deg float64, pivot *Point, r Resample) (out image.Image, dx, dy float64) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	if pivot == nil {
		if quarter, ok := quarterTurns(deg); ok {
			switch quarter {
			case 0:
				return img, 0, 0
			case 1:
				out = imaging.Rotate90(img)
			case 2:
				out = imaging.Rotate180(img)
			default:
				out = imaging.Rotate270(img)
			}
			ob := out.Bounds()
			return out, (w - float64(ob.Dx())) / 2, (h - float64(ob.Dy())) / 2
		}
	}

	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	var cx, cy, ncx, ncy float64
	var nw, nh int
	if pivot != nil {
		nw, nh = b.Dx(), b.Dy()
		cx, cy = float64(b.Min.X)+pivot.X, float64(b.Min.Y)+pivot.Y
		ncx, ncy = pivot.X, pivot.Y
	} else {
		nw = int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin)))
		nh = int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos)))
		cx, cy = float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
		ncx, ncy = float64(nw)/2, float64(nh)/2
		dx, dy = (w-float64(nw))/2, (h-float64(nh))/2
	}

	// Source to destination: dst = R(src - c) + c'.
	s2d := f64.Aff3{
		cos, sin, ncx - (cos*cx + sin*cy),
		-sin, cos, ncy - (-sin*cx + cos*cy),
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	r.interpolator().Transform(dst, s2d, img, b, draw.Over, nil)
	return dst, dx, dy
}

// quarterTurns reports whether deg is a multiple of 90 and how many
// counter-clockwise quarter turns it amounts to.
func quarterTurns(deg float64) (int, bool) {
	q := deg / 90
	rq := math.Round(q)
	if math.Abs(q-rq) > 1e-9 {
		return 0, false
	}
	n := int(rq) % 4
	if n < 0 {
		n += 4
	}
	return n, true
}

// Flip mirrors img horizontally and/or vertically.
func Flip(img image.Image, x, y bool) image.Image {
	if x {
		img = imaging.FlipH(img)
	}
	if y {
		img = imaging.FlipV(img)
	}
	return img
}

// Fade multiplies the alpha channel of img by opacity.
func Fade(img image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return img
	}
	out := imaging.Clone(img)
	if opacity < 0 {
		opacity = 0
	}
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(math.Round(float64(out.Pix[i]) * opacity))
	}
	return out
}
