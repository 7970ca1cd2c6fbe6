// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"strings"
	"sync"

	_ "image/gif"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/user/storyshow/pkg/ports"
)

// lineSpacing is the multiple of the font height between text baselines.
const lineSpacing = 1.2

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: make(map[string]*truetype.Font)}
}

// CreateCanvas creates a new drawing canvas. A nil bg leaves it transparent.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc}
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or WebP data.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// RenderText rasterizes text onto a transparent image just large enough to
// hold it plus the style margin. Lines are split on "\n".
func (r *Renderer) RenderText(text string, style ports.TextStyle) (image.Image, error) {
	f, err := r.font(style.FontPath)
	if err != nil {
		return nil, err
	}
	size := style.FontSize
	if size <= 0 {
		size = 80
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	defer face.Close()

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	lines := strings.Split(text, "\n")
	lineHeight := measure.FontHeight() * lineSpacing
	textW := 0.0
	for _, line := range lines {
		if w, _ := measure.MeasureString(line); w > textW {
			textW = w
		}
	}
	textH := lineHeight * float64(len(lines))

	mx, my := float64(style.Margin[0]), float64(style.Margin[1])
	w := int(math.Ceil(textW + 2*mx))
	h := int(math.Ceil(textH + 2*my))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)
	col := style.Color
	if col == nil {
		col = color.Black
	}
	dc.SetColor(col)

	x, ax := mx+textW/2, 0.5
	switch style.Align {
	case ports.AlignLeft:
		x, ax = mx, 0
	case ports.AlignRight:
		x, ax = mx+textW, 1
	}
	for i, line := range lines {
		y := my + lineHeight*(float64(i)+0.5)
		dc.DrawStringAnchored(line, x, y, ax, 0.5)
	}
	return dc.Image(), nil
}

// font returns the parsed TrueType font at path, or Go Regular when path is
// empty. Parsed fonts are cached.
func (r *Renderer) font(path string) (*truetype.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[path]; ok {
		return f, nil
	}

	data := goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	r.fonts[path] = f
	return f, nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageScaled draws an image scaled to the specified dimensions.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	c.dc.Push()
	defer c.dc.Pop()

	bounds := img.Bounds()
	scaleX := float64(width) / float64(bounds.Dx())
	scaleY := float64(height) / float64(bounds.Dy())

	c.dc.Translate(float64(x), float64(y))
	c.dc.Scale(scaleX, scaleY)
	c.dc.DrawImage(img, 0, 0)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
