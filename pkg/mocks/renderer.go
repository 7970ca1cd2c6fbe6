package mocks

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/user/storyshow/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
	RenderTextFunc   func(text string, style ports.TextStyle) (image.Image, error)

	// Canvases records every canvas handed out by CreateCanvas.
	Canvases []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := NewCanvas(width, height, bg)
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) RenderText(text string, style ports.TextStyle) (image.Image, error) {
	if m.RenderTextFunc != nil {
		return m.RenderTextFunc(text, style)
	}
	return image.NewRGBA(image.Rect(0, 0, 10*len(text), int(style.FontSize))), nil
}

// CanvasCount returns the number of canvases created so far.
func (m *Renderer) CanvasCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Canvases)
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawCall records one DrawImage call.
type DrawCall struct {
	X, Y          int
	Width, Height int
	Image         image.Image
}

// Canvas is a mock implementation of ports.Canvas that records draws and
// keeps a real RGBA backing image.
type Canvas struct {
	img   *image.RGBA
	Draws []DrawCall
}

// NewCanvas creates a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Canvas{img: img}
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	m.Draws = append(m.Draws, DrawCall{X: x, Y: y, Width: b.Dx(), Height: b.Dy(), Image: img})
	draw.Draw(m.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.Draws = append(m.Draws, DrawCall{X: x, Y: y, Width: width, Height: height, Image: img})
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	draw.Draw(m.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Over)
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
