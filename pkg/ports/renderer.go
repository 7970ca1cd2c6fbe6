package ports

import (
	"image"
	"image/color"
)

// Renderer creates canvases and converts images.
type Renderer interface {
	// CreateCanvas returns a width x height canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes PNG, JPEG, GIF, BMP or WebP data.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes img in the given format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage returns img scaled to width x height.
	ResizeImage(img image.Image, width, height int) image.Image

	// RenderText rasterizes text onto a transparent image sized to fit it.
	RenderText(text string, style TextStyle) (image.Image, error)
}

// Canvas composites frame layers.
type Canvas interface {
	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws img stretched to width x height at (x, y).
	DrawImageScaled(img image.Image, x, y, width, height int)

	// DrawRect fills a rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// ToImage returns the composited frame.
	ToImage() image.Image
}

// TextStyle describes how a text element is rasterized.
type TextStyle struct {
	FontSize float64
	FontPath string // TrueType font file; empty selects the built-in sans font
	Color    color.Color
	Margin   [2]int // Horizontal and vertical padding in pixels
	Align    TextAlign
}

// TextAlign aligns multi-line text.
type TextAlign int

const (
	AlignCenter TextAlign = iota
	AlignLeft
	AlignRight
)

// ImageFormat selects an encoding for EncodeImage.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)
