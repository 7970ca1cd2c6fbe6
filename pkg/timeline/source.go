package timeline

import (
	"image/color"

	"github.com/user/storyshow/pkg/ports"
)

// SourceKind identifies the asset behind an element.
type SourceKind string

const (
	KindImage SourceKind = "image"
	KindVideo SourceKind = "video"
	KindText  SourceKind = "text"
	KindColor SourceKind = "color"
	KindAudio SourceKind = "audio"
)

// Source is the closed set of assets an element can render.
type Source interface {
	Kind() SourceKind
	source()
}

// IsAudio reports whether src belongs on the audio track.
func IsAudio(src Source) bool {
	return src.Kind() == KindAudio
}

// ImageSource is a still image file.
type ImageSource struct {
	Path string
}

// Image references an image asset by logical name or path.
func Image(path string) *ImageSource { return &ImageSource{Path: path} }

func (s *ImageSource) Kind() SourceKind { return KindImage }
func (s *ImageSource) source() {}

// VideoSource is a video file. With Loop set, it repeats to fill the
// element's lifetime; otherwise the last frame is held.
type VideoSource struct {
	Path string
	Loop bool
}

// Video references a video asset.
func Video(path string, loop bool) *VideoSource { return &VideoSource{Path: path, Loop: loop} }

func (s *VideoSource) Kind() SourceKind { return KindVideo }
func (s *VideoSource) source() {}

// TextSource is a line or block of text.
type TextSource struct {
	Text  string
	Style ports.TextStyle
}

// Text renders s with style. A zero font size defaults to 80 and a nil color
// to black.
func Text(s string, style ports.TextStyle) *TextSource {
	if style.FontSize <= 0 {
		style.FontSize = 80
	}
	if style.Color == nil {
		style.Color = color.Black
	}
	return &TextSource{Text: s, Style: style}
}

func (s *TextSource) Kind() SourceKind { return KindText }
func (s *TextSource) source() {}

// ColorSource is a solid rectangle.
type ColorSource struct {
	Color  color.RGBA
	Width  int
	Height int
}

// Color creates a w x h rectangle filled with c.
func Color(c color.Color, w, h int) *ColorSource {
	return &ColorSource{Color: color.RGBAModel.Convert(c).(color.RGBA), Width: w, Height: h}
}

func (s *ColorSource) Kind() SourceKind { return KindColor }
func (s *ColorSource) source() {}

// AudioSource is an audio file mixed into the soundtrack.
type AudioSource struct {
	Path   string
	Volume float64
}

// Audio references an audio asset at full volume.
func Audio(path string) *AudioSource { return &AudioSource{Path: path, Volume: 1} }

// WithVolume returns a copy of s scaled to v times the source level.
// Negative values mute the track.
func (s *AudioSource) WithVolume(v float64) *AudioSource {
	c := *s
	if v < 0 {
		v = 0
	}
	c.Volume = v
	return &c
}

func (s *AudioSource) Kind() SourceKind { return KindAudio }
func (s *AudioSource) source() {}

// assetPath returns the file referenced by src, if any.
func assetPath(src Source) (string, bool) {
	switch s := src.(type) {
	case *ImageSource:
		return s.Path, true
	case *VideoSource:
		return s.Path, true
	case *AudioSource:
		return s.Path, true
	}
	return "", false
}

// withPath returns a copy of src pointing at path.
func withPath(src Source, path string) Source {
	switch s := src.(type) {
	case *ImageSource:
		c := *s
		c.Path = path
		return &c
	case *VideoSource:
		c := *s
		c.Path = path
		return &c
	case *AudioSource:
		c := *s
		c.Path = path
		return &c
	}
	return src
}
