// Package project reads declarative movie files. A project is YAML (or JSON,
// which the YAML decoder also accepts) listing pages and their elements;
// Loader maps it onto timeline calls.
package project

import (
	"gopkg.in/yaml.v3"

	"github.com/user/storyshow/pkg/storyerr"
)

// Project is the root of a project file.
type Project struct {
	Title string `yaml:"title"`
	Voice string `yaml:"voice"` // Default voice for voiceover elements
	Pages []Page `yaml:"pages"`
}

// Page is one page of a project file. A zero duration is derived from the
// longest audio element on the page.
type Page struct {
	Name       string    `yaml:"name"`
	Duration   float64   `yaml:"duration"`
	Background string    `yaml:"background"`
	Elements   []Element `yaml:"elements"`
}

// Element is one element of a page. Exactly one of the source fields
// (Image, Video, Text, Color, Audio, Voiceover) must be set.
type Element struct {
	// Sources
	Image     string `yaml:"image"`
	Video     string `yaml:"video"`
	Text      string `yaml:"text"`
	Color     string `yaml:"color"`
	Audio     string `yaml:"audio"`
	Voiceover string `yaml:"voiceover"`

	// Source options
	Loop   bool      `yaml:"loop"`
	Volume *float64  `yaml:"volume"`
	Voice  string    `yaml:"voice"`
	Style  TextStyle `yaml:"style"`

	// Timing, page-relative seconds
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Duration float64 `yaml:"duration"`

	// Geometry
	X        string   `yaml:"x"`
	Y        string   `yaml:"y"`
	Width    float64  `yaml:"width"`
	Height   float64  `yaml:"height"`
	Rotation float64  `yaml:"rotation"`
	Opacity  *float64 `yaml:"opacity"`
	FlipX    bool     `yaml:"flip_x"`
	FlipY    bool     `yaml:"flip_y"`

	Effects []Effect `yaml:"effects"`
}

// TextStyle styles a text element.
type TextStyle struct {
	FontSize float64 `yaml:"font_size"`
	Font     string  `yaml:"font"`
	Color    string  `yaml:"color"`
	Margin   []int   `yaml:"margin"`
	Align    string  `yaml:"align"`
}

// Parse decodes a project file.
func Parse(data []byte) (Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, storyerr.Configf("project", "%v", err)
	}
	return p, nil
}

// sources returns the names of the source fields that are set, in
// declaration order.
func (e Element) sources() []string {
	fields := []struct{ name, value string }{
		{"image", e.Image},
		{"video", e.Video},
		{"text", e.Text},
		{"color", e.Color},
		{"audio", e.Audio},
		{"voiceover", e.Voiceover},
	}
	var set []string
	for _, f := range fields {
		if f.value != "" {
			set = append(set, f.name)
		}
	}
	return set
}

// IsAudio reports whether the element contributes to the soundtrack.
func (e Element) IsAudio() bool {
	return e.Audio != "" || e.Voiceover != ""
}
