package timeline

import (
	"strings"

	"github.com/user/storyshow/pkg/storyerr"
)

// CanvasSize is a canvas size in pixels.
type CanvasSize struct {
	Width  int
	Height int
}

// resolutions maps a quality tier and aspect ratio to a canvas size.
var resolutions = map[string]map[string]CanvasSize{
	"1080p": {
		"16:9": {1920, 1080},
		"9:16": {1080, 1920},
		"4:3":  {1440, 1080},
		"3:4":  {810, 1080},
		"1:1":  {1080, 1080},
	},
	"720p": {
		"16:9": {1280, 720},
		"9:16": {720, 1280},
		"4:3":  {960, 720},
		"3:4":  {540, 720},
		"1:1":  {720, 720},
	},
	"480p": {
		"16:9": {640, 480},
		"9:16": {480, 640},
		"4:3":  {640, 480},
		"3:4":  {360, 480},
		"1:1":  {480, 480},
	},
}

// Dimensions returns the canvas size for a tier and aspect ratio. An unknown
// aspect ratio falls back to the tier's 16:9 size; an unknown tier is an error.
func Dimensions(resolution, aspect string) (CanvasSize, error) {
	tier, ok := resolutions[strings.ToLower(strings.TrimSpace(resolution))]
	if !ok {
		return CanvasSize{}, storyerr.Configf("resolution", "unknown tier %q (want 1080p, 720p or 480p)", resolution)
	}
	if s, ok := tier[strings.TrimSpace(aspect)]; ok {
		return s, nil
	}
	return tier["16:9"], nil
}
