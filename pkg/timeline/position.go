package timeline

import (
	"strconv"
	"strings"

	"github.com/user/storyshow/pkg/effect"
	"github.com/user/storyshow/pkg/storyerr"
)

// Anchor places an element along one axis.
type Anchor int

const (
	// Absolute uses Coord.Value as the pixel offset of the element's edge.
	Absolute Anchor = iota
	// AlignStart pins the element to the left or top edge.
	AlignStart
	// AlignCenter centers the element on the canvas.
	AlignCenter
	// AlignEnd pins the element to the right or bottom edge.
	AlignEnd
)

// Coord is one axis of a Position.
type Coord struct {
	Anchor Anchor
	Value  float64
}

// Position is an element's placement on the canvas.
type Position struct {
	X Coord
	Y Coord
}

// At places the top-left corner at (x, y).
func At(x, y float64) Position {
	return Position{X: Coord{Value: x}, Y: Coord{Value: y}}
}

// Centered centers an element on both axes.
func Centered() Position {
	return Position{X: Coord{Anchor: AlignCenter}, Y: Coord{Anchor: AlignCenter}}
}

// ParseCoord parses a named anchor ("center", "left"/"top", "right"/"bottom")
// or a number.
func ParseCoord(s string) (Coord, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return Coord{Anchor: AlignCenter}, nil
	case "left", "top":
		return Coord{Anchor: AlignStart}, nil
	case "right", "bottom":
		return Coord{Anchor: AlignEnd}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Coord{}, storyerr.Configf("position", "unknown anchor %q", s)
	}
	return Coord{Value: v}, nil
}

// ParsePosition parses both axes, e.g. ("center", "880").
func ParsePosition(x, y string) (Position, error) {
	cx, err := ParseCoord(x)
	if err != nil {
		return Position{}, err
	}
	cy, err := ParseCoord(y)
	if err != nil {
		return Position{}, err
	}
	return Position{X: cx, Y: cy}, nil
}

// Resolve returns the top-left corner of a w x h element on a canvas.
func (p Position) Resolve(canvasW, canvasH, w, h float64) (x, y float64) {
	return p.X.resolve(canvasW, w), p.Y.resolve(canvasH, h)
}

func (c Coord) resolve(extent, size float64) float64 {
	switch c.Anchor {
	case AlignStart:
		return 0
	case AlignCenter:
		return (extent - size) / 2
	case AlignEnd:
		return extent - size
	}
	return c.Value
}

// AnchorCenter returns the top-left corner that centers a w x h box inside
// the W x H region whose top-left corner is (x, y).
func AnchorCenter(x, y, W, H, w, h float64) effect.Point {
	return effect.Point{X: x + (W-w)/2, Y: y + (H-h)/2}
}
