package ports

import (
	"image"
)

// DebugSink receives intermediate render artifacts for inspection.
type DebugSink interface {
	Enabled() bool

	// SavePlanJSON stores the resolved timing plan of a render job.
	SavePlanJSON(name string, data []byte) error

	// SaveFrame stores one composited frame.
	SaveFrame(index int, img image.Image) error
}
