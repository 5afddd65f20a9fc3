package scene

import (
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is one renderable object: a set of GPU buffers plus optional shader and motion.
type Drawable struct {
	// Name identifies the drawable in logs and registries.
	Name string

	// Position holds 3 floats per vertex.
	Position device.Buffer
	// Normal holds 3 floats per vertex.
	Normal device.Buffer
	// Color holds 4 floats per vertex.
	Color device.Buffer
	// Index holds uint16 triangle indices.
	Index device.Buffer
	// IndexCount is the number of indices drawn.
	IndexCount int

	// Program overrides the session's default program when non-zero.
	Program device.Program

	// Rotation is the angular rate in radians per second about X, Y and Z.
	// nil means the drawable does not animate.
	Rotation *mgl32.Vec3

	// Orientation is a fixed correction in radians about X, Y and Z, applied only
	// when Rotation is nil.
	Orientation *mgl32.Vec3
}

// Buffers returns every buffer handle owned by the drawable.
func (d Drawable) Buffers() []device.Buffer {
	return []device.Buffer{d.Position, d.Normal, d.Color, d.Index}
}

// DrawableFactory builds a Drawable on a device.
type DrawableFactory func(b device.Builder) (Drawable, error)

// Registry maps drawable names to their factories.
type Registry map[string]DrawableFactory
