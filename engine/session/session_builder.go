package session

import (
	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
)

// SessionBuilderOption is a functional option applied to a session during construction via NewSession.
type SessionBuilderOption func(*sessionImpl)

// WithDefaultProgram uses p instead of linking the built-in program. The session does not
// delete a program it was given.
//
// Parameters:
//   - p: the default program
//
// Returns:
//   - SessionBuilderOption: a function that sets the default program
func WithDefaultProgram(p device.Program) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.program = p
	}
}

// WithCamera uses cam as the session's camera state.
//
// Parameters:
//   - cam: the camera state
//
// Returns:
//   - SessionBuilderOption: a function that sets the camera
func WithCamera(cam *camera.State) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.cam = cam
	}
}

// WithDrawables uses drawables as the initial list instead of building the scene.
// The session takes ownership and releases them when they are replaced.
//
// Parameters:
//   - drawables: the initial drawables
//
// Returns:
//   - SessionBuilderOption: a function that sets the drawables
func WithDrawables(drawables ...scene.Drawable) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.drawables = drawables
		s.hasDrawables = true
	}
}

// WithScene builds the named drawables from reg as the initial list.
//
// Parameters:
//   - reg: the drawable registry
//   - names: drawable names in draw order
//
// Returns:
//   - SessionBuilderOption: a function that sets the scene
func WithScene(reg scene.Registry, names []string) SessionBuilderOption {
	return func(s *sessionImpl) {
		if reg != nil {
			s.registry = reg
		}
		if len(names) > 0 {
			s.names = names
		}
	}
}

// WithProjection sets the mono projection. Non-positive values keep the defaults
// (45 degrees, near 1, far 2000).
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees
//   - near, far: clip planes
//
// Returns:
//   - SessionBuilderOption: a function that sets the projection
func WithProjection(fovDegrees, near, far float32) SessionBuilderOption {
	return func(s *sessionImpl) {
		if fovDegrees > 0 {
			s.fovY = fovDegrees
		}
		if near > 0 {
			s.near = near
		}
		if far > s.near {
			s.far = far
		}
	}
}

// WithQueueSize sets the capacity of the pushed update queue.
func WithQueueSize(n int) SessionBuilderOption {
	return func(s *sessionImpl) {
		if n > 0 {
			s.queueSize = n
		}
	}
}
