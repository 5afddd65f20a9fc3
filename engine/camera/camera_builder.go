package camera

import "github.com/go-gl/mathgl/mgl32"

// StateBuilderOption is a functional option for configuring a State.
type StateBuilderOption func(*State)

// WithViewPosition sets the initial eye position.
//
// Parameters:
//   - x, y, z: eye position in world space
//
// Returns:
//   - StateBuilderOption: a function that sets the eye position
func WithViewPosition(x, y, z float32) StateBuilderOption {
	return func(s *State) {
		s.viewPosition = &mgl32.Vec3{x, y, z}
	}
}

// WithDerivedViewPosition leaves the eye unset so it is derived from the world camera.
//
// Returns:
//   - StateBuilderOption: a function that clears the eye position
func WithDerivedViewPosition() StateBuilderOption {
	return func(s *State) {
		s.viewPosition = nil
	}
}

// WithWorldCameraPosition sets the initial scene-reference point.
//
// Parameters:
//   - x, y, z: world camera position
//
// Returns:
//   - StateBuilderOption: a function that sets the world camera position
func WithWorldCameraPosition(x, y, z float32) StateBuilderOption {
	return func(s *State) {
		s.worldCameraPosition = mgl32.Vec3{x, y, z}
	}
}
