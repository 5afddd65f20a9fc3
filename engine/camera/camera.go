package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// monoDistanceDivisor scales the world camera depth into the derived mono eye depth.
const monoDistanceDivisor = 1.5

// Undefined marks a target component that places no limit on its axis.
var Undefined = float32(math.NaN())

// State is the only persistent simulation state of a render session: the eye position,
// the scene-reference point, and the accumulated model rotation.
//
// State is owned by the frame callback and is not safe for concurrent use.
type State struct {
	// viewPosition is the eye location. nil means "derive from worldCameraPosition".
	viewPosition *mgl32.Vec3

	// worldCameraPosition is the scene-reference point uploaded to shaders.
	worldCameraPosition mgl32.Vec3

	// rotation is the accumulated rotation angle in seconds of animation.
	rotation float32
}

// NewState creates a camera State with the default eye at (0, 0, -5) and the world
// camera at (0, 0, -2.5).
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - *State: the newly created state
func NewState(options ...StateBuilderOption) *State {
	view := mgl32.Vec3{0, 0, -5}
	s := &State{
		viewPosition:        &view,
		worldCameraPosition: mgl32.Vec3{0, 0, -2.5},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ViewPosition returns the eye position and whether it is set.
//
// Returns:
//   - mgl32.Vec3: the eye position (zero when unset)
//   - bool: true if the eye position is set
func (s *State) ViewPosition() (mgl32.Vec3, bool) {
	if s.viewPosition == nil {
		return mgl32.Vec3{}, false
	}
	return *s.viewPosition, true
}

// WorldCameraPosition returns the scene-reference point.
func (s *State) WorldCameraPosition() mgl32.Vec3 {
	return s.worldCameraPosition
}

// Rotation returns the accumulated rotation angle.
func (s *State) Rotation() float32 {
	return s.rotation
}

// SetViewPosition sets the eye position absolutely.
func (s *State) SetViewPosition(v mgl32.Vec3) {
	s.viewPosition = &v
}

// ClearViewPosition unsets the eye position so MonoPosition derives it from the world camera.
func (s *State) ClearViewPosition() {
	s.viewPosition = nil
}

// SetWorldCameraPosition sets the scene-reference point absolutely.
func (s *State) SetWorldCameraPosition(v mgl32.Vec3) {
	s.worldCameraPosition = v
}

// MoveView moves the eye toward target, see UpdatePosition.
// When the eye is unset it starts from the derived mono position.
//
// Parameters:
//   - target: per-axis limits (Undefined components are unlimited)
//   - delta: per-axis increments, or nil for absolute positioning; undefined components move by zero
func (s *State) MoveView(target, delta []float32) {
	v := UpdatePosition(s.MonoPosition(), target, delta)
	s.viewPosition = &v
}

// MoveWorld moves the world camera toward target, see UpdatePosition.
//
// Parameters:
//   - target: per-axis limits (Undefined components are unlimited)
//   - delta: per-axis increments, or nil for absolute positioning; undefined components move by zero
func (s *State) MoveWorld(target, delta []float32) {
	s.worldCameraPosition = UpdatePosition(s.worldCameraPosition, target, delta)
}

// Advance adds dt seconds to the rotation accumulator. Negative and NaN deltas are ignored
// so the accumulator never decreases.
//
// Parameters:
//   - dt: elapsed frame time in seconds
func (s *State) Advance(dt float32) {
	if !(dt > 0) {
		return
	}
	s.rotation += dt
}

// MonoPosition returns the eye used for mono rendering: the view position when set,
// otherwise (0, 0, worldCameraPosition.z / 1.5).
//
// Returns:
//   - mgl32.Vec3: the eye position
func (s *State) MonoPosition() mgl32.Vec3 {
	if s.viewPosition != nil {
		return *s.viewPosition
	}
	return mgl32.Vec3{0, 0, s.worldCameraPosition[2] / monoDistanceDivisor}
}

// UpdatePosition computes the next value of a position vector.
//
// Without a delta, every component present in target replaces the matching component
// of current. With a delta, each axis i covered by delta is handled independently:
//   - target[i] defined and current[i] < target[i]: advance by delta[i], never past target[i];
//   - target[i] defined otherwise: snap to target[i];
//   - target[i] missing or Undefined: advance by delta[i] without limit.
//
// Parameters:
//   - current: the present position
//   - target: per-axis limits or absolute values
//   - delta: per-axis increments, or nil for absolute positioning; undefined components move by zero
//
// Returns:
//   - mgl32.Vec3: the updated position
func UpdatePosition(current mgl32.Vec3, target, delta []float32) mgl32.Vec3 {
	next := current
	if delta == nil {
		for i := 0; i < len(target) && i < 3; i++ {
			if IsDefined(target[i]) {
				next[i] = target[i]
			}
		}
		return next
	}

	for i := 0; i < len(delta) && i < 3; i++ {
		step := delta[i]
		if !IsDefined(step) {
			step = 0
		}
		if i >= len(target) || !IsDefined(target[i]) {
			next[i] += step
			continue
		}
		if next[i] < target[i] {
			next[i] = min(next[i]+step, target[i])
		} else {
			next[i] = target[i]
		}
	}
	return next
}

// IsDefined reports whether a target component places a limit on its axis.
func IsDefined(v float32) bool {
	return !math.IsNaN(float64(v))
}
