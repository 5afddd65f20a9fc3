// Package stereo adapts head-mounted displays to the renderer: display enumeration,
// per-eye matrices and viewports, frame submission, and presentation changes.
package stereo

import (
	"context"
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnsupported is returned by a provider that cannot reach any stereo runtime.
	ErrUnsupported = errors.New("stereo: stereo displays are not supported")

	// ErrNoDisplay is returned when an operation needs a display and none was selected.
	ErrNoDisplay = errors.New("stereo: no display")

	// ErrNotPresenting is returned by ExitPresent when the display is not presenting.
	ErrNotPresenting = errors.New("stereo: display is not presenting")
)

// Eye selects one half of a stereo frame.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

func (e Eye) String() string {
	if e == EyeRight {
		return "right"
	}
	return "left"
}

// EyeParameters describes the render target of one eye.
type EyeParameters struct {
	RenderWidth  int
	RenderHeight int

	// Offset is the eye position relative to the head center, in meters.
	Offset mgl32.Vec3
}

// FrameData holds the per-eye matrices of one display frame.
type FrameData struct {
	LeftProjection  mgl32.Mat4
	LeftView        mgl32.Mat4
	RightProjection mgl32.Mat4
	RightView       mgl32.Mat4
}

// Projection returns the projection matrix of eye.
func (f FrameData) Projection(eye Eye) mgl32.Mat4 {
	if eye == EyeRight {
		return f.RightProjection
	}
	return f.LeftProjection
}

// View returns the view matrix of eye.
func (f FrameData) View(eye Eye) mgl32.Mat4 {
	if eye == EyeRight {
		return f.RightView
	}
	return f.LeftView
}

// FrameSource schedules a callback for the next frame. It is implemented by the host
// window and by displays with their own refresh cadence.
type FrameSource interface {
	RequestAnimationFrame(cb func(now time.Duration))
}

// Display is a head-mounted display.
type Display interface {
	FrameSource

	// Name identifies the display in logs.
	Name() string

	// SetDepthBounds sets the near and far planes used for the eye projections.
	SetDepthBounds(near, far float32)

	// EyeParameters returns the render target of eye.
	EyeParameters(eye Eye) EyeParameters

	// FrameData returns the eye matrices for the current frame.
	FrameData() FrameData

	// RequestPresent asks the display to start presenting. The change is reported
	// through the OnPresentChange callback, never synchronously.
	RequestPresent() error

	// ExitPresent asks the display to stop presenting. The change is reported
	// through the OnPresentChange callback, never synchronously.
	ExitPresent() error

	// SubmitFrame hands the composited side-by-side frame to the display.
	SubmitFrame()

	// IsPresenting reports whether the display is presenting.
	IsPresenting() bool

	// OnPresentChange registers the callback run whenever presentation starts or stops.
	// A later call replaces the earlier callback.
	OnPresentChange(cb func())
}

// Provider enumerates the stereo displays reachable from this process.
type Provider interface {
	// Displays returns the available displays. It may block and is run off the frame thread.
	//
	// Parameters:
	//   - ctx: cancels enumeration
	//
	// Returns:
	//   - []Display: the displays found, possibly empty
	//   - error: ErrUnsupported when no stereo runtime is reachable
	Displays(ctx context.Context) ([]Display, error)
}

// NullProvider reports stereo as unsupported.
type NullProvider struct{}

var _ Provider = NullProvider{}

func (NullProvider) Displays(context.Context) ([]Display, error) {
	return nil, ErrUnsupported
}
