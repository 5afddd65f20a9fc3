package stereo

import (
	"context"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultEyeWidth  = 960
	defaultEyeHeight = 1080
	defaultIPD       = 0.064
	defaultEyeFov    = 90
	defaultNear      = 0.1
	defaultFar       = 1000
)

// SimulatedDisplay is a software display that presents side by side into the host window.
// Its frames are driven by the host's frame source.
type SimulatedDisplay struct {
	mu sync.Mutex

	name       string
	frames     FrameSource
	eyeWidth   int
	eyeHeight  int
	ipd        float32
	fovY       float32
	near, far  float32
	presenting bool
	submitted  int
	onChange   func()
}

var _ Display = &SimulatedDisplay{}

// NewSimulatedDisplay creates a simulated display.
//
// Parameters:
//   - frames: the frame source that drives the display, normally the host window
//   - options: functional options to configure the display
//
// Returns:
//   - *SimulatedDisplay: the newly created display
func NewSimulatedDisplay(frames FrameSource, options ...SimulatedDisplayBuilderOption) *SimulatedDisplay {
	d := &SimulatedDisplay{
		name:      "Simulated HMD",
		frames:    frames,
		eyeWidth:  defaultEyeWidth,
		eyeHeight: defaultEyeHeight,
		ipd:       defaultIPD,
		fovY:      defaultEyeFov,
		near:      defaultNear,
		far:       defaultFar,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *SimulatedDisplay) Name() string {
	return d.name
}

func (d *SimulatedDisplay) RequestAnimationFrame(cb func(now time.Duration)) {
	d.frames.RequestAnimationFrame(cb)
}

func (d *SimulatedDisplay) SetDepthBounds(near, far float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.near, d.far = near, far
}

// DepthBounds returns the near and far planes.
func (d *SimulatedDisplay) DepthBounds() (near, far float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.near, d.far
}

func (d *SimulatedDisplay) EyeParameters(eye Eye) EyeParameters {
	d.mu.Lock()
	defer d.mu.Unlock()
	offset := d.ipd / 2
	if eye == EyeLeft {
		offset = -offset
	}
	return EyeParameters{
		RenderWidth:  d.eyeWidth,
		RenderHeight: d.eyeHeight,
		Offset:       mgl32.Vec3{offset, 0, 0},
	}
}

func (d *SimulatedDisplay) FrameData() FrameData {
	d.mu.Lock()
	defer d.mu.Unlock()
	projection := common.Perspective(common.DegToRad(d.fovY), common.Aspect(d.eyeWidth, d.eyeHeight), d.near, d.far)
	half := d.ipd / 2
	return FrameData{
		LeftProjection:  projection,
		LeftView:        mgl32.Translate3D(half, 0, 0),
		RightProjection: projection,
		RightView:       mgl32.Translate3D(-half, 0, 0),
	}
}

func (d *SimulatedDisplay) RequestPresent() error {
	d.mu.Lock()
	if d.presenting {
		d.mu.Unlock()
		return nil
	}
	d.presenting = true
	d.mu.Unlock()

	d.notify()
	return nil
}

func (d *SimulatedDisplay) ExitPresent() error {
	d.mu.Lock()
	if !d.presenting {
		d.mu.Unlock()
		return ErrNotPresenting
	}
	d.presenting = false
	d.mu.Unlock()

	d.notify()
	return nil
}

func (d *SimulatedDisplay) SubmitFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitted++
}

// Submitted returns how many frames were submitted.
func (d *SimulatedDisplay) Submitted() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitted
}

func (d *SimulatedDisplay) IsPresenting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presenting
}

func (d *SimulatedDisplay) OnPresentChange(cb func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = cb
}

// notify delivers the presentation change on the next host frame.
func (d *SimulatedDisplay) notify() {
	d.frames.RequestAnimationFrame(func(time.Duration) {
		d.mu.Lock()
		cb := d.onChange
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// SimulatedProvider enumerates a fixed list of simulated displays.
type SimulatedProvider struct {
	displays []Display
}

var _ Provider = &SimulatedProvider{}

// NewSimulatedProvider creates a provider returning displays in order.
func NewSimulatedProvider(displays ...Display) *SimulatedProvider {
	return &SimulatedProvider{displays: displays}
}

func (p *SimulatedProvider) Displays(ctx context.Context) ([]Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Display(nil), p.displays...), nil
}
