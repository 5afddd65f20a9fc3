package stereo

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// Depth bounds applied to every selected display.
const (
	DisplayNear = 0.1
	DisplayFar  = 100.0
)

// EyeRenderer draws the scene for one eye with that eye's matrices.
type EyeRenderer func(eye Eye, projection, view mgl32.Mat4)

// discovery is the outcome of one enumeration task.
type discovery struct {
	displays []Display
	err      error
}

type adapterImpl struct {
	mu sync.Mutex

	provider    Provider
	workers     int
	pool        worker.DynamicWorkerPool
	results     chan discovery
	display     Display
	onPresent   func(presenting bool)
	discovering bool
}

// Adapter owns the selected stereo display. Enumeration runs on a worker pool; its result
// is picked up by Poll on the frame thread, so selection never races with drawing.
type Adapter interface {
	// Discover starts asynchronous display enumeration. Calls while an enumeration is
	// pending are ignored.
	//
	// Parameters:
	//   - ctx: cancels enumeration
	Discover(ctx context.Context)

	// Poll drains a finished enumeration, selects the last display found and applies the
	// depth bounds. It never blocks.
	//
	// Returns:
	//   - bool: true if a display was selected by this call
	Poll() bool

	// Display returns the selected display, or nil.
	Display() Display

	// Supported reports whether a display is selected.
	Supported() bool

	// SetPresentChangeCallback registers cb for presentation changes of the selected display,
	// including displays selected later.
	//
	// Parameters:
	//   - cb: called with the new presentation state
	SetPresentChangeCallback(cb func(presenting bool))

	// RenderEyes draws the left eye into the left half of the surface and the right eye into
	// the right half, then submits the frame.
	//
	// Parameters:
	//   - dev: the device used to set viewports
	//   - width, height: surface size in pixels
	//   - draw: draws the scene for one eye
	//
	// Returns:
	//   - error: ErrNoDisplay if no display is selected
	RenderEyes(dev device.Device, width, height int, draw EyeRenderer) error
}

var _ Adapter = &adapterImpl{}

// NewAdapter creates an Adapter. Without a provider option stereo is unsupported.
//
// Parameters:
//   - options: functional options to configure the adapter
//
// Returns:
//   - Adapter: the newly created adapter
func NewAdapter(options ...AdapterBuilderOption) Adapter {
	a := &adapterImpl{
		provider: NullProvider{},
		workers:  1,
		results:  make(chan discovery, 1),
	}
	for _, opt := range options {
		opt(a)
	}
	a.pool = worker.NewDynamicWorkerPool(a.workers, 4, 1*time.Second)
	if a.display != nil {
		a.selectDisplay(a.display)
	}
	return a
}

func (a *adapterImpl) Discover(ctx context.Context) {
	a.mu.Lock()
	if a.discovering {
		a.mu.Unlock()
		return
	}
	a.discovering = true
	provider := a.provider
	a.mu.Unlock()

	a.pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			displays, err := provider.Displays(ctx)
			a.results <- discovery{displays: displays, err: err}
			return len(displays), err
		},
	})
}

func (a *adapterImpl) Poll() bool {
	var res discovery
	select {
	case res = <-a.results:
	default:
		return false
	}

	a.mu.Lock()
	a.discovering = false
	a.mu.Unlock()

	switch {
	case errors.Is(res.err, ErrUnsupported):
		log.Printf("stereo: this host does not support stereo displays")
		return false
	case res.err != nil:
		log.Printf("stereo: display enumeration failed: %v", res.err)
		return false
	case len(res.displays) == 0:
		log.Printf("stereo: no stereo displays found")
		return false
	}

	d := res.displays[len(res.displays)-1]
	a.selectDisplay(d)
	log.Printf("stereo: using display %q (%d found)", d.Name(), len(res.displays))
	return true
}

func (a *adapterImpl) Display() Display {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.display
}

func (a *adapterImpl) Supported() bool {
	return a.Display() != nil
}

func (a *adapterImpl) SetPresentChangeCallback(cb func(presenting bool)) {
	a.mu.Lock()
	a.onPresent = cb
	d := a.display
	a.mu.Unlock()

	if d != nil {
		a.watch(d)
	}
}

func (a *adapterImpl) RenderEyes(dev device.Device, width, height int, draw EyeRenderer) error {
	d := a.Display()
	if d == nil {
		return ErrNoDisplay
	}

	frame := d.FrameData()
	half := width / 2

	dev.Viewport(0, 0, half, height)
	draw(EyeLeft, frame.LeftProjection, frame.LeftView)

	dev.Viewport(half, 0, half, height)
	draw(EyeRight, frame.RightProjection, frame.RightView)

	d.SubmitFrame()
	return nil
}

func (a *adapterImpl) selectDisplay(d Display) {
	d.SetDepthBounds(DisplayNear, DisplayFar)

	a.mu.Lock()
	a.display = d
	a.mu.Unlock()

	a.watch(d)
}

// watch forwards presentation changes of d to the registered callback.
func (a *adapterImpl) watch(d Display) {
	d.OnPresentChange(func() {
		a.mu.Lock()
		cb := a.onPresent
		a.mu.Unlock()
		if cb != nil {
			cb(d.IsPresenting())
		}
	})
}
