package window

import (
	"runtime"
	"sync"
	"time"
)

// Window provides the platform window, its OpenGL context, and the per-frame callback queue
// that drives mono rendering.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// RequestAnimationFrame queues cb to run once on the next frame. Callbacks queued while a
	// frame runs wait for the following frame.
	//
	// Parameters:
	//   - cb: receives the time elapsed since the window was created
	RequestAnimationFrame(cb func(now time.Duration))

	// SetSurfaceSize resizes the window so the drawing surface is width by height.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	SetSurfaceSize(width, height int)

	// SurfaceSize returns the drawing surface size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	SurfaceSize() (width, height int)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose marks the window for closing. ProcessMessages returns after the current frame.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// MarkFrameDrawn records that the current frame rendered something, so ProcessMessages
	// presents it once the frame callbacks finish.
	MarkFrameDrawn()

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls events, runs the queued frame
	// callbacks and presents the frame when one of them called MarkFrameDrawn.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, event callbacks and queued frames.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth and maxHeight bound resizing; zero means unbounded.
	maxWidth, maxHeight int

	// minWidth and minHeight bound resizing.
	minWidth, minHeight int

	// width and height are the current framebuffer size in pixels.
	width, height int

	// vsync enables swap interval 1.
	vsync bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)

	frameMu sync.Mutex
	frames  []func(now time.Duration)
	start   time.Time
	drawn   bool
}

var _ Window = &engineWindow{}

// NewWindow creates the platform window and makes its OpenGL context current on the calling
// thread. Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error wrapping device.ErrNoContext if no window or context could be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-stereo",
		minWidth:  320,
		minHeight: 240,
		width:     640,
		height:    480,
		vsync:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	w.start = time.Now()
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) RequestAnimationFrame(cb func(now time.Duration)) {
	w.frameMu.Lock()
	defer w.frameMu.Unlock()
	w.frames = append(w.frames, cb)
}

func (w *engineWindow) SetSurfaceSize(width, height int) {
	platformSetSize(w, width, height)
}

func (w *engineWindow) SurfaceSize() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) MarkFrameDrawn() {
	w.drawn = true
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		w.runFrames()
		if w.drawn {
			w.drawn = false
			platformSwapBuffers(w)
		}

		runtime.Gosched()
	}
}

// runFrames runs the callbacks queued before this frame started.
func (w *engineWindow) runFrames() {
	w.frameMu.Lock()
	run := w.frames
	w.frames = nil
	w.frameMu.Unlock()

	now := time.Since(w.start)
	for _, cb := range run {
		cb(now)
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
