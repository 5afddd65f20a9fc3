package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device/opengl"
	"github.com/Carmen-Shannon/oxy-stereo/engine/profiler"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"github.com/Carmen-Shannon/oxy-stereo/engine/window"
)

// engine implements the Engine interface.
// Everything that touches the session runs on the window thread; background goroutines only
// feed the session's update queue.
type engine struct {
	wg sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window        window.Window
	windowOptions []window.WindowBuilderOption

	device    device.Builder
	session   session.Session
	adapter   stereo.Adapter
	scheduler scheduler.Scheduler

	sessionOptions   []session.SessionBuilderOption
	providerFactory  func(frames stereo.FrameSource) stereo.Provider
	defaultWidth     int
	defaultHeight    int
	updates          <-chan session.Update
	profiler         *profiler.Profiler
	profilerOptions  []profiler.ProfilerBuilderOption
	profilingEnabled bool
}

// Engine is the main entry point for the renderer.
// It wires the window, the graphics device, the render session, the stereo adapter and the
// frame scheduler, and owns the run loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Session returns the render session.
	//
	// Returns:
	//   - session.Session: the session instance
	Session() session.Session

	// Scheduler returns the frame scheduler.
	//
	// Returns:
	//   - scheduler.Scheduler: the scheduler instance
	Scheduler() scheduler.Scheduler

	// Adapter returns the stereo display adapter.
	//
	// Returns:
	//   - stereo.Adapter: the adapter instance
	Adapter() stereo.Adapter

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run starts display enumeration and the mono frame loop and blocks until the window
	// closes. Resources are released before it returns.
	Run()

	// Quit closes the window and stops the background goroutines.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates the window with its OpenGL context, the device, the session and the
// stereo path. Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error wrapping device.ErrNoContext when no graphics context is available,
//     or a session construction error
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		quitChannel:     make(chan struct{}),
		providerFactory: func(stereo.FrameSource) stereo.Provider { return stereo.NullProvider{} },
	}
	for _, opt := range options {
		opt(e)
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	if e.window == nil {
		w, err := window.NewWindow(e.windowOptions...)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.window = w
	}

	dev, err := opengl.NewDevice()
	if err != nil {
		_ = e.window.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.device = dev

	sess, err := session.NewSession(dev, e.sessionOptions...)
	if err != nil {
		_ = e.window.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.session = sess

	e.adapter = stereo.NewAdapter(stereo.WithProvider(e.providerFactory(e.window)))

	width, height := common.Coalesce(e.defaultWidth, e.window.Width()), common.Coalesce(e.defaultHeight, e.window.Height())
	e.profiler = profiler.NewProfiler(e.profilerOptions...)
	e.scheduler = scheduler.NewScheduler(e.window, e.session, e.adapter,
		scheduler.WithDefaultSurfaceSize(width, height),
		scheduler.WithFrameHook(func(mode scheduler.Mode) {
			e.window.MarkFrameDrawn()
			if e.profilingEnabled {
				e.profiler.Tick(mode.String())
			}
		}),
	)

	e.window.SetKeyDownCallback(e.handleKey)
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Session() session.Session {
	return e.session
}

func (e *engine) Scheduler() scheduler.Scheduler {
	return e.scheduler
}

func (e *engine) Adapter() stereo.Adapter {
	return e.adapter
}

func (e *engine) Run() {
	e.adapter.Discover(e.ctx)
	e.scheduler.Start()
	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.session.Release()
	if err := e.window.Close(); err != nil {
		log.Printf("engine: close window: %v", err)
	}
}

// Quit requests the window to close; Run returns after the current frame.
func (e *engine) Quit() {
	e.window.RequestClose()
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.cancel()
		close(e.quitChannel)
	})
}

// handle launches the update forwarding and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleUpdates()
	go e.handleQuit()
}

// handleUpdates forwards the external update feed into the session queue until quit.
func (e *engine) handleUpdates() {
	defer e.wg.Done()
	if e.updates == nil {
		return
	}
	for {
		select {
		case <-e.quitChannel:
			return
		case u, ok := <-e.updates:
			if !ok {
				return
			}
			e.session.Push(u)
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// handleKey maps the toggle and escape keys onto the scheduler. Runs on the window thread.
func (e *engine) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyV:
		if e.scheduler.Mode() == scheduler.ModeStereo {
			return
		}
		if err := e.scheduler.EnterStereo(); err != nil {
			log.Printf("engine: cannot enter stereo: %v", err)
		}
	case common.KeyEsc:
		if e.scheduler.Mode() == scheduler.ModeStereo {
			if err := e.scheduler.ExitStereo(); err != nil {
				log.Printf("engine: cannot exit stereo: %v", err)
			}
			return
		}
		e.window.RequestClose()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
