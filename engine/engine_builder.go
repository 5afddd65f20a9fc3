package engine

import (
	"github.com/Carmen-Shannon/oxy-stereo/engine/profiler"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"github.com/Carmen-Shannon/oxy-stereo/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerOptions configures the profiler created by the engine.
func WithProfilerOptions(options ...profiler.ProfilerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.profilerOptions = append(e.profilerOptions, options...)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. Its OpenGL context must be current on the calling thread.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions configures the window the engine creates.
//
// Parameters:
//   - options: window builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithSessionOptions configures the render session.
//
// Parameters:
//   - options: session builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSessionOptions(options ...session.SessionBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.sessionOptions = append(e.sessionOptions, options...)
	}
}

// WithStereoProvider sets how the stereo provider is created once the window exists.
// Without it stereo is reported as unsupported.
//
// Parameters:
//   - factory: builds the provider; frames is the window's frame source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStereoProvider(factory func(frames stereo.FrameSource) stereo.Provider) EngineBuilderOption {
	return func(e *engine) {
		if factory != nil {
			e.providerFactory = factory
		}
	}
}

// WithDefaultSurfaceSize sets the mono surface size restored when stereo ends.
// Defaults to the window's initial size.
func WithDefaultSurfaceSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.defaultWidth, e.defaultHeight = width, height
	}
}

// WithUpdates feeds updates from ch into the session until the engine quits or ch closes.
//
// Parameters:
//   - ch: the update feed
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdates(ch <-chan session.Update) EngineBuilderOption {
	return func(e *engine) {
		e.updates = ch
	}
}
