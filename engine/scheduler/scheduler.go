// Package scheduler drives frames in one of two modes: mono frames through the host
// window's loop, stereo frames through the display's loop.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
)

// Mode selects the rendering path.
type Mode int

const (
	ModeMono Mode = iota
	ModeStereo
)

func (m Mode) String() string {
	if m == ModeStereo {
		return "stereo"
	}
	return "mono"
}

const (
	defaultSurfaceWidth  = 640
	defaultSurfaceHeight = 480
)

// Host is the window the scheduler renders into.
type Host interface {
	stereo.FrameSource

	// SetSurfaceSize resizes the drawing surface.
	SetSurfaceSize(width, height int)

	// SurfaceSize returns the drawing surface size in pixels.
	SurfaceSize() (width, height int)
}

// FrameRenderer draws frames. session.Session implements it.
type FrameRenderer interface {
	Sync() int
	RenderMono(width, height int, dt float32)
	RenderStereo(eyes session.EyeSource, width, height int, dt float32) error
}

type schedulerImpl struct {
	host     Host
	renderer FrameRenderer
	adapter  stereo.Adapter

	mode Mode
	then time.Duration

	monoScheduled   bool
	stereoScheduled bool

	defaultWidth, defaultHeight int
	onFrame                     func(mode Mode)
}

// Scheduler owns the current Mode and the frame chain of that mode. At most one chain per
// mode is pending at any time, and a handler that finds the mode changed stops its chain.
// All methods run on the frame thread.
type Scheduler interface {
	// Start schedules the first mono frame.
	Start()

	// EnterStereo switches to stereo and asks the display to present. The surface is resized
	// and the first stereo frame scheduled when the display reports the change.
	//
	// Returns:
	//   - error: stereo.ErrNoDisplay if no display is selected, or the display's refusal
	EnterStereo() error

	// ExitStereo asks the display to stop presenting. Mono resumes when the display reports
	// the change.
	//
	// Returns:
	//   - error: stereo.ErrNoDisplay if no display is selected, or the display's error
	ExitStereo() error

	// Mode returns the current mode.
	Mode() Mode
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a Scheduler and subscribes to the adapter's presentation changes.
//
// Parameters:
//   - host: the window providing mono frames and the surface
//   - renderer: draws the frames
//   - adapter: the stereo display adapter
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(host Host, renderer FrameRenderer, adapter stereo.Adapter, options ...SchedulerBuilderOption) Scheduler {
	s := &schedulerImpl{
		host:          host,
		renderer:      renderer,
		adapter:       adapter,
		mode:          ModeMono,
		defaultWidth:  defaultSurfaceWidth,
		defaultHeight: defaultSurfaceHeight,
	}
	for _, opt := range options {
		opt(s)
	}
	adapter.SetPresentChangeCallback(s.onPresentChange)
	return s
}

func (s *schedulerImpl) Start() {
	s.scheduleMono()
}

func (s *schedulerImpl) Mode() Mode {
	return s.mode
}

func (s *schedulerImpl) EnterStereo() error {
	d := s.adapter.Display()
	if d == nil {
		return stereo.ErrNoDisplay
	}
	if s.mode == ModeStereo {
		return nil
	}

	s.mode = ModeStereo
	if err := d.RequestPresent(); err != nil {
		s.mode = ModeMono
		s.scheduleMono()
		return fmt.Errorf("scheduler: request present on %q: %w", d.Name(), err)
	}
	return nil
}

func (s *schedulerImpl) ExitStereo() error {
	d := s.adapter.Display()
	if d == nil {
		return stereo.ErrNoDisplay
	}
	if err := d.ExitPresent(); err != nil {
		return fmt.Errorf("scheduler: exit present on %q: %w", d.Name(), err)
	}
	return nil
}

func (s *schedulerImpl) onPresentChange(presenting bool) {
	d := s.adapter.Display()
	if presenting && d != nil {
		s.mode = ModeStereo
		left := d.EyeParameters(stereo.EyeLeft)
		s.host.SetSurfaceSize(2*left.RenderWidth, left.RenderHeight)
		log.Printf("scheduler: presenting on %q at %dx%d", d.Name(), 2*left.RenderWidth, left.RenderHeight)
		s.scheduleStereo()
		return
	}

	s.mode = ModeMono
	s.host.SetSurfaceSize(s.defaultWidth, s.defaultHeight)
	log.Printf("scheduler: stereo presentation ended, back to mono at %dx%d", s.defaultWidth, s.defaultHeight)
	s.scheduleMono()
}

func (s *schedulerImpl) scheduleMono() {
	if s.monoScheduled {
		return
	}
	s.monoScheduled = true
	s.host.RequestAnimationFrame(s.monoFrame)
}

func (s *schedulerImpl) scheduleStereo() {
	d := s.adapter.Display()
	if d == nil || s.stereoScheduled {
		return
	}
	s.stereoScheduled = true
	d.RequestAnimationFrame(s.stereoFrame)
}

func (s *schedulerImpl) monoFrame(now time.Duration) {
	s.monoScheduled = false
	if s.mode != ModeMono {
		return
	}

	s.poll()
	dt := s.delta(now)
	w, h := s.host.SurfaceSize()
	s.renderer.RenderMono(w, h, dt)
	if s.onFrame != nil {
		s.onFrame(ModeMono)
	}
	s.scheduleMono()
}

func (s *schedulerImpl) stereoFrame(now time.Duration) {
	s.stereoScheduled = false
	if s.mode != ModeStereo || s.adapter.Display() == nil {
		return
	}

	s.poll()
	dt := s.delta(now)
	w, h := s.host.SurfaceSize()
	if err := s.renderer.RenderStereo(s.adapter, w, h, dt); err != nil {
		log.Printf("scheduler: stereo frame: %v", err)
	}
	if s.onFrame != nil {
		s.onFrame(ModeStereo)
	}
	s.scheduleStereo()
}

// poll applies pending updates and picks up a finished display enumeration.
func (s *schedulerImpl) poll() {
	s.renderer.Sync()
	s.adapter.Poll()
}

// delta returns the seconds elapsed since the previous handled frame.
func (s *schedulerImpl) delta(now time.Duration) float32 {
	dt := float32((now - s.then).Seconds())
	s.then = now
	return dt
}
