// Package session holds the state of one render session: the camera, the drawable list,
// the default program and the device they live on. Updates may be pushed from any
// goroutine; everything else runs on the frame thread.
package session

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultFovDegrees = 45
	defaultNear       = 1
	defaultFar        = 2000
	defaultQueueSize  = 64
)

// EyeSource renders both eyes of a stereo frame. stereo.Adapter implements it.
type EyeSource interface {
	RenderEyes(dev device.Device, width, height int, draw stereo.EyeRenderer) error
}

type sessionImpl struct {
	dev    device.Builder
	drawer scene.Drawer
	cam    *camera.State

	drawables    []scene.Drawable
	hasDrawables bool
	registry     scene.Registry
	names        []string

	program     device.Program
	ownsProgram bool

	fovY, near, far float32

	queueSize int
	updates   chan Update
}

// Session is a render session.
type Session interface {
	// Camera returns the session's camera state.
	Camera() *camera.State

	// Drawables returns the current drawable list. The slice must not be modified.
	Drawables() []scene.Drawable

	// DefaultProgram returns the program used by drawables without an override.
	DefaultProgram() device.Program

	// Push queues u for the next Sync. It is safe to call from any goroutine and never blocks.
	//
	// Parameters:
	//   - u: the update to queue
	//
	// Returns:
	//   - bool: false if the queue was full and u was dropped
	Push(u Update) bool

	// Apply applies u immediately. Buffers are replaced before positions are moved.
	// A failing buffer build keeps the previous drawables; position changes still apply.
	//
	// Parameters:
	//   - u: the update to apply
	//
	// Returns:
	//   - error: the drawable build error, if any
	Apply(u Update) error

	// Sync applies every queued update in order.
	//
	// Returns:
	//   - int: the number of updates applied
	Sync() int

	// RenderMono advances the rotation by dt and draws one mono frame over the whole
	// surface.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	//   - dt: elapsed seconds since the previous frame
	RenderMono(width, height int, dt float32)

	// RenderStereo advances the rotation by dt once and draws both eyes of a stereo frame
	// at that angle.
	//
	// Parameters:
	//   - eyes: renders and submits the eyes
	//   - width, height: surface size in pixels
	//   - dt: elapsed seconds since the previous frame
	//
	// Returns:
	//   - error: the error returned by eyes
	RenderStereo(eyes EyeSource, width, height int, dt float32) error

	// Release deletes the drawables' buffers and the default program when the session
	// linked it.
	Release()
}

var _ Session = &sessionImpl{}

// NewSession creates a Session on b, clears to opaque black, and links the default program
// and builds the default scene unless options supply them.
//
// Parameters:
//   - b: the device the session draws on
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
//   - error: error if the program or the initial drawables cannot be created
func NewSession(b device.Builder, options ...SessionBuilderOption) (Session, error) {
	s := &sessionImpl{
		dev:       b,
		registry:  scene.DefaultRegistry(),
		names:     scene.DefaultDrawables,
		fovY:      defaultFovDegrees,
		near:      defaultNear,
		far:       defaultFar,
		queueSize: defaultQueueSize,
	}
	for _, opt := range options {
		opt(s)
	}

	s.updates = make(chan Update, s.queueSize)
	if s.cam == nil {
		s.cam = camera.NewState()
	}

	b.ClearColor(0, 0, 0, 1)

	if s.program == 0 {
		p, err := scene.DefaultProgram(b)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		s.program = p
		s.ownsProgram = true
	}
	s.drawer = scene.NewDrawer(scene.WithDefaultProgram(s.program))

	if !s.hasDrawables {
		drawables, err := scene.Build(b, s.registry, s.names)
		if err != nil {
			if s.ownsProgram {
				b.DeleteProgram(s.program)
			}
			return nil, fmt.Errorf("session: %w", err)
		}
		s.drawables = drawables
	}
	return s, nil
}

func (s *sessionImpl) Camera() *camera.State {
	return s.cam
}

func (s *sessionImpl) Drawables() []scene.Drawable {
	return s.drawables
}

func (s *sessionImpl) DefaultProgram() device.Program {
	return s.program
}

func (s *sessionImpl) Push(u Update) bool {
	select {
	case s.updates <- u:
		return true
	default:
		log.Printf("session: update queue full (%d), dropping update", s.queueSize)
		return false
	}
}

func (s *sessionImpl) Sync() int {
	n := 0
	for {
		select {
		case u := <-s.updates:
			if err := s.Apply(u); err != nil {
				log.Printf("session: update failed: %v", err)
			}
			n++
		default:
			return n
		}
	}
}

func (s *sessionImpl) Apply(u Update) error {
	var err error
	if len(u.Buffers) > 0 {
		err = s.replaceDrawables(u.Buffers)
	}

	switch {
	case u.ViewPosition.Null:
		s.cam.ClearViewPosition()
	case u.ViewPosition.Present:
		s.cam.MoveView(u.ViewPosition.Vector, u.CameraDelta)
	}
	if u.WorldCameraPosition.Present && !u.WorldCameraPosition.Null {
		s.cam.MoveWorld(u.WorldCameraPosition.Vector, u.CameraDelta)
	}
	return err
}

// replaceDrawables builds the new list and swaps it in only when every factory succeeds.
func (s *sessionImpl) replaceDrawables(factories []scene.DrawableFactory) error {
	next, err := scene.BuildAll(s.dev, factories)
	if err != nil {
		return err
	}
	scene.Release(s.dev, s.drawables)
	s.drawables = next
	return nil
}

func (s *sessionImpl) RenderMono(width, height int, dt float32) {
	s.cam.Advance(dt)
	s.drawer.PrepareFrame(s.dev, width, height)
	frame := scene.FrameContext{
		Projection: s.projection(common.Aspect(width, height)),
		DeltaTime:  dt,
	}
	s.drawer.Draw(s.dev, frame, s.cam, s.drawables)
}

func (s *sessionImpl) RenderStereo(eyes EyeSource, width, height int, dt float32) error {
	s.cam.Advance(dt)
	s.drawer.PrepareFrame(s.dev, width, height)
	return eyes.RenderEyes(s.dev, width, height, func(_ stereo.Eye, projection, view mgl32.Mat4) {
		frame := scene.FrameContext{
			Projection: projection,
			StereoView: &view,
			DeltaTime:  dt,
		}
		s.drawer.Draw(s.dev, frame, s.cam, s.drawables)
	})
}

func (s *sessionImpl) Release() {
	scene.Release(s.dev, s.drawables)
	s.drawables = nil
	if s.ownsProgram {
		s.drawer.Forget(s.program)
		s.dev.DeleteProgram(s.program)
		s.program = 0
		s.ownsProgram = false
	}
}

func (s *sessionImpl) projection(aspect float32) mgl32.Mat4 {
	return common.Perspective(common.DegToRad(s.fovY), aspect, s.near, s.far)
}
