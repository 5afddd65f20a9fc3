package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	pending       []func(time.Duration)
	width, height int
	resizes       [][2]int
}

func (h *fakeHost) RequestAnimationFrame(cb func(time.Duration)) {
	h.pending = append(h.pending, cb)
}

func (h *fakeHost) SetSurfaceSize(width, height int) {
	h.width, h.height = width, height
	h.resizes = append(h.resizes, [2]int{width, height})
}

func (h *fakeHost) SurfaceSize() (int, int) {
	return h.width, h.height
}

func (h *fakeHost) step(now time.Duration) {
	run := h.pending
	h.pending = nil
	for _, cb := range run {
		cb(now)
	}
}

type frame struct {
	mode          Mode
	width, height int
	dt            float32
}

type fakeRenderer struct {
	frames []frame
	syncs  int
	err    error
}

func (r *fakeRenderer) Sync() int {
	r.syncs++
	return 0
}

func (r *fakeRenderer) RenderMono(width, height int, dt float32) {
	r.frames = append(r.frames, frame{ModeMono, width, height, dt})
}

func (r *fakeRenderer) RenderStereo(_ session.EyeSource, width, height int, dt float32) error {
	r.frames = append(r.frames, frame{ModeStereo, width, height, dt})
	return r.err
}

func (r *fakeRenderer) modes() []Mode {
	out := make([]Mode, 0, len(r.frames))
	for _, f := range r.frames {
		out = append(out, f.mode)
	}
	return out
}

type refusingDisplay struct {
	*stereo.SimulatedDisplay
}

func (refusingDisplay) RequestPresent() error {
	return errors.New("user declined")
}

func setup(t *testing.T) (*fakeHost, *fakeRenderer, *stereo.SimulatedDisplay, Scheduler) {
	t.Helper()
	host := &fakeHost{width: 640, height: 480}
	renderer := &fakeRenderer{}
	display := stereo.NewSimulatedDisplay(host, stereo.WithEyeResolution(800, 600))
	s := NewScheduler(host, renderer, stereo.NewAdapter(stereo.WithDisplay(display)))
	return host, renderer, display, s
}

func TestMonoFramesUseHostLoop(t *testing.T) {
	host, renderer, _, s := setup(t)
	s.Start()
	s.Start()
	require.Len(t, host.pending, 1, "one mono chain")

	host.step(500 * time.Millisecond)
	host.step(750 * time.Millisecond)

	require.Len(t, renderer.frames, 2)
	assert.InDelta(t, 0.5, renderer.frames[0].dt, 1e-6, "first delta is the raw timestamp")
	assert.InDelta(t, 0.25, renderer.frames[1].dt, 1e-6)
	assert.Equal(t, 640, renderer.frames[0].width)
	assert.Equal(t, 2, renderer.syncs)
	assert.Len(t, host.pending, 1)
}

func TestEnterStereoWithoutDisplay(t *testing.T) {
	host := &fakeHost{width: 640, height: 480}
	s := NewScheduler(host, &fakeRenderer{}, stereo.NewAdapter())

	assert.ErrorIs(t, s.EnterStereo(), stereo.ErrNoDisplay)
	assert.ErrorIs(t, s.ExitStereo(), stereo.ErrNoDisplay)
	assert.Equal(t, ModeMono, s.Mode())
}

func TestEnterAndExitStereo(t *testing.T) {
	host, renderer, display, s := setup(t)
	s.Start()
	host.step(10 * time.Millisecond)

	require.NoError(t, s.EnterStereo())
	assert.Equal(t, ModeStereo, s.Mode())
	assert.True(t, display.IsPresenting())

	// the pending mono frame stops its chain; the presentation change resizes and starts stereo
	host.step(20 * time.Millisecond)
	assert.Equal(t, [2]int{1600, 600}, host.resizes[0])
	host.step(30 * time.Millisecond)

	require.Len(t, renderer.frames, 2)
	assert.Equal(t, frame{ModeStereo, 1600, 600, 0.02}, renderer.frames[1])
	assert.Len(t, host.pending, 1, "one stereo chain")

	require.NoError(t, s.ExitStereo())
	host.step(40 * time.Millisecond)
	assert.Equal(t, ModeMono, s.Mode())
	assert.Equal(t, [2]int{640, 480}, host.resizes[len(host.resizes)-1])

	host.step(50 * time.Millisecond)
	host.step(60 * time.Millisecond)
	assert.Len(t, host.pending, 1, "only the mono chain remains")

	assert.Equal(t, []Mode{ModeMono, ModeStereo, ModeStereo, ModeMono, ModeMono}, renderer.modes())
	assert.Equal(t, 640, renderer.frames[4].width)
}

func TestEnterStereoTwiceIsNoop(t *testing.T) {
	host, _, _, s := setup(t)
	s.Start()

	require.NoError(t, s.EnterStereo())
	require.NoError(t, s.EnterStereo())
	host.step(time.Millisecond)
	host.step(2 * time.Millisecond)
	assert.Len(t, host.pending, 1)
}

func TestEnterStereoRefused(t *testing.T) {
	host := &fakeHost{width: 640, height: 480}
	renderer := &fakeRenderer{}
	display := refusingDisplay{stereo.NewSimulatedDisplay(host)}
	s := NewScheduler(host, renderer, stereo.NewAdapter(stereo.WithDisplay(display)))
	s.Start()

	assert.Error(t, s.EnterStereo())
	assert.Equal(t, ModeMono, s.Mode())

	host.step(time.Millisecond)
	assert.Equal(t, []Mode{ModeMono}, renderer.modes())
}

func TestStereoFrameErrorKeepsChain(t *testing.T) {
	host, renderer, _, s := setup(t)
	renderer.err = errors.New("lost device")
	s.Start()
	require.NoError(t, s.EnterStereo())
	host.step(time.Millisecond)
	host.step(2 * time.Millisecond)
	host.step(3 * time.Millisecond)

	assert.Equal(t, []Mode{ModeStereo, ModeStereo}, renderer.modes())
}

func TestFrameHookAndDefaultSize(t *testing.T) {
	host := &fakeHost{width: 1024, height: 768}
	display := stereo.NewSimulatedDisplay(host)
	var hooked []Mode
	s := NewScheduler(host, &fakeRenderer{}, stereo.NewAdapter(stereo.WithDisplay(display)),
		WithDefaultSurfaceSize(1024, 768),
		WithFrameHook(func(m Mode) { hooked = append(hooked, m) }),
	)
	s.Start()
	host.step(time.Millisecond)
	require.NoError(t, s.EnterStereo())
	host.step(2 * time.Millisecond)
	host.step(3 * time.Millisecond)
	require.NoError(t, s.ExitStereo())
	host.step(4 * time.Millisecond)

	assert.Equal(t, [2]int{1024, 768}, host.resizes[len(host.resizes)-1])
	assert.Equal(t, []Mode{ModeMono, ModeStereo, ModeStereo}, hooked)
}

func TestFrameHookOnlyAfterRenderedFrames(t *testing.T) {
	host := &fakeHost{width: 640, height: 480}
	renderer := &fakeRenderer{}
	display := stereo.NewSimulatedDisplay(host)
	hooks := 0
	s := NewScheduler(host, renderer, stereo.NewAdapter(stereo.WithDisplay(display)),
		WithFrameHook(func(Mode) { hooks++ }),
	)
	s.Start()

	perStep := func(now time.Duration) int {
		before := hooks
		host.step(now)
		return hooks - before
	}

	assert.Equal(t, 1, perStep(time.Millisecond))
	require.NoError(t, s.EnterStereo())
	assert.Equal(t, 0, perStep(2*time.Millisecond), "stopped mono handler and present change draw nothing")
	assert.Equal(t, 1, perStep(3*time.Millisecond))
	assert.Equal(t, len(renderer.frames), hooks)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "mono", ModeMono.String())
	assert.Equal(t, "stereo", ModeStereo.String())
}
