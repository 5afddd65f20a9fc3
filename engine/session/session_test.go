package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediateFrames struct{}

func (immediateFrames) RequestAnimationFrame(func(time.Duration)) {}

type failingEyes struct{ err error }

func (f failingEyes) RenderEyes(device.Device, int, int, stereo.EyeRenderer) error {
	return f.err
}

func newTestSession(t *testing.T, options ...SessionBuilderOption) (Session, *devicetest.Recorder) {
	t.Helper()
	rec := devicetest.NewRecorder()
	s, err := NewSession(rec, options...)
	require.NoError(t, err)
	rec.Reset()
	return s, rec
}

func TestNewSessionDefaults(t *testing.T) {
	rec := devicetest.NewRecorder()
	s, err := NewSession(rec)
	require.NoError(t, err)

	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, devicetest.Call{Name: "ClearColor", Args: []any{float32(0), float32(0), float32(0), float32(1)}}, rec.Calls[0])
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.NotZero(t, s.DefaultProgram())

	require.Len(t, s.Drawables(), 2)
	assert.Equal(t, "cube", s.Drawables()[0].Name)
	assert.Equal(t, "backdrop", s.Drawables()[1].Name)

	v, ok := s.Camera().ViewPosition()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, v)
	assert.Equal(t, mgl32.Vec3{0, 0, -2.5}, s.Camera().WorldCameraPosition())
}

func TestNewSessionErrors(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.LinkErr = errors.New("bad shader")
	_, err := NewSession(rec)
	assert.ErrorIs(t, err, rec.LinkErr)

	rec = devicetest.NewRecorder()
	_, err = NewSession(rec, WithScene(nil, []string{"teapot"}))
	assert.ErrorIs(t, err, scene.ErrUnknownDrawable)
	assert.Equal(t, 1, rec.Count("DeleteProgram"))
}

func TestNewSessionWithProvidedResources(t *testing.T) {
	rec := devicetest.NewRecorder()
	own := scene.Drawable{Name: "mine", Position: 40, Index: 41, IndexCount: 3}
	s, err := NewSession(rec, WithDefaultProgram(9), WithDrawables(own))
	require.NoError(t, err)

	assert.Zero(t, rec.Count("LinkProgram"))
	assert.Zero(t, rec.Count("NewArrayBuffer"))
	assert.Equal(t, device.Program(9), s.DefaultProgram())
	assert.Equal(t, []scene.Drawable{own}, s.Drawables())

	s.Release()
	assert.True(t, rec.Deleted(40))
	assert.Zero(t, rec.Count("DeleteProgram"), "a provided program is not deleted")
}

func TestApplyReplacesBuffers(t *testing.T) {
	s, rec := newTestSession(t)
	old := s.Drawables()

	require.NoError(t, s.Apply(Update{Buffers: []scene.DrawableFactory{scene.Cube}}))

	require.Len(t, s.Drawables(), 1)
	for _, d := range old {
		for _, b := range d.Buffers() {
			assert.True(t, rec.Deleted(b), "old buffer %d released", b)
		}
	}
}

func TestApplyEmptyBuffersKeepsList(t *testing.T) {
	s, rec := newTestSession(t)
	before := s.Drawables()

	require.NoError(t, s.Apply(Update{Buffers: []scene.DrawableFactory{}}))
	assert.Equal(t, before, s.Drawables())
	assert.Zero(t, rec.Count("DeleteBuffers"))
}

func TestApplyFailedBuildKeepsPreviousList(t *testing.T) {
	s, rec := newTestSession(t)
	before := s.Drawables()
	boom := errors.New("boom")
	failing := func(device.Builder) (scene.Drawable, error) { return scene.Drawable{}, boom }

	err := s.Apply(Update{
		Buffers:      []scene.DrawableFactory{scene.Cube, failing},
		ViewPosition: At(1, 2, 3),
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, before, s.Drawables())
	for _, d := range before {
		for _, b := range d.Buffers() {
			assert.False(t, rec.Deleted(b))
		}
	}
	v, _ := s.Camera().ViewPosition()
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v, "positions still apply")
}

func TestApplyNullViewPositionDerivesMonoCamera(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.Apply(Update{ViewPosition: Null(), WorldCameraPosition: At(0, 0, -9)}))

	_, ok := s.Camera().ViewPosition()
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -6}, s.Camera().MonoPosition())
}

func TestApplyDeltaConvergesWithoutOvershoot(t *testing.T) {
	s, _ := newTestSession(t)
	u := Update{
		ViewPosition:        At(0, 0, -2),
		WorldCameraPosition: At(0, 0, -1),
		CameraDelta:         []float32{0, 0, 0.7},
	}

	for range 10 {
		require.NoError(t, s.Apply(u))
		v, _ := s.Camera().ViewPosition()
		assert.LessOrEqual(t, v[2], float32(-2))
		assert.LessOrEqual(t, s.Camera().WorldCameraPosition()[2], float32(-1))
	}

	v, _ := s.Camera().ViewPosition()
	assert.Equal(t, float32(-2), v[2])
	assert.Equal(t, float32(-1), s.Camera().WorldCameraPosition()[2])
}

func TestApplyNullDeltaElementsKeepAxes(t *testing.T) {
	s, _ := newTestSession(t)
	u, err := ParseUpdate(map[string]any{
		KeyViewPosition: []any{nil, nil, -2},
		KeyCameraDelta:  []any{nil, nil, 0.5},
	}, nil)
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, s.Apply(u))
	}

	v, ok := s.Camera().ViewPosition()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -3.5}, v)
}

func TestPushAndSync(t *testing.T) {
	s, _ := newTestSession(t, WithQueueSize(2))

	assert.True(t, s.Push(Update{ViewPosition: At(1, 1, 1)}))
	assert.True(t, s.Push(Update{ViewPosition: At(2, 2, 2)}))
	assert.False(t, s.Push(Update{ViewPosition: At(3, 3, 3)}), "queue full")

	v, _ := s.Camera().ViewPosition()
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, v, "nothing applied before Sync")

	assert.Equal(t, 2, s.Sync())
	v, _ = s.Camera().ViewPosition()
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, v)
	assert.Zero(t, s.Sync())
}

func TestRenderMono(t *testing.T) {
	s, rec := newTestSession(t)

	s.RenderMono(640, 480, 0.5)

	viewports := rec.Named("Viewport")
	require.Len(t, viewports, 1)
	assert.Equal(t, []any{0, 0, 640, 480}, viewports[0].Args)
	assert.Equal(t, 2, rec.Count("DrawElements"))

	want := common.Perspective(common.DegToRad(45), 640.0/480.0, 1, 2000)
	matrices := rec.Named("UniformMatrix4fv")
	require.NotEmpty(t, matrices)
	assert.Equal(t, [16]float32(want), matrices[0].Args[1])

	assert.InDelta(t, 0.5, s.Camera().Rotation(), 1e-6)
}

func TestRenderMonoAdvancesBeforeDrawing(t *testing.T) {
	s, rec := newTestSession(t)

	s.RenderMono(640, 480, 1)

	cube := s.Drawables()[0]
	matrices := rec.Named("UniformMatrix4fv")
	require.GreaterOrEqual(t, len(matrices), 3)
	assert.Equal(t, [16]float32(scene.WorldMatrix(cube, 1)), matrices[2].Args[1])
}

func TestRenderStereoSharesOneAdvance(t *testing.T) {
	display := stereo.NewSimulatedDisplay(immediateFrames{}, stereo.WithEyeResolution(400, 300))
	adapter := stereo.NewAdapter(stereo.WithDisplay(display))
	s, rec := newTestSession(t, WithCamera(camera.NewState()))

	require.NoError(t, s.RenderStereo(adapter, 800, 300, 0.25))

	viewports := rec.Named("Viewport")
	require.Len(t, viewports, 3)
	assert.Equal(t, []any{0, 0, 800, 300}, viewports[0].Args)
	assert.Equal(t, []any{0, 0, 400, 300}, viewports[1].Args)
	assert.Equal(t, []any{400, 0, 400, 300}, viewports[2].Args)
	assert.Equal(t, 4, rec.Count("DrawElements"))
	assert.Equal(t, 1, rec.Count("Clear"))
	assert.Equal(t, 1, display.Submitted())
	assert.InDelta(t, 0.25, s.Camera().Rotation(), 1e-6)

	cube := s.Drawables()[0]
	matrices := rec.Named("UniformMatrix4fv")
	require.Len(t, matrices, 12)
	want := [16]float32(scene.WorldMatrix(cube, 0.25))
	assert.Equal(t, want, matrices[2].Args[1], "left eye")
	assert.Equal(t, want, matrices[8].Args[1], "right eye")
}

func TestRenderStereoError(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.RenderStereo(failingEyes{err: stereo.ErrNoDisplay}, 800, 300, 0.25)
	assert.ErrorIs(t, err, stereo.ErrNoDisplay)
	assert.InDelta(t, 0.25, s.Camera().Rotation(), 1e-6)
}

func TestReleaseDeletesOwnedProgram(t *testing.T) {
	s, rec := newTestSession(t)
	p := s.DefaultProgram()

	s.Release()
	assert.Empty(t, s.Drawables())
	deleted := rec.Named("DeleteProgram")
	require.Len(t, deleted, 1)
	assert.Equal(t, []any{p}, deleted[0].Args)
}
