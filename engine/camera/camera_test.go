package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePositionAdvancesTowardTarget(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{0, 0, 0}, []float32{1, 2, 3}, []float32{0.1, 0.1, 0.1})
	assert.InDeltaSlice(t, []float32{0.1, 0.1, 0.1}, got[:], 1e-6)
}

func TestUpdatePositionSnapsWhenTargetReached(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{0, 0, 0}, []float32{0, 0, 0}, []float32{5, 5, 5})
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, got)
}

func TestUpdatePositionWithoutDeltaReplaces(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{4, 5, 6}, []float32{1, -2, 3}, nil)
	assert.Equal(t, mgl32.Vec3{1, -2, 3}, got)
}

func TestUpdatePositionNeverOvershoots(t *testing.T) {
	tests := []struct {
		name    string
		current mgl32.Vec3
		target  []float32
		delta   []float32
	}{
		{"large step", mgl32.Vec3{0, 0, 0}, []float32{1, 1, 1}, []float32{10, 10, 10}},
		{"partial step", mgl32.Vec3{0.95, -3, 2}, []float32{1, -2.5, 2.05}, []float32{0.1, 1, 0.1}},
		{"already past", mgl32.Vec3{5, 5, 5}, []float32{1, 2, 3}, []float32{1, 1, 1}},
		{"negative target", mgl32.Vec3{-9, -9, -9}, []float32{-6, -6, -6}, []float32{2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := tt.current
			for range 50 {
				cur = UpdatePosition(cur, tt.target, tt.delta)
				for i := range 3 {
					assert.LessOrEqual(t, cur[i], tt.target[i], "axis %d", i)
				}
			}
			for i := range 3 {
				assert.Equal(t, tt.target[i], cur[i], "axis %d converges", i)
			}
		})
	}
}

func TestUpdatePositionUndefinedAxisIsUnlimited(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{0, 0, 0}, []float32{Undefined, 1}, []float32{2, 2, 2})
	assert.Equal(t, mgl32.Vec3{2, 1, 2}, got)
}

func TestUpdatePositionUndefinedDeltaDoesNotMove(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{1, 2, -5}, []float32{Undefined, 4, -2}, []float32{Undefined, Undefined, 0.5})
	assert.Equal(t, mgl32.Vec3{1, 2, -4.5}, got)

	got = UpdatePosition(mgl32.Vec3{1, 6, 0}, []float32{Undefined, 4}, []float32{Undefined, Undefined})
	assert.Equal(t, mgl32.Vec3{1, 4, 0}, got, "an axis past its target still snaps")
}

func TestUpdatePositionShortDeltaLeavesOtherAxes(t *testing.T) {
	got := UpdatePosition(mgl32.Vec3{1, 1, 1}, []float32{5, 5, 5}, []float32{1})
	assert.Equal(t, mgl32.Vec3{2, 1, 1}, got)
}

func TestMonoPositionDerivedFromWorldCamera(t *testing.T) {
	s := NewState(WithDerivedViewPosition(), WithWorldCameraPosition(0, 0, -9))
	assert.Equal(t, mgl32.Vec3{0, 0, -6}, s.MonoPosition())

	_, ok := s.ViewPosition()
	assert.False(t, ok)
}

func TestMonoPositionPrefersViewPosition(t *testing.T) {
	s := NewState(WithViewPosition(1, 2, 3))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.MonoPosition())
}

func TestDefaults(t *testing.T) {
	s := NewState()
	v, ok := s.ViewPosition()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, v)
	assert.Equal(t, mgl32.Vec3{0, 0, -2.5}, s.WorldCameraPosition())
	assert.Zero(t, s.Rotation())
}

func TestMoveViewFromDerivedPosition(t *testing.T) {
	s := NewState(WithDerivedViewPosition(), WithWorldCameraPosition(0, 0, -9))
	s.MoveView([]float32{0, 0, 0}, []float32{0, 0, 1})

	v, ok := s.ViewPosition()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, v)
}

func TestMoveWorldIndependentOfView(t *testing.T) {
	s := NewState()
	s.MoveWorld([]float32{0, 0, 0}, []float32{0, 0, 1})

	assert.Equal(t, mgl32.Vec3{0, 0, -1.5}, s.WorldCameraPosition())
	v, _ := s.ViewPosition()
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, v)
}

func TestAdvanceIsMonotonic(t *testing.T) {
	s := NewState()
	last := s.Rotation()
	for _, dt := range []float32{0.016, 0, -1, 0.5, 0.033} {
		s.Advance(dt)
		assert.GreaterOrEqual(t, s.Rotation(), last)
		last = s.Rotation()
	}
	assert.InDelta(t, 0.549, s.Rotation(), 1e-6)
}
