package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device/devicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScene(t *testing.T) {
	rec := devicetest.NewRecorder()

	drawables, err := Build(rec, DefaultRegistry(), DefaultDrawables)
	require.NoError(t, err)
	require.Len(t, drawables, 2)

	cube, backdrop := drawables[0], drawables[1]
	assert.Equal(t, "cube", cube.Name)
	assert.Equal(t, 36, cube.IndexCount)
	require.NotNil(t, cube.Rotation)
	assert.Nil(t, cube.Orientation)

	assert.Equal(t, "backdrop", backdrop.Name)
	assert.Equal(t, 36, backdrop.IndexCount)
	assert.Nil(t, backdrop.Rotation)
	require.NotNil(t, backdrop.Orientation)

	for _, d := range drawables {
		for _, b := range d.Buffers() {
			assert.NotZero(t, b)
		}
	}
	assert.Equal(t, 6, rec.Count("NewArrayBuffer"))
	assert.Equal(t, 2, rec.Count("NewIndexBuffer"))
}

func TestBoxBufferSizes(t *testing.T) {
	rec := devicetest.NewRecorder()
	_, err := Cube(rec)
	require.NoError(t, err)

	arrays := rec.Named("NewArrayBuffer")
	require.Len(t, arrays, 3)
	assert.Equal(t, 24*3, arrays[0].Args[0], "positions")
	assert.Equal(t, 24*3, arrays[1].Args[0], "normals")
	assert.Equal(t, 24*4, arrays[2].Args[0], "colors")
	assert.Equal(t, 36, rec.Named("NewIndexBuffer")[0].Args[0])
}

func TestBuildUnknownDrawable(t *testing.T) {
	rec := devicetest.NewRecorder()

	_, err := Build(rec, DefaultRegistry(), []string{"cube", "teapot"})
	require.ErrorIs(t, err, ErrUnknownDrawable)
	assert.Zero(t, rec.Count("NewArrayBuffer"), "names are resolved before anything is built")
}

func TestBuildAllReleasesPartialBuild(t *testing.T) {
	rec := devicetest.NewRecorder()
	boom := errors.New("boom")
	failing := func(device.Builder) (Drawable, error) { return Drawable{}, boom }

	_, err := BuildAll(rec, []DrawableFactory{Cube, failing})
	require.ErrorIs(t, err, boom)

	for b := device.Buffer(1); b <= 4; b++ {
		assert.True(t, rec.Deleted(b), "buffer %d", b)
	}
}

func TestBuildBoxCleansUpOnBufferError(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.BufferErr = errors.New("out of memory")

	_, err := Backdrop(rec)
	require.ErrorIs(t, err, rec.BufferErr)
	assert.Zero(t, rec.Count("DeleteBuffers"))
}

func TestDefaultProgram(t *testing.T) {
	rec := devicetest.NewRecorder()
	p, err := DefaultProgram(rec)
	require.NoError(t, err)
	assert.NotZero(t, p)

	assert.Contains(t, VertexShaderSource, AttribPosition)
	assert.Contains(t, VertexShaderSource, UniformModelView)
	assert.Contains(t, FragmentShaderSource, UniformTexture)

	rec.LinkErr = errors.New("syntax error")
	_, err = DefaultProgram(rec)
	require.ErrorIs(t, err, rec.LinkErr)
}
