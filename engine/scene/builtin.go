package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownDrawable is returned when a drawable name has no factory in the registry.
var ErrUnknownDrawable = errors.New("scene: unknown drawable")

// VertexShaderSource is the GLSL vertex stage of the default program.
//
//go:embed assets/scene.vert
var VertexShaderSource string

// FragmentShaderSource is the GLSL fragment stage of the default program.
//
//go:embed assets/scene.frag
var FragmentShaderSource string

// DefaultDrawables lists the hard-coded scene in draw order.
var DefaultDrawables = []string{"cube", "backdrop"}

// backdropScale is the half-extent of the environment box around the scene.
const backdropScale = 20

// DefaultRegistry returns the factories for the built-in drawables.
func DefaultRegistry() Registry {
	return Registry{
		"cube":     Cube,
		"backdrop": Backdrop,
	}
}

// DefaultProgram links the built-in shaders on b.
//
// Returns:
//   - device.Program: the linked program
//   - error: error if compilation or linking fails
func DefaultProgram(b device.Builder) (device.Program, error) {
	p, err := b.LinkProgram(VertexShaderSource, FragmentShaderSource)
	if err != nil {
		return 0, fmt.Errorf("scene: default program: %w", err)
	}
	return p, nil
}

// Build resolves each name in reg and builds the drawables in order.
// On failure every drawable already built is released.
//
// Parameters:
//   - b: the device to build on
//   - reg: the factory registry
//   - names: drawable names in draw order
//
// Returns:
//   - []Drawable: the built drawables
//   - error: an error wrapping ErrUnknownDrawable, or a factory error
func Build(b device.Builder, reg Registry, names []string) ([]Drawable, error) {
	factories := make([]DrawableFactory, 0, len(names))
	for _, name := range names {
		f, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDrawable, name)
		}
		factories = append(factories, f)
	}
	return BuildAll(b, factories)
}

// BuildAll invokes each factory in order. On failure every drawable already built is released.
//
// Parameters:
//   - b: the device to build on
//   - factories: the factories to invoke
//
// Returns:
//   - []Drawable: the built drawables
//   - error: the first factory error
func BuildAll(b device.Builder, factories []DrawableFactory) ([]Drawable, error) {
	out := make([]Drawable, 0, len(factories))
	for i, f := range factories {
		d, err := f(b)
		if err != nil {
			Release(b, out)
			return nil, fmt.Errorf("scene: drawable %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Release deletes the buffers of every drawable.
func Release(b device.Builder, drawables []Drawable) {
	for _, d := range drawables {
		b.DeleteBuffers(d.Buffers()...)
	}
}

// Cube builds a unit cube with one flat color per face that spins about Y and Z.
func Cube(b device.Builder) (Drawable, error) {
	colors := [6][4]float32{
		{1.0, 1.0, 1.0, 1.0}, // front: white
		{1.0, 0.0, 0.0, 1.0}, // back: red
		{0.0, 1.0, 0.0, 1.0}, // top: green
		{0.0, 0.0, 1.0, 1.0}, // bottom: blue
		{1.0, 1.0, 0.0, 1.0}, // right: yellow
		{1.0, 0.0, 1.0, 1.0}, // left: purple
	}
	d, err := buildBox(b, "cube", 1, colors, false)
	if err != nil {
		return Drawable{}, err
	}
	d.Rotation = &mgl32.Vec3{0, 0.7, 1}
	return d, nil
}

// Backdrop builds the environment box seen from inside. Its faces come out upside-down
// relative to the cube's, so it carries a fixed quarter turn about Z.
func Backdrop(b device.Builder) (Drawable, error) {
	colors := [6][4]float32{
		{0.10, 0.12, 0.20, 1.0},
		{0.10, 0.12, 0.20, 1.0},
		{0.20, 0.24, 0.36, 1.0},
		{0.04, 0.04, 0.06, 1.0},
		{0.12, 0.10, 0.18, 1.0},
		{0.12, 0.10, 0.18, 1.0},
	}
	d, err := buildBox(b, "backdrop", backdropScale, colors, true)
	if err != nil {
		return Drawable{}, err
	}
	d.Orientation = &mgl32.Vec3{0, 0, math.Pi / 2}
	return d, nil
}

// boxFaces holds, per face, the outward normal and the four corners in counter-clockwise order.
var boxFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
}

// buildBox uploads a box of the given half-extent. An inward box flips normals and winding
// so back-face culling keeps the inside visible.
func buildBox(b device.Builder, name string, scale float32, colors [6][4]float32, inward bool) (Drawable, error) {
	positions := make([]float32, 0, 6*4*3)
	normals := make([]float32, 0, 6*4*3)
	vertexColors := make([]float32, 0, 6*4*4)
	indices := make([]uint16, 0, 6*6)

	sign := float32(1)
	if inward {
		sign = -1
	}
	for f, face := range boxFaces {
		for _, c := range face.corners {
			positions = append(positions, c[0]*scale, c[1]*scale, c[2]*scale)
			normals = append(normals, face.normal[0]*sign, face.normal[1]*sign, face.normal[2]*sign)
			vertexColors = append(vertexColors, colors[f][:]...)
		}
		base := uint16(f * 4)
		if inward {
			indices = append(indices, base, base+2, base+1, base, base+3, base+2)
		} else {
			indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		}
	}

	d := Drawable{Name: name, IndexCount: len(indices)}
	var err error
	if d.Position, err = b.NewArrayBuffer(positions); err != nil {
		return Drawable{}, fmt.Errorf("%s positions: %w", name, err)
	}
	if d.Normal, err = b.NewArrayBuffer(normals); err != nil {
		b.DeleteBuffers(d.Position)
		return Drawable{}, fmt.Errorf("%s normals: %w", name, err)
	}
	if d.Color, err = b.NewArrayBuffer(vertexColors); err != nil {
		b.DeleteBuffers(d.Position, d.Normal)
		return Drawable{}, fmt.Errorf("%s colors: %w", name, err)
	}
	if d.Index, err = b.NewIndexBuffer(indices); err != nil {
		b.DeleteBuffers(d.Position, d.Normal, d.Color)
		return Drawable{}, fmt.Errorf("%s indices: %w", name, err)
	}
	return d, nil
}
