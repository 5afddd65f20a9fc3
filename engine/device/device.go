// Package device defines the immediate-mode graphics contract the renderer draws through.
package device

import "errors"

// ErrNoContext is returned when no graphics context can be initialised.
var ErrNoContext = errors.New("device: no graphics context available")

// Buffer is an opaque GPU buffer handle. Zero means "no buffer".
type Buffer uint32

// Program is an opaque linked shader program handle. Zero means "no program".
type Program uint32

// Location is an attribute or uniform location within a program. Negative means absent.
type Location int32

// Valid reports whether the location refers to an active attribute or uniform.
func (l Location) Valid() bool {
	return l >= 0
}

// BufferTarget selects the binding point for BindBuffer.
type BufferTarget int

const (
	// ArrayBuffer is the vertex attribute binding point.
	ArrayBuffer BufferTarget = iota
	// ElementArrayBuffer is the index binding point.
	ElementArrayBuffer
)

// Capability is a fixed-function feature toggled with Enable.
type Capability int

const (
	// CullFace enables back-face culling.
	CullFace Capability = iota
	// DepthTest enables depth testing.
	DepthTest
)

// DepthFunc selects the depth comparison function.
type DepthFunc int

const (
	// DepthLessEqual passes fragments whose depth is less than or equal to the stored depth.
	DepthLessEqual DepthFunc = iota
	// DepthLess passes fragments whose depth is strictly less than the stored depth.
	DepthLess
)

// ClearMask selects which buffers Clear resets.
type ClearMask int

const (
	// ClearColor resets the color buffer.
	ClearColor ClearMask = 1 << iota
	// ClearDepth resets the depth buffer.
	ClearDepth
)

// Device is the immediate-mode raster API the scene is drawn through.
// All methods must be called from the thread that owns the graphics context.
type Device interface {
	// ClearColor sets the color used by Clear.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	ClearColor(r, g, b, a float32)

	// Clear resets the buffers selected by mask.
	//
	// Parameters:
	//   - mask: bitwise OR of ClearColor and ClearDepth
	Clear(mask ClearMask)

	// Viewport restricts drawing to the given rectangle of the surface.
	//
	// Parameters:
	//   - x, y: lower-left corner in pixels
	//   - width, height: size in pixels
	Viewport(x, y, width, height int)

	// Enable turns on a fixed-function capability.
	Enable(c Capability)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn DepthFunc)

	// UseProgram makes p the active program for subsequent draws.
	UseProgram(p Program)

	// AttribLocation looks up a vertex attribute by name.
	//
	// Returns:
	//   - Location: the location, or a negative value when the program has no such attribute
	AttribLocation(p Program, name string) Location

	// UniformLocation looks up a uniform by name.
	//
	// Returns:
	//   - Location: the location, or a negative value when the program has no such uniform
	UniformLocation(p Program, name string) Location

	// EnableVertexAttribArray enables the attribute at loc for the next draw.
	EnableVertexAttribArray(loc Location)

	// BindBuffer binds b to target. Binding zero unbinds.
	BindBuffer(target BufferTarget, b Buffer)

	// VertexAttribPointer describes how the attribute at loc reads float components
	// from the currently bound array buffer.
	//
	// Parameters:
	//   - loc: attribute location
	//   - components: number of float components per vertex (1-4)
	//   - normalized: whether fixed-point data is normalized
	//   - stride: byte stride between vertices (0 = tightly packed)
	//   - offset: byte offset of the first component
	VertexAttribPointer(loc Location, components int, normalized bool, stride, offset int)

	// UniformMatrix4fv uploads a column-major 4x4 matrix.
	UniformMatrix4fv(loc Location, m [16]float32)

	// Uniform3fv uploads a 3-component vector.
	Uniform3fv(loc Location, v [3]float32)

	// Uniform1i uploads an integer (sampler units included).
	Uniform1i(loc Location, v int32)

	// DrawElements issues an indexed triangle draw reading count uint16 indices
	// from the bound element array buffer, starting at byte offset.
	DrawElements(count, offset int)
}

// Builder extends Device with resource creation. Drawable factories and the
// default shader program are built through it; the per-frame path only needs Device.
type Builder interface {
	Device

	// NewArrayBuffer uploads float vertex data into a new static array buffer.
	//
	// Returns:
	//   - Buffer: the new buffer handle
	//   - error: error if the buffer could not be created
	NewArrayBuffer(data []float32) (Buffer, error)

	// NewIndexBuffer uploads uint16 index data into a new static element array buffer.
	//
	// Returns:
	//   - Buffer: the new buffer handle
	//   - error: error if the buffer could not be created
	NewIndexBuffer(data []uint16) (Buffer, error)

	// LinkProgram compiles and links a vertex/fragment shader pair.
	//
	// Returns:
	//   - Program: the linked program
	//   - error: the compile or link log on failure
	LinkProgram(vertexSource, fragmentSource string) (Program, error)

	// DeleteBuffers releases buffers created by this builder.
	DeleteBuffers(buffers ...Buffer)

	// DeleteProgram releases a program created by this builder.
	DeleteProgram(p Program)
}
