// Package opengl implements device.Builder on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// glDevice implements device.Builder on top of an OpenGL 4.1 core context.
type glDevice struct {
	// vao is the single vertex array object kept bound for the device's lifetime.
	// Core profiles refuse attribute setup without one.
	vao uint32
}

var _ device.Builder = &glDevice{}

// NewDevice loads the OpenGL function pointers for the context current on the calling thread.
// The window owning the context must have made it current first.
//
// Returns:
//   - device.Builder: the OpenGL device
//   - error: an error wrapping device.ErrNoContext if OpenGL could not be initialised
func NewDevice() (device.Builder, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", device.ErrNoContext, err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	d := &glDevice{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

func (d *glDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *glDevice) Clear(mask device.ClearMask) {
	var bits uint32
	if mask&device.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&device.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *glDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *glDevice) Enable(c device.Capability) {
	switch c {
	case device.CullFace:
		gl.Enable(gl.CULL_FACE)
	case device.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (d *glDevice) DepthFunc(fn device.DepthFunc) {
	switch fn {
	case device.DepthLess:
		gl.DepthFunc(gl.LESS)
	default:
		gl.DepthFunc(gl.LEQUAL)
	}
}

func (d *glDevice) UseProgram(p device.Program) {
	gl.UseProgram(uint32(p))
}

func (d *glDevice) AttribLocation(p device.Program, name string) device.Location {
	return device.Location(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *glDevice) UniformLocation(p device.Program, name string) device.Location {
	return device.Location(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *glDevice) EnableVertexAttribArray(loc device.Location) {
	if !loc.Valid() {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
}

func (d *glDevice) BindBuffer(target device.BufferTarget, b device.Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

func (d *glDevice) VertexAttribPointer(loc device.Location, components int, normalized bool, stride, offset int) {
	if !loc.Valid() {
		return
	}
	gl.VertexAttribPointer(uint32(loc), int32(components), gl.FLOAT, normalized, int32(stride), gl.PtrOffset(offset))
}

func (d *glDevice) UniformMatrix4fv(loc device.Location, m [16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (d *glDevice) Uniform3fv(loc device.Location, v [3]float32) {
	gl.Uniform3fv(int32(loc), 1, &v[0])
}

func (d *glDevice) Uniform1i(loc device.Location, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (d *glDevice) DrawElements(count, offset int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, gl.PtrOffset(offset))
}

func (d *glDevice) NewArrayBuffer(data []float32) (device.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("opengl: empty vertex data")
	}
	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ARRAY_BUFFER, b)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return device.Buffer(b), nil
}

func (d *glDevice) NewIndexBuffer(data []uint16) (device.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("opengl: empty index data")
	}
	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return device.Buffer(b), nil
}

func (d *glDevice) LinkProgram(vertexSource, fragmentSource string) (device.Program, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}
	return device.Program(program), nil
}

func (d *glDevice) DeleteBuffers(buffers ...device.Buffer) {
	for _, b := range buffers {
		if b == 0 {
			continue
		}
		id := uint32(b)
		gl.DeleteBuffers(1, &id)
	}
}

func (d *glDevice) DeleteProgram(p device.Program) {
	if p == 0 {
		return
	}
	gl.DeleteProgram(uint32(p))
}

func glTarget(t device.BufferTarget) uint32 {
	if t == device.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
