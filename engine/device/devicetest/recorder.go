// Package devicetest provides a recording device.Builder for tests that exercise
// drawing code without a graphics context.
package devicetest

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// Recorder implements device.Builder by recording every call.
// Attribute and uniform locations are assigned per (program, name) on first lookup;
// names listed in Missing resolve to -1.
type Recorder struct {
	Calls []Call

	// Missing lists attribute/uniform names the fake programs do not declare.
	Missing map[string]bool

	// LinkErr, when set, is returned by LinkProgram.
	LinkErr error

	// BufferErr, when set, is returned by NewArrayBuffer and NewIndexBuffer.
	BufferErr error

	Lookups int

	locations   map[string]device.Location
	nextBuffer  device.Buffer
	nextProgram device.Program
	deleted     map[device.Buffer]bool
}

var _ device.Builder = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Missing:   make(map[string]bool),
		locations: make(map[string]device.Location),
		deleted:   make(map[device.Buffer]bool),
	}
}

// Reset drops recorded calls while keeping handle and location assignments.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Lookups = 0
}

// Named returns the recorded calls with the given name, in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given name were recorded.
func (r *Recorder) Count(name string) int {
	return len(r.Named(name))
}

// Deleted reports whether b was released through DeleteBuffers.
func (r *Recorder) Deleted(b device.Buffer) bool {
	return r.deleted[b]
}

// Location returns the location previously assigned to name in program p, or -1.
func (r *Recorder) Location(p device.Program, name string) device.Location {
	if loc, ok := r.locations[fmt.Sprintf("%d/%s", p, name)]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) lookup(p device.Program, name string) device.Location {
	r.Lookups++
	if r.Missing[name] {
		return -1
	}
	key := fmt.Sprintf("%d/%s", p, name)
	if loc, ok := r.locations[key]; ok {
		return loc
	}
	loc := device.Location(len(r.locations))
	r.locations[key] = loc
	return loc
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask device.ClearMask) {
	r.record("Clear", mask)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Enable(c device.Capability) {
	r.record("Enable", c)
}

func (r *Recorder) DepthFunc(fn device.DepthFunc) {
	r.record("DepthFunc", fn)
}

func (r *Recorder) UseProgram(p device.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) AttribLocation(p device.Program, name string) device.Location {
	return r.lookup(p, name)
}

func (r *Recorder) UniformLocation(p device.Program, name string) device.Location {
	return r.lookup(p, name)
}

func (r *Recorder) EnableVertexAttribArray(loc device.Location) {
	r.record("EnableVertexAttribArray", loc)
}

func (r *Recorder) BindBuffer(target device.BufferTarget, b device.Buffer) {
	r.record("BindBuffer", target, b)
}

func (r *Recorder) VertexAttribPointer(loc device.Location, components int, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", loc, components, normalized, stride, offset)
}

func (r *Recorder) UniformMatrix4fv(loc device.Location, m [16]float32) {
	r.record("UniformMatrix4fv", loc, m)
}

func (r *Recorder) Uniform3fv(loc device.Location, v [3]float32) {
	r.record("Uniform3fv", loc, v)
}

func (r *Recorder) Uniform1i(loc device.Location, v int32) {
	r.record("Uniform1i", loc, v)
}

func (r *Recorder) DrawElements(count, offset int) {
	r.record("DrawElements", count, offset)
}

func (r *Recorder) NewArrayBuffer(data []float32) (device.Buffer, error) {
	return r.newBuffer("NewArrayBuffer", len(data))
}

func (r *Recorder) NewIndexBuffer(data []uint16) (device.Buffer, error) {
	return r.newBuffer("NewIndexBuffer", len(data))
}

func (r *Recorder) newBuffer(name string, n int) (device.Buffer, error) {
	if r.BufferErr != nil {
		return 0, r.BufferErr
	}
	if n == 0 {
		return 0, errors.New("devicetest: empty buffer data")
	}
	r.nextBuffer++
	r.record(name, n, r.nextBuffer)
	return r.nextBuffer, nil
}

func (r *Recorder) LinkProgram(vertexSource, fragmentSource string) (device.Program, error) {
	if r.LinkErr != nil {
		return 0, r.LinkErr
	}
	r.nextProgram++
	r.record("LinkProgram", r.nextProgram)
	return r.nextProgram, nil
}

func (r *Recorder) DeleteBuffers(buffers ...device.Buffer) {
	for _, b := range buffers {
		r.deleted[b] = true
	}
	r.record("DeleteBuffers", len(buffers))
}

func (r *Recorder) DeleteProgram(p device.Program) {
	r.record("DeleteProgram", p)
}
