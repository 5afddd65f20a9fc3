package scene

import (
	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader interface names looked up in every program.
const (
	AttribPosition = "aVertexPosition"
	AttribNormal   = "aVertexNormal"
	AttribColor    = "aVertexColor"

	UniformProjection          = "uProjectionMatrix"
	UniformModelView           = "uModelViewMatrix"
	UniformWorld               = "uWorldMatrix"
	UniformTexture             = "uTexture"
	UniformWorldCameraPosition = "uWorldCameraPosition"
)

// FrameContext is the per-call input of Draw. It is not retained.
type FrameContext struct {
	// Projection is the projection matrix for this draw.
	Projection mgl32.Mat4

	// StereoView, when set, is pre-multiplied into the camera view matrix.
	StereoView *mgl32.Mat4

	// DeltaTime is the elapsed frame time in seconds.
	DeltaTime float32
}

// programInfo caches the locations a program exposes.
type programInfo struct {
	position, normal, color attribute
	projection, modelView   device.Location
	world, texture          device.Location
	worldCameraPosition     device.Location
}

// attribute is a vertex attribute location and its float component count.
type attribute struct {
	loc        device.Location
	components int
}

type drawerImpl struct {
	defaultProgram device.Program
	programs       map[device.Program]*programInfo
}

// Drawer issues the draw calls for a list of drawables.
// It caches attribute and uniform locations per program, so a program must be
// forgotten through Forget before its handle is reused.
type Drawer interface {
	// PrepareFrame sets the viewport to the whole surface, enables culling and depth
	// testing, and clears color and depth.
	//
	// Parameters:
	//   - dev: the device to draw through
	//   - width, height: surface size in pixels
	PrepareFrame(dev device.Device, width, height int)

	// Draw binds and draws every drawable with matrices derived from frame and cam.
	//
	// Parameters:
	//   - dev: the device to draw through
	//   - frame: projection and optional stereo view for this draw
	//   - cam: camera state providing the eye, the world camera, and the rotation angle
	//   - drawables: the drawables to draw, in order
	Draw(dev device.Device, frame FrameContext, cam *camera.State, drawables []Drawable)

	// DefaultProgram returns the program used by drawables without an override.
	DefaultProgram() device.Program

	// SetDefaultProgram replaces the program used by drawables without an override.
	SetDefaultProgram(p device.Program)

	// Forget drops cached locations for p.
	Forget(p device.Program)
}

var _ Drawer = &drawerImpl{}

// NewDrawer creates a Drawer.
//
// Parameters:
//   - options: functional options to configure the drawer
//
// Returns:
//   - Drawer: the newly created drawer
func NewDrawer(options ...DrawerBuilderOption) Drawer {
	d := &drawerImpl{
		programs: make(map[device.Program]*programInfo),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *drawerImpl) DefaultProgram() device.Program {
	return d.defaultProgram
}

func (d *drawerImpl) SetDefaultProgram(p device.Program) {
	d.defaultProgram = p
}

func (d *drawerImpl) Forget(p device.Program) {
	delete(d.programs, p)
}

func (d *drawerImpl) PrepareFrame(dev device.Device, width, height int) {
	dev.Viewport(0, 0, width, height)
	dev.Enable(device.CullFace)
	dev.Enable(device.DepthTest)
	dev.Clear(device.ClearColor | device.ClearDepth)
	dev.DepthFunc(device.DepthLessEqual)
}

func (d *drawerImpl) Draw(dev device.Device, frame FrameContext, cam *camera.State, drawables []Drawable) {
	view := ViewMatrix(cam.MonoPosition(), frame.StereoView)
	worldCamera := cam.WorldCameraPosition()

	for _, dr := range drawables {
		program := dr.Program
		if program == 0 {
			program = d.defaultProgram
		}
		if program == 0 || dr.IndexCount <= 0 {
			continue
		}
		info := d.info(dev, program)

		dev.UseProgram(program)

		bindAttribute(dev, info.color, dr.Color)
		bindAttribute(dev, info.position, dr.Position)
		bindAttribute(dev, info.normal, dr.Normal)

		world := WorldMatrix(dr, cam.Rotation())

		setMatrix(dev, info.projection, frame.Projection)
		setMatrix(dev, info.modelView, view)
		setMatrix(dev, info.world, world)
		if info.worldCameraPosition.Valid() {
			dev.Uniform3fv(info.worldCameraPosition, [3]float32(worldCamera))
		}
		if info.texture.Valid() {
			dev.Uniform1i(info.texture, 0)
		}

		dev.BindBuffer(device.ElementArrayBuffer, dr.Index)
		dev.DrawElements(dr.IndexCount, 0)
		dev.BindBuffer(device.ArrayBuffer, 0)
		dev.BindBuffer(device.ElementArrayBuffer, 0)
	}
}

// ViewMatrix composes the view matrix for an eye looking at the origin.
// A stereo view, when present, is pre-multiplied: stereoView * cameraView.
//
// Parameters:
//   - eye: camera position in world space
//   - stereoView: optional per-eye view matrix from a stereo display
//
// Returns:
//   - mgl32.Mat4: the composed view matrix
func ViewMatrix(eye mgl32.Vec3, stereoView *mgl32.Mat4) mgl32.Mat4 {
	view := common.CameraView(eye)
	if stereoView != nil {
		view = stereoView.Mul4(view)
	}
	return view
}

// WorldMatrix computes a drawable's world transform: identity rotated about X, Y and Z by
// rotation * rate when the drawable animates, or by its orientation correction otherwise.
//
// Parameters:
//   - dr: the drawable
//   - rotation: the accumulated rotation angle
//
// Returns:
//   - mgl32.Mat4: the world matrix
func WorldMatrix(dr Drawable, rotation float32) mgl32.Mat4 {
	world := mgl32.Ident4()
	switch {
	case dr.Rotation != nil:
		r := *dr.Rotation
		world = common.RotateXYZ(world, rotation*r[0], rotation*r[1], rotation*r[2])
	case dr.Orientation != nil:
		o := *dr.Orientation
		world = common.RotateXYZ(world, o[0], o[1], o[2])
	}
	return world
}

// info returns the cached locations for program, looking them up on first use.
func (d *drawerImpl) info(dev device.Device, program device.Program) *programInfo {
	if info, ok := d.programs[program]; ok {
		return info
	}
	info := &programInfo{
		position:            attribute{loc: dev.AttribLocation(program, AttribPosition), components: 3},
		normal:              attribute{loc: dev.AttribLocation(program, AttribNormal), components: 3},
		color:               attribute{loc: dev.AttribLocation(program, AttribColor), components: 4},
		projection:          dev.UniformLocation(program, UniformProjection),
		modelView:           dev.UniformLocation(program, UniformModelView),
		world:               dev.UniformLocation(program, UniformWorld),
		texture:             dev.UniformLocation(program, UniformTexture),
		worldCameraPosition: dev.UniformLocation(program, UniformWorldCameraPosition),
	}
	d.programs[program] = info
	return info
}

func bindAttribute(dev device.Device, attr attribute, b device.Buffer) {
	if !attr.loc.Valid() || b == 0 {
		return
	}
	dev.EnableVertexAttribArray(attr.loc)
	dev.BindBuffer(device.ArrayBuffer, b)
	dev.VertexAttribPointer(attr.loc, attr.components, false, 0, 0)
}

func setMatrix(dev device.Device, loc device.Location, m mgl32.Mat4) {
	if !loc.Valid() {
		return
	}
	dev.UniformMatrix4fv(loc, [16]float32(m))
}
