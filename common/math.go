package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Origin is the world-space point every camera in the scene looks at.
var Origin = mgl32.Vec3{0, 0, 0}

// WorldUp is the up vector used when building camera matrices.
var WorldUp = mgl32.Vec3{0, 1, 0}

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(deg float32) float32 {
	return deg * (math.Pi / 180.0)
}

// Perspective creates an OpenGL-convention perspective projection matrix (clip space depth [-1, 1]).
// A non-positive aspect ratio is treated as 1 so a minimised surface never produces NaNs.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(fovY, aspect, near, far)
}

// Aspect returns width / height, or 1 when the height is zero.
//
// Parameters:
//   - width, height: surface dimensions in pixels
//
// Returns:
//   - float32: the aspect ratio
func Aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// CameraView builds the view matrix for a camera at eye looking at the origin with +Y up.
// The look-at matrix is inverted before use, so the result places the scene in front of
// the eye regardless of which side of the origin it sits on.
// An eye at the origin yields the identity; an eye on the Y axis uses +Z as its up vector.
//
// Parameters:
//   - eye: camera position in world space
//
// Returns:
//   - mgl32.Mat4: the view matrix (column-major)
func CameraView(eye mgl32.Vec3) mgl32.Mat4 {
	if eye.Len() == 0 {
		return mgl32.Ident4()
	}
	up := WorldUp
	if eye.Cross(up).Len() == 0 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(eye, Origin, up).Inv()
}

// RotateXYZ post-multiplies m by rotations about X, then Y, then Z.
// Matches the column-major rotate-in-place convention: result = m * Rx * Ry * Rz.
//
// Parameters:
//   - m: the matrix to rotate
//   - x, y, z: rotation angles in radians about each axis
//
// Returns:
//   - mgl32.Mat4: the rotated matrix
func RotateXYZ(m mgl32.Mat4, x, y, z float32) mgl32.Mat4 {
	if x != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(x))
	}
	if y != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(y))
	}
	if z != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(z))
	}
	return m
}
