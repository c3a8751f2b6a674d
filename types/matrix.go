package types

import "github.com/go-gl/mathgl/mgl32"

// A column-major 4x4 matrix.
type Mat4 mgl32.Mat4

// Create identity matrix.
func Ident4() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Create a translation matrix.
func Translate4(t Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(t[0], t[1], t[2]))
}

// Create a scale matrix.
func Scale4(s Vec3) Mat4 {
	return Mat4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Create a rotation matrix around the X axis (angle in radians).
func RotateX4(angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DX(angle))
}

// Create a rotation matrix around the Y axis (angle in radians).
func RotateY4(angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DY(angle))
}

// Create a rotation matrix around the Z axis (angle in radians).
func RotateZ4(angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DZ(angle))
}

// Compose an object-to-world transformation: M = T * Rx * Ry * Rz * S.
// Rotation angles are specified in degrees and applied X first, then Y, then Z.
func Transform4(translation, rotationDeg, scale Vec3) Mat4 {
	return Translate4(translation).
		Mul4(RotateX4(mgl32.DegToRad(rotationDeg[0]))).
		Mul4(RotateY4(mgl32.DegToRad(rotationDeg[1]))).
		Mul4(RotateZ4(mgl32.DegToRad(rotationDeg[2]))).
		Mul4(Scale4(scale))
}

// Multiply with another matrix.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(m2)))
}

// Multiply with a 4 component column vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// Transform a point (w = 1).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Calculate the matrix inverse. Singular matrices yield the zero matrix.
func (m Mat4) Inv() Mat4 {
	return Mat4(mgl32.Mat4(m).Inv())
}

// Check whether two matrices are equal within eps.
func (m Mat4) ApproxEqual(m2 Mat4, eps float32) bool {
	return mgl32.Mat4(m).ApproxEqualThreshold(mgl32.Mat4(m2), eps)
}
