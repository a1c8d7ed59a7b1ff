package mathutil

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3-component float32 vector (value type, stack-allocated).
type Vec3 = mgl32.Vec3

// Splat returns a vector with all components set to s.
func Splat(s float32) Vec3 {
	return Vec3{s, s, s}
}

// Clamp clamps every component of v to [lo, hi].
func Clamp(v Vec3, lo, hi float32) Vec3 {
	return Vec3{
		mgl32.Clamp(v[0], lo, hi),
		mgl32.Clamp(v[1], lo, hi),
		mgl32.Clamp(v[2], lo, hi),
	}
}

// Abs returns the component-wise absolute value.
func Abs(v Vec3) Vec3 {
	return Vec3{math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2])}
}

// Pow raises every component of v to e.
func Pow(v Vec3, e float32) Vec3 {
	return Vec3{math32.Pow(v[0], e), math32.Pow(v[1], e), math32.Pow(v[2], e)}
}

// MulElem returns the Hadamard product of a and b.
func MulElem(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// SafeNormalize returns v/|v|, or fallback when |v| is below eps.
func SafeNormalize(v Vec3, eps float32, fallback Vec3) Vec3 {
	l := v.Len()
	if l < eps {
		return fallback
	}
	return v.Mul(1 / l)
}
