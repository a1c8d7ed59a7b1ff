package mathutil

import "github.com/chewxy/math32"

// Eps is the base finite-difference step used by the field estimators.
const Eps float32 = 0.0001

// InverseGamma encodes linear color for display.
const InverseGamma float32 = 1.0 / 2.2

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math32.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float32) float32 {
	return r * 180 / math32.Pi
}
