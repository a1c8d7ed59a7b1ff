package fractal

import (
	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
)

// BoxFold reflects each axis of p about the faces of the cube [-limit, limit]³.
func BoxFold(p mathutil.Vec3, limit float32) mathutil.Vec3 {
	return mathutil.Clamp(p, -limit, limit).Mul(2).Sub(p)
}

// SphereFoldFactor returns the factor the sphere fold applies to a point with
// squared radius r2: a fixed linear rescale inside minR2, a spherical inversion
// up to fixedR2, identity beyond.
func SphereFoldFactor(r2, minR2, fixedR2 float32) float32 {
	switch {
	case r2 < minR2:
		return fixedR2 / minR2
	case r2 < fixedR2:
		return fixedR2 / r2
	default:
		return 1
	}
}

// SphereFold applies the sphere fold to p and the running derivative dr.
func SphereFold(p mathutil.Vec3, dr, minR2, fixedR2 float32) (mathutil.Vec3, float32) {
	k := SphereFoldFactor(p.Dot(p), minR2, fixedR2)
	return p.Mul(k), dr * k
}

// Distance estimates the distance from pos to the Mandelbox surface.
//
// The derivative dr tracks the Lipschitz bound of the iterated fold/scale map,
// so |p|/|dr| is a conservative Euclidean step.
func (f *Field) Distance(pos mathutil.Vec3) float32 {
	p := pos
	offset := pos
	dr := float32(1)
	scale := f.params.Scale
	absScale := math32.Abs(scale)

	for i := 0; i < f.params.Iterations; i++ {
		p = BoxFold(p, f.params.FoldLimit)
		p, dr = SphereFold(p, dr, f.params.MinRadius2, f.params.FixedRadius2)

		p = p.Mul(scale).Add(offset)
		dr = dr*absScale + 1
	}

	return p.Len() / math32.Abs(dr)
}

// Color returns the orbit-trap base color at pos, a unit vector in [0,1]³.
// Only the folds are iterated; the rescale is left out so the signature stays
// bounded.
func (f *Field) Color(pos mathutil.Vec3) mathutil.Vec3 {
	p := pos
	dr := float32(1)
	for i := 0; i < f.params.TrapIterations; i++ {
		p = BoxFold(p, f.params.FoldLimit)
		p, dr = SphereFold(p, dr, f.params.MinRadius2, f.params.FixedRadius2)
	}
	return mathutil.SafeNormalize(mathutil.Abs(p), 1e-12, mathutil.Splat(1/math32.Sqrt(3)))
}
