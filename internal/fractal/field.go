package fractal

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
)

// ErrDegenerateNormal means every finite-difference attempt at a reported hit
// produced a near-zero gradient. The point is not actually on the surface.
var ErrDegenerateNormal = errors.New("fractal: degenerate normal")

const (
	normalAttempts = 5
	gradientFloor  = 1e-10
	occlusionSteps = 5
)

// Estimator is a signed-distance oracle.
type Estimator interface {
	Distance(p mathutil.Vec3) float32
}

// Field evaluates the Mandelbox distance field and the quantities derived from it.
// It holds no mutable state and is safe for concurrent use.
type Field struct {
	params Params
}

// NewField returns a Field over p, with unset parameters defaulted.
func NewField(p Params) *Field {
	return &Field{params: p.WithDefaults()}
}

// Params returns the parameters the field was built with.
func (f *Field) Params() Params {
	return f.params
}

// Normal estimates the unit surface normal at p by central differences.
// The step starts at 2·Eps and widens by Eps per retry.
func (f *Field) Normal(p mathutil.Vec3) (mathutil.Vec3, error) {
	h := 2 * mathutil.Eps
	for attempt := 0; attempt < normalAttempts; attempt++ {
		g := Gradient(f, p, h)
		if l := g.Len(); l > gradientFloor && !math32.IsNaN(l) && !math32.IsInf(l, 0) {
			return g.Mul(1 / l), nil
		}
		h += mathutil.Eps
	}
	return mathutil.Vec3{}, fmt.Errorf("%w at (%g, %g, %g)", ErrDegenerateNormal, p[0], p[1], p[2])
}

// Gradient returns the unnormalized central-difference gradient of e at p.
func Gradient(e Estimator, p mathutil.Vec3, h float32) mathutil.Vec3 {
	dx := mathutil.Vec3{h, 0, 0}
	dy := mathutil.Vec3{0, h, 0}
	dz := mathutil.Vec3{0, 0, h}
	return mathutil.Vec3{
		e.Distance(p.Add(dx)) - e.Distance(p.Sub(dx)),
		e.Distance(p.Add(dy)) - e.Distance(p.Sub(dy)),
		e.Distance(p.Add(dz)) - e.Distance(p.Sub(dz)),
	}
}

// Occlusion marches a few short steps outward along n and returns the
// fraction of the unobstructed travel achieved, in [0, 1]. 1 means open.
func (f *Field) Occlusion(p, n mathutil.Vec3, radius float32) float32 {
	return Occlusion(f, p, n, radius)
}

// Occlusion is the ambient occlusion estimate for any distance oracle.
func Occlusion(e Estimator, p, n mathutil.Vec3, radius float32) float32 {
	if radius <= 0 {
		return 1
	}
	step := radius / occlusionSteps
	travel := step
	for i := 0; i < occlusionSteps; i++ {
		d := e.Distance(p.Add(n.Mul(travel)))
		travel += math32.Max(0, math32.Min(d, step))
	}
	return math32.Min(travel/(step*(occlusionSteps+1)), 1)
}
