package march

import "mandelbox-renderer/internal/mathutil"

// Estimator is the distance oracle the marcher steps with.
type Estimator interface {
	Distance(p mathutil.Vec3) float32
}

// Limits bounds a single march.
type Limits struct {
	MaxSteps    int     `json:"max_steps"`
	MaxDistance float32 `json:"max_distance"`
}

// DefaultLimits returns the standard step and distance budget.
func DefaultLimits() Limits {
	return Limits{MaxSteps: 400, MaxDistance: 25}
}

// WithDefaults replaces non-positive fields with their defaults.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxSteps <= 0 {
		l.MaxSteps = d.MaxSteps
	}
	if l.MaxDistance <= 0 {
		l.MaxDistance = d.MaxDistance
	}
	return l
}

// Termination reports why a march stopped.
type Termination uint8

const (
	Hit Termination = iota
	Escaped
	Exhausted
)

func (t Termination) String() string {
	switch t {
	case Hit:
		return "hit"
	case Escaped:
		return "escaped"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Result is the outcome of one march.
type Result struct {
	Hit      bool
	Point    mathutil.Vec3
	Distance float32
	Steps    int
	Reason   Termination
}

// Tracer sphere-traces rays through a distance field.
type Tracer struct {
	de     Estimator
	limits Limits

	// OnStep, when set, sees the travelled distance after every step.
	OnStep func(step int, travelled float32)
}

// NewTracer returns a Tracer over de.
func NewTracer(de Estimator, limits Limits) *Tracer {
	return &Tracer{de: de, limits: limits.WithDefaults()}
}

// Limits returns the budget in use.
func (t *Tracer) Limits() Limits {
	return t.limits
}

// March walks from origin along dir (unit length) until the field is closer
// than pixelRadius·travelled, the travelled distance leaves the scene, or the
// step budget runs out.
func (t *Tracer) March(origin, dir mathutil.Vec3, pixelRadius float32) Result {
	pos := origin
	var travelled float32

	for step := 0; step < t.limits.MaxSteps; step++ {
		d := t.de.Distance(pos)

		travelled += d
		pos = pos.Add(dir.Mul(d))
		if t.OnStep != nil {
			t.OnStep(step, travelled)
		}

		if d < pixelRadius*travelled {
			return Result{Hit: true, Point: pos, Distance: travelled, Steps: step + 1, Reason: Hit}
		}
		if travelled > t.limits.MaxDistance {
			return Result{Point: pos, Distance: travelled, Steps: step + 1, Reason: Escaped}
		}
	}

	return Result{Point: pos, Distance: travelled, Steps: t.limits.MaxSteps, Reason: Exhausted}
}
