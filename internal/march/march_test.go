package march

import (
	"testing"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/fractal"
	"mandelbox-renderer/internal/mathutil"
)

type planeDE struct{ z float32 }

func (p planeDE) Distance(q mathutil.Vec3) float32 {
	return math32.Abs(p.z - q[2])
}

type stallDE struct{}

func (stallDE) Distance(mathutil.Vec3) float32 { return 1e-3 }

func TestMarchHitsPlane(t *testing.T) {
	tr := NewTracer(planeDE{z: 5}, DefaultLimits())
	res := tr.March(mathutil.Vec3{}, mathutil.Vec3{0, 0, 1}, 1e-3)
	if !res.Hit || res.Reason != Hit {
		t.Fatalf("expected hit, got %+v", res)
	}
	if math32.Abs(res.Distance-5) > 1e-3 {
		t.Errorf("travelled %f, want 5", res.Distance)
	}
}

func TestMarchEscapes(t *testing.T) {
	tr := NewTracer(planeDE{z: 5}, DefaultLimits())
	res := tr.March(mathutil.Vec3{}, mathutil.Vec3{0, 0, -1}, 1e-3)
	if res.Hit || res.Reason != Escaped {
		t.Fatalf("expected escape, got %+v", res)
	}
	if res.Distance <= tr.Limits().MaxDistance {
		t.Errorf("escape reported at %f", res.Distance)
	}
}

func TestMarchExhaustsBudget(t *testing.T) {
	tr := NewTracer(stallDE{}, Limits{MaxSteps: 10, MaxDistance: 25})
	res := tr.March(mathutil.Vec3{}, mathutil.Vec3{1, 0, 0}, 1e-6)
	if res.Hit || res.Reason != Exhausted || res.Steps != 10 {
		t.Fatalf("expected exhausted after 10 steps, got %+v", res)
	}
}

func TestMarchMonotonicProgress(t *testing.T) {
	field := fractal.NewField(fractal.DefaultParams())
	tr := NewTracer(field, DefaultLimits())

	dirs := []mathutil.Vec3{
		{0, 0, 1},
		{0.3, 0.2, 1},
		{-0.5, 0.4, 1},
		{1, 1, 1},
		{0, 0, -1},
	}
	for _, d := range dirs {
		d = d.Normalize()
		prev := float32(-1)
		steps := 0
		tr.OnStep = func(step int, travelled float32) {
			if travelled < prev {
				t.Errorf("dir %v: travelled decreased at step %d (%f < %f)", d, step, travelled, prev)
			}
			prev = travelled
			steps++
		}
		res := tr.March(mathutil.Vec3{0, 0, -15}, d, 0.003)
		if steps > tr.Limits().MaxSteps {
			t.Errorf("dir %v: %d steps exceeds cap", d, steps)
		}
		if res.Steps != steps {
			t.Errorf("dir %v: reported %d steps, observed %d", d, res.Steps, steps)
		}
	}
}

func TestMarchAwayFromFractalEscapes(t *testing.T) {
	field := fractal.NewField(fractal.DefaultParams())
	tr := NewTracer(field, DefaultLimits())
	res := tr.March(mathutil.Vec3{0, 0, -15}, mathutil.Vec3{0, 0, -1}, 0.003)
	if res.Reason != Escaped {
		t.Errorf("ray pointing away should escape by distance, got %v", res.Reason)
	}
}

func TestMarchCenterRayHitsMandelbox(t *testing.T) {
	field := fractal.NewField(fractal.DefaultParams())
	tr := NewTracer(field, DefaultLimits())
	res := tr.March(mathutil.Vec3{0, 0, -15}, mathutil.Vec3{0, 0, 1}, 0.003)
	if !res.Hit {
		t.Fatalf("center ray should hit, got %+v", res)
	}
	if res.Point[2] > 0 {
		t.Errorf("hit behind the origin: %v", res.Point)
	}
}

func TestTerminationString(t *testing.T) {
	for r, want := range map[Termination]string{Hit: "hit", Escaped: "escaped", Exhausted: "exhausted"} {
		if r.String() != want {
			t.Errorf("%d.String() = %q", r, r.String())
		}
	}
}
