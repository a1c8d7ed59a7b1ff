package camera

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
)

// FOV limits for the full horizontal field of view, in degrees.
const (
	MinFOV     float32 = 30
	MaxFOV     float32 = 120
	DefaultFOV float32 = 108
)

// Camera is a pinhole camera with an orthonormal (view, up, side) basis.
// It is read-only once built.
type Camera struct {
	Position mathutil.Vec3
	View     mathutil.Vec3
	Up       mathutil.Vec3
	Side     mathutil.Vec3

	width, height int
	tanHori       float32
	tanVert       float32
}

// Basis is a camera position plus its orientation vectors.
type Basis struct {
	Position mathutil.Vec3 `json:"position"`
	View     mathutil.Vec3 `json:"view"`
	Up       mathutil.Vec3 `json:"up"`
	Side     mathutil.Vec3 `json:"side,omitempty"`
}

// New builds a camera for a width×height image with the given full
// horizontal field of view in degrees (clamped to [MinFOV, MaxFOV]).
func New(b Basis, width, height int, fovDeg float32) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera: invalid image size %dx%d", width, height)
	}
	b, err := b.orthonormal()
	if err != nil {
		return nil, err
	}

	half := mathutil.Deg2Rad(ClampFOV(fovDeg)) * 0.5
	tanHori := math32.Tan(half)

	return &Camera{
		Position: b.Position,
		View:     b.View,
		Up:       b.Up,
		Side:     b.Side,
		width:    width,
		height:   height,
		tanHori:  tanHori,
		tanVert:  tanHori * float32(height) / float32(width),
	}, nil
}

// ClampFOV clamps a full field of view in degrees to the supported range.
func ClampFOV(deg float32) float32 {
	if deg <= 0 {
		return DefaultFOV
	}
	return math32.Max(MinFOV, math32.Min(MaxFOV, deg))
}

// orthonormal makes the basis orthonormal: Up is projected off View, and
// Side is derived as Up×View when unset, or projected off both otherwise.
func (b Basis) orthonormal() (Basis, error) {
	const eps = 1e-6
	if b.View.Len() < eps {
		return b, fmt.Errorf("camera: zero view vector")
	}
	b.View = b.View.Normalize()
	if b.Up.Len() < eps {
		return b, fmt.Errorf("camera: zero up vector")
	}
	up := b.Up.Normalize()
	up = up.Sub(b.View.Mul(up.Dot(b.View)))
	if up.Len() < eps {
		return b, fmt.Errorf("camera: up vector parallel to view")
	}
	b.Up = up.Normalize()

	if b.Side.Len() < eps {
		b.Side = b.Up.Cross(b.View)
	} else {
		side := b.Side.Normalize()
		side = side.Sub(b.View.Mul(side.Dot(b.View))).Sub(b.Up.Mul(side.Dot(b.Up)))
		if side.Len() < eps {
			return b, fmt.Errorf("camera: side vector in the view/up plane")
		}
		b.Side = side
	}
	b.Side = b.Side.Normalize()
	return b, nil
}

// Size returns the image size the camera was built for.
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

// TanHalfFOV returns the horizontal and vertical half-angle tangents.
func (c *Camera) TanHalfFOV() (float32, float32) {
	return c.tanHori, c.tanVert
}

// PixelRadius is the hit tolerance per unit of travelled distance: a quarter
// of a pixel width in tangent space.
func (c *Camera) PixelRadius() float32 {
	return c.tanHori / float32(c.width) * 0.5
}

// Ray returns the unit direction through pixel (x, y). Column 0 is the left
// edge of the view and row 0 the bottom edge.
func (c *Camera) Ray(x, y int) mathutil.Vec3 {
	s := ndc(x, c.width)
	t := ndc(y, c.height)

	dir := c.View.
		Add(c.Side.Mul(c.tanHori * s)).
		Add(c.Up.Mul(c.tanVert * t))
	return dir.Normalize()
}

func ndc(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i)/float32(n-1)*2 - 1
}

// Presets maps preset names to camera bases.
var Presets = map[string]Basis{
	"default": {
		Position: mathutil.Vec3{0, 0, -15},
		View:     mathutil.Vec3{0, 0, 1},
		Up:       mathutil.Vec3{0, 1, 0},
		Side:     mathutil.Vec3{1, 0, 0},
	},
	"front": {
		Position: mathutil.Vec3{10, 0, 2},
		View:     mathutil.Vec3{-1, 0, 0},
		Up:       mathutil.Vec3{0, 1, 0},
		Side:     mathutil.Vec3{0, 0, -1},
	},
	"edge": edgePreset(),
	"back": backPreset(),
}

func edgePreset() Basis {
	view := mathutil.Vec3{-1, -1, 1}.Normalize()
	side := view.Cross(mathutil.Vec3{0, -1, 0}).Normalize()
	up := view.Cross(side).Normalize()
	return Basis{
		Position: mathutil.Vec3{5.15, 6.15, -7.65},
		View:     view,
		Up:       up,
		Side:     side,
	}
}

func backPreset() Basis {
	view := mathutil.Vec3{0, 0, -1}
	up := mathutil.Vec3{0.25, 1, 0}.Normalize()
	return Basis{
		Position: mathutil.Vec3{-3.75, 0, 7.25},
		View:     view,
		Up:       up,
		Side:     up.Cross(view).Normalize(),
	}
}

// Preset returns the named preset basis.
func Preset(name string) (Basis, error) {
	b, ok := Presets[name]
	if !ok {
		return Basis{}, fmt.Errorf("camera: unknown preset %q (have %v)", name, PresetNames())
	}
	return b, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
