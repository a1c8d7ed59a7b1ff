package render

import (
	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
)

// Blinn-Phong material constants.
const (
	Shininess         float32 = 5
	SpecularIntensity float32 = 0.35

	AmbientScale  float32 = 0.2
	DiffuseScale  float32 = 0.4
	SpecularScale float32 = 0.4
)

// Light is a directional light. Dir points from the surface toward the light.
type Light struct {
	Dir   mathutil.Vec3 `json:"direction"`
	Color mathutil.Vec3 `json:"color"`
}

// DefaultLight returns the fixed key light.
func DefaultLight() Light {
	return Light{
		Dir:   mathutil.Vec3{0.64, 0.57, 0.52}.Normalize(),
		Color: mathutil.Vec3{1, 1, 1},
	}
}

// WithDefaults returns l with a unit direction. A zero direction or a zero
// color falls back to the default light's.
func (l Light) WithDefaults() Light {
	d := DefaultLight()
	l.Dir = mathutil.SafeNormalize(l.Dir, 1e-6, d.Dir)
	if l.Color == (mathutil.Vec3{}) {
		l.Color = d.Color
	}
	return l
}

// Shade evaluates Blinn-Phong for one light. eyeDir points from the surface
// to the eye. All colors are linear.
func Shade(normal, ambient, diffuse, specular, eyeDir, lightDir, lightColor mathutil.Vec3) mathutil.Vec3 {
	c := ambient

	lambert := normal.Dot(lightDir)
	if lambert > 0 {
		c = c.Add(diffuse.Mul(lambert))

		halfway := lightDir.Add(eyeDir).Normalize()
		specAngle := math32.Max(normal.Dot(halfway), 0)
		c = c.Add(specular.Mul(math32.Pow(specAngle, Shininess) * SpecularIntensity))
	}

	// light emission
	return mathutil.MulElem(c, lightColor)
}

// SurfaceColors splits the orbit-trap base color into the ambient, diffuse
// and specular terms fed to Shade.
func SurfaceColors(base mathutil.Vec3, occlusion float32) (ambient, diffuse, specular mathutil.Vec3) {
	ambient = base.Mul(occlusion * AmbientScale)
	diffuse = base.Mul(DiffuseScale)
	specular = mathutil.Splat(SpecularScale)
	return ambient, diffuse, specular
}
