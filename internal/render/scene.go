package render

import (
	"fmt"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/camera"
	"mandelbox-renderer/internal/fractal"
	"mandelbox-renderer/internal/march"
	"mandelbox-renderer/internal/mathutil"
)

// AO radius bounds.
const (
	MinAORadius     float32 = 0.001
	MaxAORadius     float32 = 1.0
	DefaultAORadius float32 = 0.1
)

// Scene is everything a pixel needs: field, tracer, camera and light.
// It is built once and never mutated while rendering.
type Scene struct {
	Field      *fractal.Field
	Tracer     *march.Tracer
	Camera     *camera.Camera
	Light      Light
	AORadius   float32
	Mode       Mode
	Background mathutil.Vec3
}

// SceneConfig collects the inputs for NewScene.
type SceneConfig struct {
	Camera   *camera.Camera
	Fractal  fractal.Params
	Limits   march.Limits
	Light    Light
	AORadius float32
	Mode     Mode
}

// NewScene builds an immutable scene.
func NewScene(cfg SceneConfig) (*Scene, error) {
	if cfg.Camera == nil {
		return nil, fmt.Errorf("render: scene needs a camera")
	}
	field := fractal.NewField(cfg.Fractal)
	return &Scene{
		Field:    field,
		Tracer:   march.NewTracer(field, cfg.Limits),
		Camera:   cfg.Camera,
		Light:    cfg.Light.WithDefaults(),
		AORadius: ClampAORadius(cfg.AORadius),
		Mode:     cfg.Mode,
	}, nil
}

// ClampAORadius clamps r to [MinAORadius, MaxAORadius]; non-positive means default.
func ClampAORadius(r float32) float32 {
	if r <= 0 {
		return DefaultAORadius
	}
	return math32.Max(MinAORadius, math32.Min(MaxAORadius, r))
}

// Sample is the surface data gathered at a hit.
type Sample struct {
	Point     mathutil.Vec3
	Distance  float32
	Normal    mathutil.Vec3
	BaseColor mathutil.Vec3
	Occlusion float32
}

// PixelResult is the outcome for one pixel.
type PixelResult struct {
	Color  mathutil.Vec3
	March  march.Result
	Sample *Sample
}

// Pixel runs the full pipeline for pixel (x, y): march, then on a hit the
// normal, base color and occlusion, then shading.
func (s *Scene) Pixel(x, y int) (PixelResult, error) {
	dir := s.Camera.Ray(x, y)
	res := s.Tracer.March(s.Camera.Position, dir, s.Camera.PixelRadius())
	if !res.Hit {
		return PixelResult{Color: s.Background, March: res}, nil
	}

	n, err := s.Field.Normal(res.Point)
	if err != nil {
		return PixelResult{March: res}, fmt.Errorf("render: pixel (%d, %d): %w", x, y, err)
	}
	smp := &Sample{
		Point:     res.Point,
		Distance:  res.Distance,
		Normal:    n,
		BaseColor: s.Field.Color(res.Point),
		Occlusion: s.Field.Occlusion(res.Point, n, s.AORadius),
	}
	return PixelResult{Color: s.colorize(smp, dir), March: res, Sample: smp}, nil
}

func (s *Scene) colorize(smp *Sample, dir mathutil.Vec3) mathutil.Vec3 {
	switch s.Mode {
	case ModeOcclusion:
		return mathutil.Splat(smp.Occlusion)
	case ModeNormal:
		return mathutil.Abs(smp.Normal)
	case ModeDepth:
		return mathutil.Splat(math32.Min(smp.Distance/s.Tracer.Limits().MaxDistance, 1))
	}
	ambient, diffuse, specular := SurfaceColors(smp.BaseColor, smp.Occlusion)
	return Shade(smp.Normal, ambient, diffuse, specular, dir.Mul(-1), s.Light.Dir, s.Light.Color)
}
