package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"mandelbox-renderer/internal/camera"
	"mandelbox-renderer/internal/config"
	"mandelbox-renderer/internal/imageio"
	"mandelbox-renderer/internal/postprocess"
	"mandelbox-renderer/internal/render"
)

// Result holds the outcome of rendering one camera.
type Result struct {
	Camera   string        `json:"camera"`
	Outputs  []string      `json:"outputs"`
	Stats    render.Stats  `json:"stats"`
	HitRatio float64       `json:"hit_ratio"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
}

// Run renders one image per configured camera and writes every output.
// cfg must already be resolved and validated.
func Run(ctx context.Context, cfg config.Config, log io.Writer) []Result {
	names := cfg.CameraNames()
	multi := len(names) > 1
	results := make([]Result, 0, len(names))

	for _, name := range names {
		start := time.Now()
		if log != nil {
			fmt.Fprintf(log, "Rendering camera %q (%dx%d, ss %d)\n", name, cfg.Width, cfg.Height, cfg.Supersample)
		}
		r := processCamera(ctx, cfg, name, multi, log)
		r.Elapsed = time.Since(start)
		results = append(results, r)
	}
	return results
}

func processCamera(ctx context.Context, cfg config.Config, name string, multi bool, log io.Writer) Result {
	res := Result{Camera: name}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	scene, err := BuildScene(cfg, name)
	if err != nil {
		return fail(err)
	}

	fb, stats, err := render.Render(ctx, scene, render.Options{Workers: cfg.Workers, Log: log})
	res.Stats = stats
	res.HitRatio = stats.HitRatio()
	if err != nil {
		return fail(err)
	}

	tm, _ := imageio.ParseTonemap(cfg.Tonemap)
	// 8-bit outputs share one display-encoded preview.
	var preview *image.NRGBA
	for _, out := range cfg.Outputs() {
		path := config.OutputPath(out, name, multi)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fail(err)
		}
		format, err := imageio.FormatFromPath(path)
		if err != nil {
			return fail(err)
		}

		if format == imageio.FormatPFM {
			err = imageio.WritePFM(path, postprocess.DownsampleLinear(fb, cfg.Supersample))
		} else {
			if preview == nil {
				preview = postprocess.Downsample(imageio.ToNRGBA(fb, tm), cfg.Width, cfg.Height)
			}
			err = imageio.WriteImage(path, preview, cfg.Quality)
		}
		if err != nil {
			return fail(err)
		}
		res.Outputs = append(res.Outputs, path)
	}

	res.Success = true
	return res
}

// BuildScene builds the immutable scene for one camera.
func BuildScene(cfg config.Config, name string) (*render.Scene, error) {
	var basis camera.Basis
	if cfg.CustomCamera != nil {
		basis = *cfg.CustomCamera
	} else {
		var err error
		basis, err = camera.Preset(name)
		if err != nil {
			return nil, err
		}
	}

	ss := max(cfg.Supersample, 1)
	cam, err := camera.New(basis, cfg.Width*ss, cfg.Height*ss, cfg.FOV)
	if err != nil {
		return nil, err
	}

	mode, err := render.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	light := render.DefaultLight()
	if cfg.Light != nil {
		light = *cfg.Light
	}

	return render.NewScene(render.SceneConfig{
		Camera:   cam,
		Fractal:  cfg.Fractal,
		Limits:   cfg.Limits,
		Light:    light,
		AORadius: cfg.AORadius,
		Mode:     mode,
	})
}
