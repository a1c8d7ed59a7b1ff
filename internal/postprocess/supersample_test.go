package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

func TestDownsampleLinearAverages(t *testing.T) {
	fb := render.NewFrameBuffer(4, 2, mathutil.Vec3{})
	// Left 2x2 block: one white pixel, right block: all 0.5.
	fb.Set(0, 0, mathutil.Splat(1))
	for y := 0; y < 2; y++ {
		for x := 2; x < 4; x++ {
			fb.Set(x, y, mathutil.Splat(0.5))
		}
	}

	out := DownsampleLinear(fb, 2)
	if out.Width != 2 || out.Height != 1 {
		t.Fatalf("size %dx%d", out.Width, out.Height)
	}
	if got := out.At(0, 0)[0]; math32.Abs(got-0.25) > 1e-6 {
		t.Errorf("left block = %f, want 0.25", got)
	}
	if got := out.At(1, 0)[1]; math32.Abs(got-0.5) > 1e-6 {
		t.Errorf("right block = %f, want 0.5", got)
	}
}

func TestDownsampleLinearFactorOne(t *testing.T) {
	fb := render.NewFrameBuffer(3, 3, mathutil.Vec3{})
	if DownsampleLinear(fb, 1) != fb {
		t.Error("factor 1 should return the input")
	}
}

func TestDownsampleLinearRemainder(t *testing.T) {
	fb := render.NewFrameBuffer(5, 3, mathutil.Vec3{})
	fb.Set(4, 0, mathutil.Splat(1))
	fb.Set(4, 2, mathutil.Splat(0.5))

	out := DownsampleLinear(fb, 2)
	if out.Width != 3 || out.Height != 2 {
		t.Fatalf("size %dx%d, want 3x2", out.Width, out.Height)
	}
	// Column 4 forms 1-wide edge blocks: rows 0-1 and the single row 2.
	if got := out.At(2, 0)[0]; math32.Abs(got-0.5) > 1e-6 {
		t.Errorf("edge block = %f, want 0.5", got)
	}
	if got := out.At(2, 1)[0]; math32.Abs(got-0.5) > 1e-6 {
		t.Errorf("corner block = %f, want 0.5", got)
	}
}

func TestDownsampleLinearFactorLargerThanImage(t *testing.T) {
	fb := render.NewFrameBuffer(3, 2, mathutil.Splat(0.25))
	fb.Set(0, 0, mathutil.Splat(1.75))

	out := DownsampleLinear(fb, 8)
	if out.Width != 1 || out.Height != 1 {
		t.Fatalf("size %dx%d, want 1x1", out.Width, out.Height)
	}
	// (1.75 + 5*0.25) / 6
	if got := out.At(0, 0)[2]; math32.Abs(got-0.5) > 1e-6 {
		t.Errorf("mean = %f, want 0.5", got)
	}
}

func TestDownsampleUniformImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	out := Downsample(img, 4, 4)
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 4 {
		t.Fatalf("bounds %v", out.Bounds())
	}
	c := out.NRGBAAt(2, 2)
	if c.R < 198 || c.R > 202 || c.G < 98 || c.G > 102 || c.A != 255 {
		t.Errorf("uniform color drifted: %v", c)
	}
	if Downsample(out, 8, 8) != out {
		t.Error("upscale request should return the input")
	}
}
