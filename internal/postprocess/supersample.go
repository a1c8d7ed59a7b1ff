package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

// DownsampleLinear box-filters a supersampled linear buffer by factor.
// Averaging happens before any display encoding. The output size rounds up:
// edge blocks cut short by a non-divisible size average only the pixels they
// cover, so a factor larger than the image yields a single pixel.
func DownsampleLinear(fb *render.FrameBuffer, factor int) *render.FrameBuffer {
	if factor <= 1 {
		return fb
	}
	w := (fb.Width + factor - 1) / factor
	h := (fb.Height + factor - 1) / factor
	out := render.NewFrameBuffer(w, h, mathutil.Vec3{})

	for y := 0; y < h; y++ {
		y0, y1 := y*factor, min((y+1)*factor, fb.Height)
		dst := out.Row(y)
		for x := range dst {
			x0, x1 := x*factor, min((x+1)*factor, fb.Width)
			var sum mathutil.Vec3
			for sy := y0; sy < y1; sy++ {
				src := fb.Row(sy)
				for sx := x0; sx < x1; sx++ {
					sum = sum.Add(src[sx])
				}
			}
			dst[x] = sum.Mul(1 / float32((y1-y0)*(x1-x0)))
		}
	}
	return out
}

// Downsample reduces an 8-bit preview to w×h with CatmullRom filtering.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
