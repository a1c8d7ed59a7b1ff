package imageio

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

// Tonemap selects the curve applied before gamma encoding.
type Tonemap int

const (
	TonemapClamp Tonemap = iota
	TonemapACES
)

// ParseTonemap parses "none"/"clamp" or "aces". Empty means clamp.
func ParseTonemap(s string) (Tonemap, error) {
	switch s {
	case "", "none", "clamp":
		return TonemapClamp, nil
	case "aces":
		return TonemapACES, nil
	}
	return 0, fmt.Errorf("imageio: unknown tonemap %q", s)
}

func (t Tonemap) String() string {
	if t == TonemapACES {
		return "aces"
	}
	return "clamp"
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float32) float32 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// ToNRGBA converts a linear buffer to an opaque 8-bit image, flipping rows so
// the top of the view lands on image row 0, and gamma-encoding with 1/2.2.
func ToNRGBA(fb *render.FrameBuffer, tm Tonemap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		off := (fb.Height - 1 - y) * img.Stride
		for x, c := range fb.Row(y) {
			e := Encode8(c, tm)
			i := off + x*4
			img.Pix[i] = e[0]
			img.Pix[i+1] = e[1]
			img.Pix[i+2] = e[2]
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Encode8 maps one linear color to display-encoded 8-bit channels.
func Encode8(c mathutil.Vec3, tm Tonemap) [3]uint8 {
	var out [3]uint8
	for k := 0; k < 3; k++ {
		v := c[k]
		if math32.IsNaN(v) || v < 0 {
			v = 0
		}
		if tm == TonemapACES {
			v = ACESTonemap(v)
		}
		v = math32.Min(v, 1)
		out[k] = clamp255(math32.Pow(v, mathutil.InverseGamma) * 255)
	}
	return out
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
