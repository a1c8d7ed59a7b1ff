package imageio

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

func TestToNRGBAFlipsAndEncodesGamma(t *testing.T) {
	fb := render.NewFrameBuffer(2, 2, mathutil.Vec3{})
	fb.Set(0, 0, mathutil.Vec3{1, 0, 0})     // bottom-left
	fb.Set(1, 1, mathutil.Splat(0.5))        // top-right
	fb.Set(0, 1, mathutil.Vec3{4, -1, 0.25}) // top-left, out of range

	img := ToNRGBA(fb, TonemapClamp)
	if c := img.NRGBAAt(0, 1); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("bottom-left landed at %v", c)
	}
	// 0.5^(1/2.2) * 255 ≈ 186
	if c := img.NRGBAAt(1, 0); c.R < 185 || c.R > 187 {
		t.Errorf("gamma encoded 0.5 = %d, want ~186", c.R)
	}
	if c := img.NRGBAAt(0, 0); c.R != 255 || c.G != 0 {
		t.Errorf("clamping failed: %v", c)
	}
}

func TestACESTonemap(t *testing.T) {
	if ACESTonemap(0) != 0 {
		t.Error("ACES(0) should be 0")
	}
	if v := ACESTonemap(100); v < 1 || v > 1.05 {
		t.Errorf("ACES(100) = %f, want just above 1", v)
	}
	e := Encode8(mathutil.Splat(100), TonemapACES)
	if e[0] != 255 {
		t.Errorf("bright ACES channel = %d", e[0])
	}
	if tm, err := ParseTonemap("aces"); err != nil || tm != TonemapACES || tm.String() != "aces" {
		t.Errorf("ParseTonemap(aces) = %v, %v", tm, err)
	}
	if _, err := ParseTonemap("reinhard"); err == nil {
		t.Error("expected error for unknown tonemap")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.pfm":     FormatPFM,
		"b.PNG":     FormatPNG,
		"c.webp":    FormatWebP,
		"d.tga":     FormatTGA,
		"dir/e.bmp": FormatBMP,
		"f.jpg":     FormatJPEG,
		"g.jpeg":    FormatJPEG,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("x.gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func testImage() *image.NRGBA {
	fb := render.NewFrameBuffer(4, 3, mathutil.Splat(0.2))
	fb.Set(1, 1, mathutil.Vec3{1, 0.5, 0})
	return ToNRGBA(fb, TonemapClamp)
}

func TestWriteImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	decoders := map[string]func([]byte) (image.Image, error){
		"out.png": func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		"out.tga": func(b []byte) (image.Image, error) { return tga.Decode(bytes.NewReader(b)) },
		"out.bmp": func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		"out.jpg": func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "sub", name)
			if err := WriteImage(path, img, 90); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			got, err := decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
				t.Errorf("bounds %v", got.Bounds())
			}
		})
	}
}

func TestWriteWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	if err := WriteImage(path, testImage(), 90); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("not a WebP container: % x", data[:min(12, len(data))])
	}
}

func TestEncodeImageRejectsPFM(t *testing.T) {
	if err := EncodeImage(&bytes.Buffer{}, testImage(), FormatPFM, 90); err == nil {
		t.Error("PFM is not an 8-bit format")
	}
}
