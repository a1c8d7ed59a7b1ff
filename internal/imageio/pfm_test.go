package imageio

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

func gradientBuffer(w, h int) *render.FrameBuffer {
	fb := render.NewFrameBuffer(w, h, mathutil.Vec3{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fb.Set(x, y, mathutil.Vec3{float32(x) / float32(w), float32(y) / float32(h), 1.5})
		}
	}
	return fb
}

func TestPFMHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePFM(&buf, gradientBuffer(3, 2)); err != nil {
		t.Fatal(err)
	}
	header := "PF\n3 2\n-1.0\n"
	if !strings.HasPrefix(buf.String(), header) {
		t.Fatalf("header = %q", buf.String()[:len(header)])
	}
	if got, want := buf.Len(), len(header)+3*2*12; got != want {
		t.Errorf("size = %d, want %d", got, want)
	}
	// First float is pixel (0,0) red, bottom row first.
	first := math.Float32frombits(binary.LittleEndian.Uint32(buf.Bytes()[len(header):]))
	if first != 0 {
		t.Errorf("first sample = %f", first)
	}
}

func TestPFMRoundTrip(t *testing.T) {
	src := gradientBuffer(7, 5)
	src.Set(3, 4, mathutil.Vec3{12.5, -0.25, 1e-6})

	path := filepath.Join(t.TempDir(), "out.pfm")
	if err := WritePFM(path, src); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPFM(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("size %dx%d", got.Width, got.Height)
	}
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d: got %v, want %v", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestDecodePFMBigEndianGrey(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("Pf\n2 1\n1.0\n")
	for _, v := range []float32{0.25, 2} {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	fb, err := DecodePFM(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if fb.At(0, 0) != mathutil.Splat(0.25) || fb.At(1, 0) != mathutil.Splat(2) {
		t.Errorf("decoded %v", fb.Pix)
	}
}

func TestDecodePFMErrors(t *testing.T) {
	tests := map[string]string{
		"bad magic":  "P6\n1 1\n-1.0\n",
		"bad size":   "PF\n0 1\n-1.0\n",
		"zero scale": "PF\n1 1\n0\n",
		"truncated":  "PF\n2 2\n-1.0\nabc",
		"huge":       "PF\n4000000000 4000000000\n-1.0\n",
		"too wide":   "PF\n70000 1\n-1.0\n",
		"too many":   "Pf\n60000 60000\n-1.0\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodePFM(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
