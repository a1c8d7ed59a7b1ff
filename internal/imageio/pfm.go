package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"mandelbox-renderer/internal/mathutil"
	"mandelbox-renderer/internal/render"
)

// Header limits checked before any pixel storage is allocated.
const (
	maxPFMDim    = 1 << 16
	maxPFMPixels = 1 << 26
)

// EncodePFM writes fb as a little-endian color PFM.
// PFM rows run bottom to top, which matches the frame buffer order.
func EncodePFM(w io.Writer, fb *render.FrameBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("pfm: header: %w", err)
	}

	buf := make([]byte, 12*fb.Width)
	for y := 0; y < fb.Height; y++ {
		for x, c := range fb.Row(y) {
			binary.LittleEndian.PutUint32(buf[x*12:], math.Float32bits(c[0]))
			binary.LittleEndian.PutUint32(buf[x*12+4:], math.Float32bits(c[1]))
			binary.LittleEndian.PutUint32(buf[x*12+8:], math.Float32bits(c[2]))
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("pfm: row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// WritePFM writes fb to path.
func WritePFM(path string, fb *render.FrameBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pfm: create %s: %w", path, err)
	}
	if err := EncodePFM(f, fb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DecodePFM reads a color ("PF") or greyscale ("Pf") PFM of either byte order.
func DecodePFM(r io.Reader) (*render.FrameBuffer, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("pfm: magic: %w", err)
	}
	var channels int
	switch magic {
	case "PF":
		channels = 3
	case "Pf":
		channels = 1
	default:
		return nil, fmt.Errorf("pfm: bad magic %q", magic)
	}

	var dims [2]int
	for i := range dims {
		tok, err := readToken(br)
		if err != nil {
			return nil, fmt.Errorf("pfm: size: %w", err)
		}
		dims[i], err = strconv.Atoi(tok)
		if err != nil || dims[i] <= 0 {
			return nil, fmt.Errorf("pfm: bad size %q", tok)
		}
	}
	tok, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("pfm: scale: %w", err)
	}
	scale, err := strconv.ParseFloat(tok, 32)
	if err != nil || scale == 0 {
		return nil, fmt.Errorf("pfm: bad scale %q", tok)
	}
	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}

	w, h := dims[0], dims[1]
	if w > maxPFMDim || h > maxPFMDim || w*h > maxPFMPixels {
		return nil, fmt.Errorf("pfm: image %dx%d too large", w, h)
	}
	fb := render.NewFrameBuffer(w, h, mathutil.Vec3{})
	buf := make([]byte, 4*channels*w)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("pfm: row %d: %w", y, err)
		}
		row := fb.Row(y)
		for x := range row {
			off := x * 4 * channels
			if channels == 1 {
				row[x] = mathutil.Splat(math.Float32frombits(order.Uint32(buf[off:])))
				continue
			}
			row[x] = mathutil.Vec3{
				math.Float32frombits(order.Uint32(buf[off:])),
				math.Float32frombits(order.Uint32(buf[off+4:])),
				math.Float32frombits(order.Uint32(buf[off+8:])),
			}
		}
	}
	return fb, nil
}

// ReadPFM reads a PFM file.
func ReadPFM(path string) (*render.FrameBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pfm: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodePFM(f)
}

// readToken reads one whitespace-delimited header token and consumes exactly
// one trailing whitespace byte, so binary data may follow directly.
func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}
