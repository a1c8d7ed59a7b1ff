package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Format is an output container.
type Format string

const (
	FormatPFM  Format = "pfm"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
	FormatBMP  Format = "bmp"
	FormatJPEG Format = "jpeg"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pfm":
		return FormatPFM, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "tga":
		return FormatTGA, nil
	case "bmp":
		return FormatBMP, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("imageio: unsupported extension %q", filepath.Ext(path))
}

// EncodeImage writes an 8-bit image in one of the display formats.
// quality only affects JPEG; nativewebp is lossless.
func EncodeImage(w io.Writer, img image.Image, f Format, quality int) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return fmt.Errorf("imageio: %s is not an 8-bit format", f)
	}
	if err != nil {
		return fmt.Errorf("imageio: %s encode: %w", f, err)
	}
	return nil
}

// WriteImage writes an 8-bit image to path, creating parent directories.
func WriteImage(path string, img image.Image, quality int) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	if err := EncodeImage(out, img, f, quality); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
