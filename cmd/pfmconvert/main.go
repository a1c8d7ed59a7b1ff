package main

import (
	"flag"
	"fmt"
	"os"

	"mandelbox-renderer/internal/imageio"
	"mandelbox-renderer/internal/postprocess"
)

func main() {
	tonemap := flag.String("tonemap", "", "Tone map: clamp or aces")
	quality := flag.Int("quality", 90, "JPEG quality 1-100")
	scale := flag.Int("downsample", 1, "Box-filter factor applied before encoding")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: pfmconvert [flags] input.pfm output.{png,webp,tga,bmp,jpg}")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	tm, err := imageio.ParseTonemap(*tonemap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fb, err := imageio.ReadPFM(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fb = postprocess.DownsampleLinear(fb, *scale)

	var peak float32
	for _, c := range fb.Pix {
		peak = max(peak, c[0], c[1], c[2])
	}
	fmt.Printf("%s: %dx%d, peak %.4f\n", in, fb.Width, fb.Height, peak)

	if err := imageio.WriteImage(out, imageio.ToNRGBA(fb, tm), *quality); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)
}
