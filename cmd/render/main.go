package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"mandelbox-renderer/internal/batch"
	"mandelbox-renderer/internal/camera"
	"mandelbox-renderer/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	output := flag.String("o", "", "Output file (.pfm, .png, .webp, .tga, .bmp, .jpg); also the first positional argument")
	extra := flag.String("extra", "", "Comma-separated additional output files")
	width := flag.Int("width", 0, "Image width in pixels (default: 200)")
	height := flag.Int("height", 0, "Image height in pixels (default: 200)")
	cam := flag.String("cam", "", fmt.Sprintf("Camera preset %v, a comma list, or 'all'", camera.PresetNames()))
	fov := flag.Float64("fov", 0, "Horizontal field of view in degrees, 30-120 (default: 108)")
	ao := flag.Float64("ao", 0, "Ambient occlusion radius, 0.001-1 (default: 0.1)")
	ss := flag.Int("ss", 0, "Supersampling factor 1-4 (default: 1)")
	mode := flag.String("mode", "", "Display mode: shaded, ao, normal, depth")
	tonemap := flag.String("tonemap", "", "Tone map for 8-bit outputs: clamp or aces")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	noReport := flag.Bool("no-report", false, "Skip writing the JSON run report")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *output == "" && flag.NArg() > 0 {
		*output = flag.Arg(0)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Output:      *output,
		Extra:       *extra,
		Width:       *width,
		Height:      *height,
		Camera:      *cam,
		FOV:         *fov,
		AORadius:    *ao,
		Supersample: *ss,
		Mode:        *mode,
		Tonemap:     *tonemap,
		Quality:     *quality,
		Workers:     *workers,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Mandelbox Raymarcher")
	fmt.Printf("Image: %dx%d, FOV: %.1f°, AO radius: %.3f, Workers: %d\n",
		cfg.Width, cfg.Height, cfg.FOV, cfg.AORadius, cfg.Workers)
	fmt.Printf("Cameras: %v\n", cfg.CameraNames())
	fmt.Printf("Output: %v\n", cfg.Outputs())
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(context.Background(), cfg, os.Stdout)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Fprintf(os.Stderr, "Error: camera %s: %s\n", r.Camera, r.Error)
			continue
		}
		fmt.Printf("  %s: hits %.1f%%, avg steps %.1f, %.1fs\n",
			r.Camera, r.HitRatio*100, r.Stats.AverageSteps(), r.Elapsed.Seconds())
		for _, p := range r.Outputs {
			fmt.Printf("    wrote %s\n", p)
		}
	}

	if !*noReport {
		reportPath := batch.ReportPath(cfg.Output)
		if err := batch.WriteReport(reportPath, cfg, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
		} else {
			fmt.Printf("Report: %s\n", reportPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
