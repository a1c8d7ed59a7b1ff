package render

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options controls how a scene is rendered.
type Options struct {
	Workers  int
	Log      io.Writer     // progress lines; nil is silent
	Interval time.Duration // progress interval, default 2s
}

// Render renders every pixel of the scene into a new frame buffer.
// Rows are handed to a pool of workers; each pixel is written once by the
// worker owning its row. The first pixel error cancels the rest.
func Render(ctx context.Context, s *Scene, opts Options) (*FrameBuffer, Stats, error) {
	w, h := s.Camera.Size()
	fb := NewFrameBuffer(w, h, s.Background)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, h)

	rowStats := make([]Stats, h)
	var processed atomic.Int64

	done := make(chan struct{})
	reporter := make(chan struct{})
	if opts.Log != nil {
		go func() {
			defer close(reporter)
			reportProgress(opts, done, &processed, h)
		}()
	} else {
		close(reporter)
	}

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan int, workers*2)

	g.Go(func() error {
		defer close(rows)
		for y := 0; y < h; y++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case rows <- y:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for y := range rows {
				if gctx.Err() != nil {
					continue
				}
				if err := s.renderRow(fb, y, &rowStats[y]); err != nil {
					return err
				}
				processed.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	close(done)
	<-reporter

	var stats Stats
	for _, rs := range rowStats {
		stats.merge(rs)
	}
	if err != nil {
		return nil, stats, err
	}
	return fb, stats, nil
}

func (s *Scene) renderRow(fb *FrameBuffer, y int, stats *Stats) error {
	row := fb.Row(y)
	for x := range row {
		px, err := s.Pixel(x, y)
		if err != nil {
			return err
		}
		stats.add(px.March)
		if px.March.Hit {
			row[x] = px.Color
		}
	}
	return nil
}

func reportProgress(opts Options, done <-chan struct{}, processed *atomic.Int64, total int) {
	interval := opts.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := processed.Load()
			if p > 0 {
				rate := float64(p) / time.Since(start).Seconds()
				fmt.Fprintf(opts.Log, "  [%d/%d] %.1f rows/sec\n", p, total, rate)
			}
		}
	}
}
