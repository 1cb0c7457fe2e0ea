package batch

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"instancing-renderer/internal/config"
	"instancing-renderer/internal/mesh"
	"instancing-renderer/internal/postprocess"
	"instancing-renderer/internal/raster"
	"instancing-renderer/internal/sample"
	"instancing-renderer/internal/viewmatrix"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      string // config.FormatWebP or config.FormatPNG
	Width       int
	Height      int
	Supersample int
	HUD         bool
	Workers     int
	Sample      sample.Options // texture, lights and clear color for every frame
	Logger      *zap.Logger
	// ProgressEvery is the progress log interval. Zero uses two seconds.
	ProgressEvery time.Duration
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Angle   float64
	View    string
	Image   string // path relative to OutputDir
	Stats   raster.Stats
	Success bool
	Error   string
}

// Plan runs the sample for n frames on the calling goroutine and returns the
// snapshots. viewFor picks the view option for each frame.
func Plan(s *sample.Sample, n int, viewFor func(frame int) int) []sample.Snapshot {
	snaps := make([]sample.Snapshot, n)
	for i := 0; i < n; i++ {
		snaps[i] = s.Frame(viewFor(i))
	}
	return snaps
}

// Cycle returns a view schedule that starts at start and moves to the next
// preset every `every` frames. every <= 0 holds start for the whole run.
// A start outside [0, options) begins at Front, as Select does.
func Cycle(start, every, options int) func(frame int) int {
	if start < 0 || start >= options {
		start = int(viewmatrix.Front)
	}
	return func(frame int) int {
		if every <= 0 || options <= 0 {
			return start
		}
		return ((start+frame/every)%options + options) % options
	}
}

// Run renders snapshots on a bounded worker pool and writes one image per
// frame. It stops handing out work when ctx is cancelled. Results are in
// frame order; frames never started are reported as failed.
func Run(ctx context.Context, cfg Config, snaps []sample.Snapshot) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	every := cfg.ProgressEvery
	if every <= 0 {
		every = 2 * time.Second
	}

	total := len(snaps)
	results := make([]Result, total)
	for i, s := range snaps {
		results[i] = Result{Frame: s.Frame, Angle: s.Angle, View: s.View.Label(), Error: "not rendered"}
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		err = errors.Wrapf(err, "create output dir %s", cfg.OutputDir)
		for i := range results {
			results[i].Error = err.Error()
		}
		return results
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	reporter.Add(1)
	go func() {
		defer reporter.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("frames_per_sec", rate))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	cube := mesh.Cube()

	for i := range snaps {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = renderFrame(cfg, snaps[i], cube)
			processed.Add(1)
			return nil
		})
	}
	g.Wait()
	close(done)
	reporter.Wait()

	var sum raster.Stats
	for _, r := range results {
		sum.Add(r.Stats)
	}
	logger.Info("batch finished",
		zap.Int("frames", total),
		zap.Int64("rendered", processed.Load()),
		zap.Int("triangles", sum.Triangles),
		zap.Int("culled", sum.Culled),
		zap.Int("pixels", sum.Pixels),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

// Err combines the errors of every failed result, or returns nil.
func Err(results []Result) error {
	var err error
	for _, r := range results {
		if !r.Success {
			err = multierr.Append(err, errors.Errorf("frame %d: %s", r.Frame, r.Error))
		}
	}
	return err
}

// FrameName is the file name of frame n.
func FrameName(n int, format string) string {
	return fmt.Sprintf("frame_%04d.%s", n, format)
}

func renderFrame(cfg Config, snap sample.Snapshot, cube *mesh.Mesh) Result {
	res := Result{
		Frame: snap.Frame,
		Angle: snap.Angle,
		View:  snap.View.Label(),
		Image: FrameName(snap.Frame, cfg.Format),
	}

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	fb := raster.NewFrameBuffer(cfg.Width*ss, cfg.Height*ss)
	res.Stats = sample.RenderSnapshot(fb, snap, cube, cfg.Sample)

	img := fb.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	if cfg.HUD {
		img = postprocess.Overlay(img, "Vista de Camara", "Vista: "+snap.View.Label())
	}

	if err := writeImage(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

func writeImage(path string, img image.Image, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	switch format {
	case config.FormatPNG:
		err = png.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	return errors.Wrapf(err, "encode %s", format)
}
