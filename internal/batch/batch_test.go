package batch

import (
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"golang.org/x/image/webp"

	"instancing-renderer/internal/config"
	"instancing-renderer/internal/sample"
	"instancing-renderer/internal/viewmatrix"
)

func testConfig(t *testing.T, format string) Config {
	t.Helper()
	return Config{
		OutputDir:   filepath.Join(t.TempDir(), "out"),
		Format:      format,
		Width:       48,
		Height:      32,
		Supersample: 2,
		HUD:         true,
		Workers:     3,
		Sample:      sample.Options{Width: 48, Height: 32},
	}
}

func TestCycle(t *testing.T) {
	t.Parallel()

	hold := Cycle(4, 0, 8)
	assert.Equal(t, 4, hold(0))
	assert.Equal(t, 4, hold(99))

	c := Cycle(6, 2, 8)
	got := []int{c(0), c(1), c(2), c(3), c(4), c(5)}
	assert.Equal(t, []int{6, 6, 7, 7, 0, 0}, got)
}

func TestCycleOutOfRangeStartsAtFront(t *testing.T) {
	t.Parallel()

	for _, start := range []int{-1, 8, 9, 1000} {
		c := Cycle(start, 10, 8)
		assert.Equal(t, int(viewmatrix.Front), c(0), "start %d", start)
		assert.Equal(t, int(viewmatrix.Front), c(9), "start %d", start)
		assert.Equal(t, int(viewmatrix.Back), c(10), "start %d", start)

		hold := Cycle(start, 0, 8)
		assert.Equal(t, int(viewmatrix.Front), hold(42), "start %d", start)
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()

	s := sample.New(sample.Options{Width: 16, Height: 16})
	snaps := Plan(s, 4, Cycle(0, 1, 8))
	require.Len(t, snaps, 4)
	for i, snap := range snaps {
		assert.Equal(t, i, snap.Frame)
		assert.Equal(t, viewmatrix.Option(i), snap.View)
	}
	assert.Greater(t, snaps[3].Angle, snaps[0].Angle)
}

func TestRunWritesPNG(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, config.FormatPNG)
	s := sample.New(cfg.Sample)
	results := Run(context.Background(), cfg, Plan(s, 3, Cycle(0, 0, 8)))

	require.Len(t, results, 3)
	require.NoError(t, Err(results))
	for i, r := range results {
		assert.Equal(t, i, r.Frame)
		assert.Equal(t, "Frontal", r.View)
		assert.Positive(t, r.Stats.Pixels)

		f, err := os.Open(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 48, img.Bounds().Dx())
		assert.Equal(t, 32, img.Bounds().Dy())
	}
}

func TestRunWritesWebP(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, config.FormatWebP)
	cfg.Supersample = 1
	cfg.HUD = false
	s := sample.New(cfg.Sample)
	results := Run(context.Background(), cfg, Plan(s, 2, Cycle(4, 0, 8)))
	require.NoError(t, Err(results))

	f, err := os.Open(filepath.Join(cfg.OutputDir, FrameName(1, "webp")))
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t, config.FormatPNG)
	s := sample.New(cfg.Sample)
	results := Run(ctx, cfg, Plan(s, 5, Cycle(0, 0, 8)))

	require.Len(t, results, 5)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, "not rendered", r.Error)
	}
	assert.Len(t, multierr.Errors(Err(results)), 5)
}

func TestRunBadOutputDir(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := testConfig(t, config.FormatPNG)
	cfg.OutputDir = filepath.Join(blocker, "out")
	s := sample.New(cfg.Sample)
	results := Run(context.Background(), cfg, Plan(s, 2, Cycle(0, 0, 8)))
	require.Error(t, Err(results))
	assert.False(t, results[0].Success)
}

func TestManifest(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, config.FormatWebP)
	results := []Result{
		{Frame: 0, Angle: 1, View: "Frontal", Image: "frame_0000.webp", Success: true},
		{Frame: 1, Angle: 2, View: "Frontal", Image: "frame_0001.webp", Error: "boom"},
	}
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	m := NewManifest(cfg, results, now)
	assert.Equal(t, 1, m.Rendered)
	assert.NotEmpty(t, m.RunID)
	assert.Empty(t, m.Frames[1].Image)
	assert.Equal(t, "boom", m.Frames[1].Error)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Manifest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m.RunID, back.RunID)
	assert.Equal(t, "frame_0000.webp", back.Frames[0].Image)
	assert.True(t, now.Equal(back.Created))
}

func TestFrameName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "frame_0042.png", FrameName(42, "png"))
}
