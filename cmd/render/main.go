package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"instancing-renderer/internal/batch"
	"instancing-renderer/internal/config"
	"instancing-renderer/internal/raster"
	"instancing-renderer/internal/sample"
	"instancing-renderer/internal/texture"
	"instancing-renderer/internal/viewmatrix"
)

func main() {
	app := &cli.App{
		Name:  "render",
		Usage: "render the instanced cube tower to an image sequence",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a JSON or YAML config file"},
			&cli.IntFlag{Name: "frames", Usage: "number of frames to render (default: 120)"},
			&cli.StringFlag{Name: "view", Usage: "camera view: 0-7, name (front, top, ...) or label (Frontal, Superior, ...)"},
			&cli.IntFlag{Name: "cycle", Usage: "switch to the next view every N frames (0 holds the view)"},
			&cli.IntFlag{Name: "width", Usage: "output width in pixels (default: 512)"},
			&cli.IntFlag{Name: "height", Usage: "output height in pixels (default: width)"},
			&cli.IntFlag{Name: "supersample", Usage: "render scale before downsampling (default: 2)"},
			&cli.StringFlag{Name: "format", Usage: "output format: webp or png (default: webp)"},
			&cli.StringFlag{Name: "output", Usage: "output directory (default: renders)"},
			&cli.StringFlag{Name: "textures", Usage: "texture directory (default: assets)"},
			&cli.StringFlag{Name: "texture", Usage: "texture name to put on the cubes (default: DGLogo)"},
			&cli.IntFlag{Name: "workers", Usage: "number of render goroutines (default: NumCPU)"},
			&cli.BoolFlag{Name: "verbose", Usage: "development logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Load config
	var cfg config.Config
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	view := -1
	if s := c.String("view"); s != "" {
		opt, ok := viewmatrix.Parse(s)
		if !ok {
			logger.Warn("unknown view, using front", zap.String("view", s))
			opt = viewmatrix.Front
		}
		view = int(opt)
	}
	if c.IsSet("cycle") {
		cfg.CycleEvery = c.Int("cycle")
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   c.String("output"),
		TextureDir:  c.String("textures"),
		Texture:     c.String("texture"),
		Frames:      c.Int("frames"),
		View:        view,
		Width:       c.Int("width"),
		Height:      c.Int("height"),
		Supersample: c.Int("supersample"),
		Format:      c.String("format"),
		Workers:     c.Int("workers"),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	clearColor, _ := cfg.Clear()

	// Texture lookup
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex, logger)
	tex := texCache.Resolve(cfg.Texture)
	if tex == nil {
		logger.Warn("texture not found, drawing untextured",
			zap.String("texture", cfg.Texture),
			zap.String("dir", cfg.TextureDir),
			zap.Int("indexed", texIndex.Len()))
	}

	var lights *raster.LightConfig
	if *cfg.Lighting {
		lc := raster.DefaultLightConfig()
		lights = &lc
	}

	opts := sample.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		WrapAngle:  cfg.WrapAngle,
		Texture:    tex,
		Lights:     lights,
		ClearColor: clearColor,
	}

	logger.Info("instanced cube renderer",
		zap.Int("frames", cfg.Frames),
		zap.String("view", viewmatrix.Option(cfg.View).Label()),
		zap.Int("cycle_every", cfg.CycleEvery),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.String("format", cfg.Format),
		zap.Int("workers", cfg.Workers),
		zap.String("output", cfg.OutputDir))

	// Scene state advances on this goroutine only.
	s := sample.New(opts)
	snaps := batch.Plan(s, cfg.Frames, batch.Cycle(cfg.View, cfg.CycleEvery, len(viewmatrix.Options())))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		HUD:         *cfg.HUD,
		Workers:     cfg.Workers,
		Sample:      opts,
		Logger:      logger,
	}
	results := batch.Run(ctx, batchCfg, snaps)

	// Write manifest
	manifest := batch.NewManifest(batchCfg, results, time.Now())
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		logger.Warn("manifest write failed", zap.Error(err))
	} else {
		logger.Info("manifest written", zap.String("path", manifestPath), zap.String("run_id", manifest.RunID))
	}

	logger.Info("rendered", zap.Int("ok", manifest.Rendered), zap.Int("total", len(results)))
	return batch.Err(results)
}
