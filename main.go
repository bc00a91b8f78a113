package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/game"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", "", "Level yaml (empty = config level, then the embedded level)")
	mode := flag.String("mode", "window", "Output: window, term or headless")
	scriptPath := flag.String("script", "", "Input script yaml (empty = keyboard)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots and config")
	logStats := flag.Bool("log-stats", false, "Output movement and perf stats via slog")
	debug := flag.Bool("debug", false, "Log every stuck movement in detail")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logOut := os.Stdout
	if *mode == "term" {
		// The terminal belongs to the sink
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *levelPath == "" {
		*levelPath = cfg.Level.Path
	}
	lvl, err := game.LoadLevel(*levelPath)
	if err != nil {
		slog.Error("failed to load level", "error", err)
		os.Exit(1)
	}

	opts := game.Options{
		Config:    cfg,
		Level:     lvl,
		Logger:    logger,
		Mode:      *mode,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}
	if *scriptPath != "" {
		script, err := input.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			os.Exit(1)
		}
		opts.Source = script
		opts.ScriptName = script.Name
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "headless":
		err = runHeadless(ctx, opts, *maxTicks)
	case "term":
		sink, serr := renderer.OpenTermSink()
		if serr != nil {
			slog.Error("failed to open terminal", "error", serr)
			os.Exit(1)
		}
		opts.Sink = sink
		err = runInteractive(ctx, opts, *maxTicks)
	case "window":
		opts.Sink = renderer.OpenRaylibSink(cfg.Derived.CameraSize, cfg.Screen.Scale, cfg.Screen.TargetFPS, "slide: "+lvl.Name)
		err = runInteractive(ctx, opts, *maxTicks)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
	if err != nil && ctx.Err() == nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, opts game.Options, maxTicks int) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"max_ticks", maxTicks,
		"script", opts.ScriptName,
	)
	_, err = g.RunHeadless(ctx, maxTicks)
	return err
}

func runInteractive(ctx context.Context, opts game.Options, maxTicks int) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		opts.Sink.Close()
		return err
	}
	defer g.Close()

	return g.Run(ctx, maxTicks)
}
