// Package main replays input scripts headlessly, several at a time, and
// summarizes how the player's movement resolved in each. Given a stuck
// snapshot instead, it re-runs that single movement with debug logging.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/game"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/telemetry"
)

// result is one row of summary.csv.
type result struct {
	Script        string  `csv:"script"`
	Ticks         int     `csv:"ticks"`
	X             float64 `csv:"x"`
	Y             float64 `csv:"y"`
	Nudges        int     `csv:"nudges"`
	MaxIterations int     `csv:"iterations_max"`
	Stuck         int     `csv:"stuck"`
	Snapshots     int     `csv:"snapshots"`
	Elapsed       string  `csv:"elapsed"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", "", "Level yaml (empty = config level, then the embedded level)")
	maxTicks := flag.Int("max-ticks", 0, "Stop each script after N ticks (0 = script length)")
	outputDir := flag.String("output", "", "Output directory; each script gets a subdirectory")
	jobs := flag.Int("jobs", runtime.GOMAXPROCS(0), "Scripts replayed at once")
	snapshotPath := flag.String("snapshot", "", "Re-run the movement recorded in a stuck snapshot")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *levelPath == "" {
		*levelPath = cfg.Level.Path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case *snapshotPath != "":
		err = replaySnapshot(cfg, *levelPath, *snapshotPath)
	case flag.NArg() == 0:
		err = errors.New("no scripts given")
	default:
		err = replayScripts(ctx, cfg, *levelPath, flag.Args(), *maxTicks, *jobs, *outputDir)
	}
	if err != nil {
		slog.Error("replay failed", "error", err)
		os.Exit(1)
	}
}

// replayScripts runs every script in its own game and writes summary.csv.
func replayScripts(ctx context.Context, cfg *config.Config, levelPath string, paths []string, maxTicks, jobs int, outputDir string) error {
	results := make([]result, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(jobs, 1))
	for i, path := range paths {
		eg.Go(func() error {
			r, err := replayScript(ctx, cfg, levelPath, path, maxTicks, outputDir)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		slog.Info("script replayed",
			"script", r.Script,
			"ticks", r.Ticks,
			"x", r.X,
			"y", r.Y,
			"stuck", r.Stuck,
			"iterations_max", r.MaxIterations,
		)
	}

	if outputDir == "" {
		return gocsv.Marshal(results, os.Stdout)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(outputDir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()
	return gocsv.MarshalFile(results, f)
}

func replayScript(ctx context.Context, cfg *config.Config, levelPath, path string, maxTicks int, outputDir string) (result, error) {
	script, err := input.LoadScript(path)
	if err != nil {
		return result{}, err
	}
	// Each game gets its own level, the tile grid is not shared
	lvl, err := game.LoadLevel(levelPath)
	if err != nil {
		return result{}, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := ""
	if outputDir != "" {
		dir = filepath.Join(outputDir, name)
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:     cfg,
		Level:      lvl,
		Source:     script,
		Logger:     slog.Default().With("script", name),
		Mode:       "replay",
		ScriptName: script.Name,
		OutputDir:  dir,
	})
	if err != nil {
		return result{}, err
	}

	start := time.Now()
	summary, runErr := g.RunHeadless(ctx, maxTicks)
	closeErr := g.Close()
	if err := errors.Join(runErr, closeErr); err != nil {
		return result{}, err
	}

	return result{
		Script:        name,
		Ticks:         summary.Ticks,
		X:             summary.Position.X.Float64(),
		Y:             summary.Position.Y.Float64(),
		Nudges:        summary.Nudges,
		MaxIterations: summary.MaxIterations,
		Stuck:         summary.Stuck,
		Snapshots:     summary.Snapshots,
		Elapsed:       time.Since(start).Round(time.Microsecond).String(),
	}, nil
}

// replaySnapshot repeats a recorded movement against the same level.
func replaySnapshot(cfg *config.Config, levelPath, path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	lvl, err := game.LoadLevel(levelPath)
	if err != nil {
		return err
	}
	if fp := fmt.Sprintf("%016x", lvl.Fingerprint()); snapshot.Fingerprint != "" && fp != snapshot.Fingerprint {
		return fmt.Errorf("snapshot was taken on level %q (%s), got %q (%s)",
			snapshot.Level, snapshot.Fingerprint, lvl.Name, fp)
	}

	debug := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, mover := game.NewMover(cfg, lvl, debug)

	body := snapshot.Body()
	res := mover.Nudge(&body, body.Velocity)

	debug.Info("snapshot replayed",
		"tick", snapshot.Tick,
		"recorded_reason", snapshot.Reason,
		"reason", res.Reason.String(),
		"recorded_iterations", snapshot.Iterations,
		"iterations", res.Iterations,
		"total", res.Total.String(),
		"position", body.Position.String(),
	)
	if res.Reason.String() != snapshot.Reason || res.Iterations != snapshot.Iterations {
		return errors.New("replayed movement differs from the snapshot")
	}
	return nil
}
