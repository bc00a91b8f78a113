package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/game"
	"github.com/pthm-cable/slide/input"
)

// Fitness weights. A give-up costs far more than an extra iteration, and
// drifting from where the default limits leave the player costs most.
const (
	weightStuck      = 100.0
	weightIterations = 1.0
	weightDrift      = 500.0
)

// runResult holds the results from a single script replay.
type runResult struct {
	summary game.Summary
	drift   float64 // distance from the reference end position
}

// FitnessEvaluator replays scripts headlessly and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	levelPath  string
	scripts    [][]byte
	maxTicks   int
	reference  []game.Summary // end states under the base config

	mu          sync.Mutex
	lastStuck   int
	lastAvgIter float64
}

// NewFitnessEvaluator replays every script once with the base config to
// record the reference end positions.
func NewFitnessEvaluator(ctx context.Context, params *ParamVector, baseCfg *config.Config, levelPath string, scripts [][]byte, maxTicks int) (*FitnessEvaluator, error) {
	fe := &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		levelPath:  levelPath,
		scripts:    scripts,
		maxTicks:   maxTicks,
	}
	ref, err := fe.runAll(ctx, baseCfg)
	if err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}
	fe.reference = make([]game.Summary, len(ref))
	for i, r := range ref {
		fe.reference[i] = r.summary
	}
	return fe, nil
}

// Last returns the stuck count and mean iterations of the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (stuck int, avgIterations float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStuck, fe.lastAvgIter
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) float64 {
	cfg := *fe.baseConfig
	if err := fe.params.ApplyToConfig(&cfg, x); err != nil {
		return math.Inf(1)
	}

	results, err := fe.runAll(ctx, &cfg)
	if err != nil {
		slog.Warn("evaluation failed", "error", err)
		return math.Inf(1)
	}

	var stuck, nudges, iterations int
	var drift float64
	for _, r := range results {
		stuck += r.summary.Stuck
		nudges += r.summary.Nudges
		iterations += r.summary.Iterations
		drift += r.drift
	}
	avgIter := 0.0
	if nudges > 0 {
		avgIter = float64(iterations) / float64(nudges)
	}

	fe.mu.Lock()
	fe.lastStuck = stuck
	fe.lastAvgIter = avgIter
	fe.mu.Unlock()

	return weightStuck*float64(stuck) + weightIterations*avgIter + weightDrift*drift
}

// runAll replays every script with cfg in parallel.
func (fe *FitnessEvaluator) runAll(ctx context.Context, cfg *config.Config) ([]runResult, error) {
	results := make([]runResult, len(fe.scripts))
	eg, ctx := errgroup.WithContext(ctx)
	for i, data := range fe.scripts {
		eg.Go(func() error {
			summary, err := fe.runScript(ctx, cfg, data)
			if err != nil {
				return err
			}
			results[i] = runResult{summary: summary}
			if fe.reference != nil {
				ref := fe.reference[i].Position
				dx := summary.Position.X.Float64() - ref.X.Float64()
				dy := summary.Position.Y.Float64() - ref.Y.Float64()
				results[i].drift = math.Hypot(dx, dy)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runScript replays one script in a fresh game without output files.
func (fe *FitnessEvaluator) runScript(ctx context.Context, cfg *config.Config, data []byte) (game.Summary, error) {
	script, err := input.ParseScript(data)
	if err != nil {
		return game.Summary{}, err
	}
	lvl, err := game.LoadLevel(fe.levelPath)
	if err != nil {
		return game.Summary{}, err
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:     cfg,
		Level:      lvl,
		Source:     script,
		Logger:     slog.New(slog.DiscardHandler),
		Mode:       "tune",
		ScriptName: script.Name,
	})
	if err != nil {
		return game.Summary{}, err
	}
	defer g.Close()

	return g.RunHeadless(ctx, fe.maxTicks)
}
