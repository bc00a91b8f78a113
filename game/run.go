package game

import (
	"context"
	"errors"

	"github.com/pthm-cable/slide/geom"
)

// Summary totals a run's movement.
type Summary struct {
	Ticks    int
	Position geom.Point
	Velocity geom.Vector

	Nudges        int
	Iterations    int // summed over all nudges
	MaxIterations int
	Stuck         int // movements ending at the stuck or iteration limit
	Snapshots     int
}

// finite is implemented by sources that run out, such as scripts.
type finite interface {
	Done() bool
}

// RunHeadless steps the simulation without waiting for frames until
// maxTicks have run, the input source is used up, or ctx is cancelled.
// maxTicks <= 0 means no tick limit, in which case the source must be
// finite.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int) (Summary, error) {
	src, isFinite := g.source.(finite)
	if maxTicks <= 0 && !isFinite {
		return Summary{}, errors.New("headless run needs a tick limit or a finite input source")
	}

	for maxTicks <= 0 || g.tick < maxTicks {
		if isFinite && src.Done() {
			break
		}
		if err := ctx.Err(); err != nil {
			return g.Summary(), err
		}
		if err := g.Update(); err != nil {
			return g.Summary(), err
		}
	}

	s := g.Summary()
	g.logger.Info("headless run finished",
		"ticks", s.Ticks,
		"position", s.Position.String(),
		"nudges", s.Nudges,
		"max_iterations", s.MaxIterations,
		"stuck", s.Stuck,
	)
	return s, nil
}

// Run drives an interactive sink until the user quits or maxTicks have
// run (maxTicks <= 0 means no limit). Frames are paced by the sink.
func (g *Game) Run(ctx context.Context, maxTicks int) error {
	if g.interactive == nil {
		return errors.New("sink is not interactive")
	}
	for !g.interactive.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Update(); err != nil {
			return err
		}
		if maxTicks > 0 && g.tick >= maxTicks {
			g.logger.Info("max ticks reached", "tick", g.tick)
			break
		}
	}
	return nil
}

// Close records the final tick count and releases the sink and output
// files.
func (g *Game) Close() error {
	g.runInfo.Ticks = g.tick
	if err := g.outputManager.WriteRun(g.runInfo); err != nil {
		g.logger.Error("failed to write run info", "error", err)
	}
	return errors.Join(g.outputManager.Close(), g.sink.Close())
}
