package game

import (
	"github.com/pthm-cable/slide/systems"
	"github.com/pthm-cable/slide/telemetry"
)

// nudgeHooks receives every movement made by the physics system.
type nudgeHooks struct {
	g *Game
}

// ObserveNudge feeds the stats collector and snapshots movements that
// gave up before using their displacement.
func (h *nudgeHooks) ObserveNudge(before systems.Body, res systems.NudgeResult) {
	g := h.g
	g.collector.ObserveNudge(before, res)

	g.summary.Nudges++
	g.summary.Iterations += res.Iterations
	g.summary.MaxIterations = max(g.summary.MaxIterations, res.Iterations)
	if res.Reason != systems.StuckLimit && res.Reason != systems.IterationLimit {
		return
	}
	g.summary.Stuck++

	g.logger.Warn("movement gave up",
		"tick", g.tick,
		"reason", res.Reason.String(),
		"iterations", res.Iterations,
		"stuck", res.StuckCount,
		"position", before.Position.String(),
		"velocity", before.Velocity.String(),
	)
	if g.cfg.Telemetry.SnapshotOnStuck {
		g.saveSnapshot(before, res)
	}
}

// saveSnapshot writes a replayable record of one movement.
func (g *Game) saveSnapshot(before systems.Body, res systems.NudgeResult) {
	snapshot := telemetry.NewSnapshot(g.tick, before, res)
	snapshot.RunID = g.runInfo.ID
	snapshot.Level = g.level.Name
	snapshot.Fingerprint = g.fingerprint

	path, err := g.outputManager.WriteSnapshot(snapshot, g.cfg.Telemetry.MaxSnapshots)
	if err != nil {
		g.logger.Error("failed to save snapshot", "error", err)
		return
	}
	if path != "" {
		g.summary.Snapshots++
		g.logger.Info("snapshot saved", "path", path, "tick", g.tick)
	}
}

// flushTelemetry writes the stats and perf windows when they are complete.
func (g *Game) flushTelemetry() {
	if g.collector.ShouldFlush(g.tick) {
		stats := g.collector.Flush(g.tick)
		if g.logStats {
			stats.LogStats(g.logger)
		}
		if err := g.outputManager.WriteMovement(stats); err != nil {
			g.logger.Error("failed to write movement stats", "error", err)
		}

		for _, bm := range g.bookmarkDetector.Check(stats) {
			if g.logStats {
				bm.LogBookmark(g.logger)
			}
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				g.logger.Error("failed to write bookmark", "error", err)
			}
		}
	}

	if window := g.cfg.Telemetry.PerfWindow; window > 0 && g.tick%window == 0 {
		perfStats := g.perfCollector.Stats()
		if g.logStats {
			g.logger.Info("perf", "stats", perfStats)
		}
		if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
