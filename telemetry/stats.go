package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated movement statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	Nudges         int     `csv:"nudges"`
	MeanIterations float64 `csv:"iterations_mean"`
	P90Iterations  float64 `csv:"iterations_p90"`
	MaxIterations  int     `csv:"iterations_max"`

	// Terminations by reason
	Complete       int `csv:"complete"`
	Blocked        int `csv:"blocked"`
	Exhausted      int `csv:"exhausted"`
	StuckLimit     int `csv:"stuck_limit"`
	IterationLimit int `csv:"iteration_limit"`

	// Contacts
	MaxContacts int `csv:"contacts_max"`
	Overflowed  int `csv:"contacts_overflowed"`
	Dropped     int `csv:"contacts_dropped"`

	// Distance actually travelled, in world units
	Distance float64 `csv:"distance"`
}

// Percentile returns the p-th percentile of a sorted slice, p in [0, 1].
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeIterationStats returns mean and 90th percentile of values.
func ComputeIterationStats(values []float64) (mean, p90 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return stat.Mean(sorted, nil), Percentile(sorted, 0.9)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("nudges", s.Nudges),
		slog.Float64("iterations_mean", s.MeanIterations),
		slog.Float64("iterations_p90", s.P90Iterations),
		slog.Int("iterations_max", s.MaxIterations),
		slog.Int("complete", s.Complete),
		slog.Int("blocked", s.Blocked),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("stuck_limit", s.StuckLimit),
		slog.Int("iteration_limit", s.IterationLimit),
		slog.Int("contacts_max", s.MaxContacts),
		slog.Int("contacts_overflowed", s.Overflowed),
		slog.Int("contacts_dropped", s.Dropped),
		slog.Float64("distance", s.Distance),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("movement", "stats", s)
}
