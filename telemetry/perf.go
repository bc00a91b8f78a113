package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one game tick.
const (
	PhaseInput     = "input"
	PhaseControl   = "control"
	PhaseAnimation = "animation"
	PhasePhysics   = "physics"
	PhaseCamera    = "camera"
	PhasePresent   = "present"
)

// Phases lists the tick phases in execution order.
var Phases = []string{PhaseInput, PhaseControl, PhaseAnimation, PhasePhysics, PhaseCamera, PhasePresent}

// tickSample is the timing of one tick, phases indexed like Phases.
type tickSample struct {
	total  time.Duration
	phases [6]time.Duration
}

// PerfCollector times tick phases over a rolling window of ticks and
// counts ticks that overran the frame budget.
type PerfCollector struct {
	// Budget is the time one tick may take; zero disables the count.
	Budget time.Duration

	now     func() time.Time
	samples []tickSample
	next    int
	filled  int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 outside a phase
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:     time.Now,
		samples: make([]tickSample, windowSize),
		phase:   -1,
	}
}

func phaseIndex(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickSample{}
	p.phase = -1
}

// StartPhase ends the running phase, if any, and begins timing phase.
// Names outside Phases are timed as part of the tick only.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.endPhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.endPhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks      int
	AvgTick    time.Duration
	MaxTick    time.Duration
	OverBudget int // ticks slower than the budget

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick
}

// Stats computes the statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Ticks:    p.filled,
		PhaseAvg: make(map[string]time.Duration, len(Phases)),
		PhasePct: make(map[string]float64, len(Phases)),
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	var phases [len(tickSample{}.phases)]time.Duration
	for _, s := range p.samples[:p.filled] {
		total += s.total
		stats.MaxTick = max(stats.MaxTick, s.total)
		if p.Budget > 0 && s.total > p.Budget {
			stats.OverBudget++
		}
		for i, d := range s.phases {
			phases[i] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgTick = total / n
	for i, name := range Phases {
		avg := phases[i] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgTick > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTick) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("over_budget", s.OverBudget),
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	OverBudget   int     `csv:"over_budget"`
	InputPct     float64 `csv:"input_pct"`
	ControlPct   float64 `csv:"control_pct"`
	AnimationPct float64 `csv:"animation_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	PresentPct   float64 `csv:"present_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		OverBudget:   s.OverBudget,
		InputPct:     s.PhasePct[PhaseInput],
		ControlPct:   s.PhasePct[PhaseControl],
		AnimationPct: s.PhasePct[PhaseAnimation],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		CameraPct:    s.PhasePct[PhaseCamera],
		PresentPct:   s.PhasePct[PhasePresent],
	}
}
