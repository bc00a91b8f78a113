package telemetry

import "github.com/pthm-cable/slide/systems"

// Collector accumulates nudge results within tick windows and produces
// WindowStats. It implements systems.NudgeObserver.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int

	iterations  []float64
	reasons     [systems.IterationLimit + 1]int
	maxIter     int
	maxContacts int
	overflowed  int
	dropped     int
	distance    float64
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window lasts.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		iterations:  make([]float64, 0, windowTicks),
	}
}

// ObserveNudge records one movement resolution.
func (c *Collector) ObserveNudge(_ systems.Body, res systems.NudgeResult) {
	c.iterations = append(c.iterations, float64(res.Iterations))
	if int(res.Reason) < len(c.reasons) {
		c.reasons[res.Reason]++
	}
	c.maxIter = max(c.maxIter, res.Iterations)
	c.maxContacts = max(c.maxContacts, len(res.Contacts))
	c.overflowed += res.Overflowed
	c.dropped += res.Dropped
	c.distance += res.Total.Length().Float64()
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int) WindowStats {
	mean, p90 := ComputeIterationStats(c.iterations)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Nudges:         len(c.iterations),
		MeanIterations: mean,
		P90Iterations:  p90,
		MaxIterations:  c.maxIter,

		Complete:       c.reasons[systems.Complete],
		Blocked:        c.reasons[systems.Blocked],
		Exhausted:      c.reasons[systems.Exhausted],
		StuckLimit:     c.reasons[systems.StuckLimit],
		IterationLimit: c.reasons[systems.IterationLimit],

		MaxContacts: c.maxContacts,
		Overflowed:  c.overflowed,
		Dropped:     c.dropped,
		Distance:    c.distance,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.iterations = c.iterations[:0]
	c.reasons = [len(c.reasons)]int{}
	c.maxIter = 0
	c.maxContacts = 0
	c.overflowed = 0
	c.dropped = 0
	c.distance = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
