package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkIterationSpike  BookmarkType = "iteration_spike"
	BookmarkGiveUpBurst     BookmarkType = "give_up_burst"
	BookmarkContactOverflow BookmarkType = "contact_overflow"
	BookmarkRecovered       BookmarkType = "recovered"
)

// Bookmark marks a stats window worth looking at.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark.
func (b Bookmark) LogBookmark(logger *slog.Logger) {
	logger.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// recoveryWindows is how many clean windows after a give-up burst count as
// recovery.
const recoveryWindows = 5

// BookmarkDetector watches movement stats windows for notable changes.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	sawOverflow  bool // overflow already reported since the last clean window
	inBurst      bool
	cleanWindows int // consecutive windows without give-ups since a burst
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Iteration spike: p90 above twice the rolling average
	if b := bd.checkIterationSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Give-up burst: several movements hit a limit in one window
	if b := bd.checkGiveUpBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Contact overflow: first overflowing window after clean ones
	if b := bd.checkContactOverflow(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Recovered: clean windows following a burst
	if b := bd.checkRecovered(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func giveUps(s WindowStats) int { return s.StuckLimit + s.IterationLimit }

func (bd *BookmarkDetector) checkIterationSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.P90Iterations
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.P90Iterations > avg*2.0 && stats.MaxIterations >= 4 {
		return &Bookmark{
			Type:        BookmarkIterationSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("p90 iterations %.1f is %.1fx average (%.2f)", stats.P90Iterations, stats.P90Iterations/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkGiveUpBurst(stats WindowStats) *Bookmark {
	n := giveUps(stats)
	if n < 3 || bd.inBurst {
		return nil
	}
	bd.inBurst = true
	bd.cleanWindows = 0

	return &Bookmark{
		Type:        BookmarkGiveUpBurst,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d movements gave up (%d stuck, %d at iteration limit)", n, stats.Nudges, stats.StuckLimit, stats.IterationLimit),
	}
}

func (bd *BookmarkDetector) checkContactOverflow(stats WindowStats) *Bookmark {
	if stats.Overflowed == 0 {
		bd.sawOverflow = false
		return nil
	}
	if bd.sawOverflow {
		return nil
	}
	bd.sawOverflow = true

	return &Bookmark{
		Type:        BookmarkContactOverflow,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d contacts over capacity, %d dropped, %d max kept", stats.Overflowed, stats.Dropped, stats.MaxContacts),
	}
}

func (bd *BookmarkDetector) checkRecovered(stats WindowStats) *Bookmark {
	if !bd.inBurst {
		return nil
	}
	if giveUps(stats) > 0 {
		bd.cleanWindows = 0
		return nil
	}

	bd.cleanWindows++
	if bd.cleanWindows < recoveryWindows {
		return nil
	}
	bd.inBurst = false
	bd.cleanWindows = 0

	return &Bookmark{
		Type:        BookmarkRecovered,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No movement gave up for %d windows", recoveryWindows),
	}
}
