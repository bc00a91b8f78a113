package telemetry

import (
	"testing"
)

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_IterationSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Quiet history: most movements resolve in two iterations
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 60, Nudges: 60, P90Iterations: 2, MaxIterations: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Nudges: 60, P90Iterations: 6, MaxIterations: 9})
	if !hasBookmark(bookmarks, BookmarkIterationSpike) {
		t.Error("expected iteration_spike bookmark")
	}

	// Too little history to compare against
	fresh := NewBookmarkDetector(10)
	fresh.Check(WindowStats{P90Iterations: 1})
	if hasBookmark(fresh.Check(WindowStats{P90Iterations: 8, MaxIterations: 8}), BookmarkIterationSpike) {
		t.Error("spike reported without enough history")
	}
}

func TestBookmarkDetector_GiveUpBurstAndRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	burst := WindowStats{WindowEndTick: 60, Nudges: 60, StuckLimit: 2, IterationLimit: 2}
	if !hasBookmark(bd.Check(burst), BookmarkGiveUpBurst) {
		t.Fatal("expected give_up_burst bookmark")
	}
	// Reported once per burst
	if hasBookmark(bd.Check(burst), BookmarkGiveUpBurst) {
		t.Error("burst reported twice")
	}

	var recovered int
	for i := 0; i < recoveryWindows; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: 180 + i*60, Nudges: 60})
		if hasBookmark(bookmarks, BookmarkRecovered) {
			recovered = i + 1
		}
	}
	if recovered != recoveryWindows {
		t.Errorf("recovered after %d windows, want %d", recovered, recoveryWindows)
	}

	// A new burst can be reported again
	if !hasBookmark(bd.Check(burst), BookmarkGiveUpBurst) {
		t.Error("expected a second give_up_burst bookmark")
	}
}

func TestBookmarkDetector_ContactOverflow(t *testing.T) {
	bd := NewBookmarkDetector(10)

	over := WindowStats{WindowEndTick: 60, Overflowed: 3, Dropped: 3, MaxContacts: 8}
	if !hasBookmark(bd.Check(over), BookmarkContactOverflow) {
		t.Fatal("expected contact_overflow bookmark")
	}
	if hasBookmark(bd.Check(over), BookmarkContactOverflow) {
		t.Error("overflow reported again without a clean window")
	}
	bd.Check(WindowStats{WindowEndTick: 180})
	if !hasBookmark(bd.Check(over), BookmarkContactOverflow) {
		t.Error("expected overflow to be reported after a clean window")
	}
}
