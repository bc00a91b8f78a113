package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/systems"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(4)
	var _ systems.NudgeObserver = c

	c.ObserveNudge(systems.Body{}, systems.NudgeResult{Total: geom.Vec(3, 4), Iterations: 1, Reason: systems.Complete})
	c.ObserveNudge(systems.Body{}, systems.NudgeResult{
		Total:      geom.Vec(0, 1),
		Iterations: 3,
		Reason:     systems.StuckLimit,
		Contacts:   make([]collision.Contact, 5),
		Overflowed: 2,
		Dropped:    1,
	})
	c.ObserveNudge(systems.Body{}, systems.NudgeResult{Iterations: 2, Reason: systems.Exhausted})

	if c.ShouldFlush(3) {
		t.Error("window should not be complete at tick 3")
	}
	if !c.ShouldFlush(4) {
		t.Error("window should be complete at tick 4")
	}

	s := c.Flush(4)
	if s.Nudges != 3 || s.MaxIterations != 3 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if math.Abs(s.MeanIterations-2) > 1e-9 {
		t.Errorf("mean iterations = %v, want 2", s.MeanIterations)
	}
	if s.Complete != 1 || s.StuckLimit != 1 || s.Exhausted != 1 || s.Blocked != 0 {
		t.Errorf("unexpected terminations: %+v", s)
	}
	if s.MaxContacts != 5 || s.Overflowed != 2 || s.Dropped != 1 {
		t.Errorf("unexpected contact stats: %+v", s)
	}
	if math.Abs(s.Distance-6) > 1e-3 {
		t.Errorf("distance = %v, want 6", s.Distance)
	}

	// Counters reset for the next window
	next := c.Flush(8)
	if next.Nudges != 0 || next.Complete != 0 || next.Distance != 0 || next.WindowStartTick != 4 {
		t.Errorf("expected empty window, got %+v", next)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for end := 60; end <= 120; end += 60 {
		if err := om.WriteMovement(WindowStats{WindowEndTick: end, Nudges: 60}); err != nil {
			t.Fatal(err)
		}
		if err := om.WritePerf(PerfStats{}, end); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteRun(NewRunInfo("headless", "test place", "abcd")); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "movement.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,nudges,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "120,60,") {
		t.Errorf("unexpected row %q", lines[2])
	}

	run, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(run), "mode: headless") {
		t.Errorf("run.yaml missing mode: %s", run)
	}
}

func TestOutputManagerSnapshotLimit(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	s := testSnapshot()
	for i := 0; i < 3; i++ {
		s.Tick = i
		path, err := om.WriteSnapshot(s, 2)
		if err != nil {
			t.Fatal(err)
		}
		if (path == "") != (i == 2) {
			t.Errorf("snapshot %d: unexpected path %q", i, path)
		}
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	if err := om.WriteMovement(WindowStats{}); err != nil {
		t.Error(err)
	}
	if path, err := om.WriteSnapshot(testSnapshot(), 0); path != "" || err != nil {
		t.Errorf("expected no-op, got %q, %v", path, err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}
