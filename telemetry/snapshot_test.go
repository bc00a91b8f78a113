package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/systems"
)

func testSnapshot() *Snapshot {
	body := systems.Body{
		Position: geom.Point{X: fixed.FromInt(16), Y: fixed.FromFloat(37.5)},
		Velocity: geom.Vector{Y: fixed.FromRatio(16, 75)},
		Hitbox:   geom.R(-6, -26, 12, 27),
	}
	floor := geom.Vec(0, -1)
	res := systems.NudgeResult{
		Total:      geom.Vector{Y: fixed.FromFloat(1.5)},
		Iterations: 3,
		StuckCount: 3,
		Reason:     systems.StuckLimit,
		Contacts: []collision.Contact{{
			Type:       collision.Collide,
			Amount:     fixed.FromFloat(0.75),
			Movement:   geom.Vector{Y: fixed.FromFloat(1.5)},
			LeftNormal: floor,
			HasLeft:    true,
			Cell:       collision.CellIndex{X: 1, Y: 5},
		}},
	}
	return NewSnapshot(1000, body, res)
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	snapshot := testSnapshot()
	snapshot.Level = "test place"
	snapshot.Fingerprint = "00ff"

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, "stuck_001000_stuck_limit.yaml") {
		t.Errorf("unexpected snapshot path %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Tick != 1000 || loaded.Reason != "stuck_limit" || loaded.Level != "test place" {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(loaded.Contacts))
	}
	c := loaded.Contacts[0]
	if c.Type != collision.Collide.String() {
		t.Errorf("unexpected contact type %q", c.Type)
	}
	if c.Amount != 0.75 || c.Cell != [2]int{1, 5} {
		t.Errorf("contact mismatch: %+v", c)
	}
	if len(c.Left) != 2 || c.Left[1] != -1 || c.Right != nil {
		t.Errorf("normals mismatch: left %v right %v", c.Left, c.Right)
	}
}

func TestSnapshotBodyIsExact(t *testing.T) {
	snapshot := testSnapshot()
	path, err := SaveSnapshot(snapshot, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	body := loaded.Body()
	if body.Velocity.Y != fixed.FromRatio(16, 75) {
		t.Errorf("velocity lost precision: %v", body.Velocity)
	}
	if body.Position.Y != fixed.FromFloat(37.5) {
		t.Errorf("position mismatch: %v", body.Position)
	}
	if body.Hitbox != geom.R(-6, -26, 12, 27) {
		t.Errorf("hitbox mismatch: %v", body.Hitbox)
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnapshot(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("version: 99\ntick: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for unknown version")
	}
}
