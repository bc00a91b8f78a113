package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot captures an actor that failed to finish its movement, with
// enough state to replay the nudge against the same level.
type Snapshot struct {
	Version int    `yaml:"version"`
	RunID   string `yaml:"run_id,omitempty"`
	Tick    int    `yaml:"tick"`

	Level       string `yaml:"level"`
	Fingerprint string `yaml:"fingerprint"`

	// Raw fixed-point values so the replay is exact
	Position [2]int64 `yaml:"position"`
	Velocity [2]int64 `yaml:"velocity"`
	Hitbox   [4]int64 `yaml:"hitbox"`

	Reason     string         `yaml:"reason"`
	Iterations int            `yaml:"iterations"`
	StuckCount int            `yaml:"stuck_count"`
	Total      [2]float64     `yaml:"total"`
	Contacts   []ContactState `yaml:"contacts"`
}

// ContactState is the serialized form of a contact, in world units.
type ContactState struct {
	Type      string     `yaml:"type"`
	Cell      [2]int     `yaml:"cell"`
	Amount    float64    `yaml:"amount"`
	TouchDist float64    `yaml:"touchdist"`
	Movement  [2]float64 `yaml:"movement"`
	Left      []float64  `yaml:"left,flow,omitempty"`
	Right     []float64  `yaml:"right,flow,omitempty"`
}

// NewSnapshot builds a snapshot from the body as it was before the nudge
// and the result that ended it.
func NewSnapshot(tick int, body systems.Body, res systems.NudgeResult) *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		Tick:       tick,
		Position:   [2]int64{body.Position.X.Bits(), body.Position.Y.Bits()},
		Velocity:   [2]int64{body.Velocity.X.Bits(), body.Velocity.Y.Bits()},
		Hitbox:     rectBits(body.Hitbox),
		Reason:     res.Reason.String(),
		Iterations: res.Iterations,
		StuckCount: res.StuckCount,
		Total:      vecFloats(res.Total),
	}
	for _, c := range res.Contacts {
		s.Contacts = append(s.Contacts, contactState(c))
	}
	return s
}

// Body restores the pre-nudge body.
func (s *Snapshot) Body() systems.Body {
	var b systems.Body
	b.Position.X, b.Position.Y = fixed.FromBits(s.Position[0]), fixed.FromBits(s.Position[1])
	b.Velocity.X, b.Velocity.Y = fixed.FromBits(s.Velocity[0]), fixed.FromBits(s.Velocity[1])
	b.Hitbox.Origin.X, b.Hitbox.Origin.Y = fixed.FromBits(s.Hitbox[0]), fixed.FromBits(s.Hitbox[1])
	b.Hitbox.Size.W, b.Hitbox.Size.H = fixed.FromBits(s.Hitbox[2]), fixed.FromBits(s.Hitbox[3])
	return b
}

func contactState(c collision.Contact) ContactState {
	cs := ContactState{
		Type:      c.Type.String(),
		Cell:      [2]int{c.Cell.X, c.Cell.Y},
		Amount:    c.Amount.Float64(),
		TouchDist: c.TouchDist.Float64(),
		Movement:  vecFloats(c.Movement),
	}
	if c.HasLeft {
		v := vecFloats(c.LeftNormal)
		cs.Left = v[:]
	}
	if c.HasRight {
		v := vecFloats(c.RightNormal)
		cs.Right = v[:]
	}
	return cs
}

func vecFloats(v geom.Vector) [2]float64 { return [2]float64{v.X.Float64(), v.Y.Float64()} }

func rectBits(r geom.Rect) [4]int64 {
	return [4]int64{r.Origin.X.Bits(), r.Origin.Y.Bits(), r.Size.W.Bits(), r.Size.H.Bits()}
}

// SaveSnapshot writes a snapshot to dir and returns its path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("stuck_%06d_%s.yaml", snapshot.Tick, snapshot.Reason)
	path := filepath.Join(dir, name)

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
