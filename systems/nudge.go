package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

// MoveLimits bounds the work done by one Nudge.
type MoveLimits struct {
	// Leftover movement below this on both axes counts as done.
	CompletionThreshold fixed.Fixed
	// An iteration applying less than this on both axes counts as stuck.
	StuckThreshold fixed.Fixed
	StuckLimit     int
	MaxIterations  int
}

// DefaultMoveLimits returns the standard per-frame limits.
func DefaultMoveLimits() MoveLimits {
	return MoveLimits{
		CompletionThreshold: fixed.One / 16,
		StuckThreshold:      fixed.One / 64,
		StuckLimit:          3,
		MaxIterations:       16,
	}
}

// Termination says why a Nudge stopped.
type Termination uint8

const (
	// Complete means the displacement was used up.
	Complete Termination = iota
	// Blocked means no slide direction remained.
	Blocked
	// Exhausted means sliding left too little movement to continue.
	Exhausted
	// StuckLimit means too many iterations made no progress.
	StuckLimit
	// IterationLimit means the iteration cap was hit.
	IterationLimit
)

func (t Termination) String() string {
	switch t {
	case Complete:
		return "complete"
	case Blocked:
		return "blocked"
	case Exhausted:
		return "exhausted"
	case StuckLimit:
		return "stuck_limit"
	case IterationLimit:
		return "iteration_limit"
	}
	return fmt.Sprintf("Termination(%d)", uint8(t))
}

// Body is the moving state of an entity. Hitbox is relative to Position.
type Body struct {
	Position geom.Point
	Velocity geom.Vector
	Hitbox   geom.Rect
}

// NudgeResult reports what a Nudge did.
type NudgeResult struct {
	Total      geom.Vector
	Iterations int
	StuckCount int
	Reason     Termination
	// Contacts retained by the last sweep.
	Contacts []collision.Contact
	// Overflowed counts contacts beyond the list capacity over all sweeps.
	Overflowed int
	Dropped    int
}

// Mover moves bodies through a Collider, sliding along whatever they hit.
type Mover struct {
	Collider Collider
	Limits   MoveLimits
	Logger   *slog.Logger
}

// NewMover creates a mover with default limits.
func NewMover(c Collider, logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{Collider: c, Limits: DefaultMoveLimits(), Logger: logger}
}

// Nudge moves body by displacement, updating its position and velocity.
// When movement is blocked the remainder is redirected along the blocking
// surfaces and retried, until it is used up or no progress can be made.
func (m *Mover) Nudge(body *Body, displacement geom.Vector) NudgeResult {
	var res NudgeResult
	hitbox := collision.PolygonFromRect(body.Hitbox.Translate(body.Position.ToVector()))
	limits := m.Limits

	for {
		if limits.MaxIterations > 0 && res.Iterations >= limits.MaxIterations {
			res.Reason = IterationLimit
			break
		}
		res.Iterations++

		sweep := m.Collider.Sweep(hitbox.MoveBy(res.Total), displacement)
		body.Position = body.Position.Add(sweep.Allowed)
		res.Total = res.Total.Add(sweep.Allowed)

		var contacts []collision.Contact
		if sweep.Contacts != nil {
			contacts = sweep.Contacts.All()
			res.Contacts = sweep.Contacts.Clone()
			res.Overflowed += sweep.Contacts.Overflowed()
			res.Dropped += sweep.Contacts.Dropped()
		} else {
			res.Contacts = nil
		}

		remaining := displacement.Sub(sweep.Allowed)
		if remaining.AlmostZero(limits.CompletionThreshold) {
			res.Reason = Complete
			break
		}

		if v := SlideAlongNormals(contacts, body.Velocity); v.Stuck {
			body.Velocity = geom.Vector{}
		} else {
			body.Velocity = v.Direction
		}

		next := SlideAlongNormals(contacts, remaining)
		if next.Stuck {
			res.Reason = Blocked
			break
		}
		displacement = next.Direction

		if displacement.AlmostZero(limits.CompletionThreshold) {
			res.Reason = Exhausted
			break
		}

		// Counted over the whole call, not reset by progress
		if sweep.Allowed.AlmostZero(limits.StuckThreshold) {
			res.StuckCount++
			if res.StuckCount >= limits.StuckLimit {
				res.Reason = StuckLimit
				break
			}
		}
	}

	if m.Logger != nil && (res.Reason == StuckLimit || res.Reason == IterationLimit) {
		m.Logger.Debug("nudge gave up",
			"reason", res.Reason.String(),
			"iterations", res.Iterations,
			"position", body.Position.String(),
			"total", res.Total.String(),
		)
	}
	if m.Logger != nil && res.Overflowed > 0 {
		m.Logger.Debug("contact list overflow", "overflowed", res.Overflowed, "dropped", res.Dropped)
	}

	return res
}
