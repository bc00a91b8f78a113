// Package systems contains tile collision, the movement solver and the ECS
// systems that drive actors with it.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slide/components"
	"github.com/pthm-cable/slide/fixed"
)

// NudgeObserver is told about every movement the physics system makes,
// with the body as it was before the move.
type NudgeObserver interface {
	ObserveNudge(before Body, res NudgeResult)
}

// PhysicsSystem applies gravity and moves actors through the world.
type PhysicsSystem struct {
	filter   ecs.Filter4[components.Position, components.Velocity, components.Hitbox, components.Contacts]
	mover    *Mover
	gravity  fixed.Fixed
	observer NudgeObserver
}

// NewPhysicsSystem creates a new physics system. observer may be nil.
func NewPhysicsSystem(w *ecs.World, mover *Mover, gravity fixed.Fixed, observer NudgeObserver) *PhysicsSystem {
	return &PhysicsSystem{
		filter:   *ecs.NewFilter4[components.Position, components.Velocity, components.Hitbox, components.Contacts](w),
		mover:    mover,
		gravity:  gravity,
		observer: observer,
	}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, hitbox, contacts := query.Get()

		vel.Y += s.gravity

		body := Body{Position: pos.Point(), Velocity: vel.Vector(), Hitbox: hitbox.Rect}
		before := body
		res := s.mover.Nudge(&body, body.Velocity)

		pos.Set(body.Position)
		vel.Set(body.Velocity)

		contacts.Hits = append(contacts.Hits[:0], res.Contacts...)
		contacts.Attempted = before.Velocity
		contacts.Total = res.Total
		contacts.Iterations = res.Iterations
		contacts.StuckCount = res.StuckCount
		contacts.Reason = res.Reason.String()

		if s.observer != nil {
			s.observer.ObserveNudge(before, res)
		}
	}
}
