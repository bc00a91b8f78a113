package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slide/components"
	"github.com/pthm-cable/slide/input"
)

// ControlSystem turns held buttons into velocity.
type ControlSystem struct {
	filter ecs.Filter3[components.Velocity, components.Controller, components.Avatar]
}

// NewControlSystem creates a new control system.
func NewControlSystem(w *ecs.World) *ControlSystem {
	return &ControlSystem{
		filter: *ecs.NewFilter3[components.Velocity, components.Controller, components.Avatar](w),
	}
}

// Update applies buttons to every controlled actor. Walking replaces the
// horizontal velocity; jumping only works while not moving vertically.
func (s *ControlSystem) Update(w *ecs.World, buttons input.Buttons) {
	query := s.filter.Query()
	for query.Next() {
		vel, ctl, avatar := query.Get()
		ctl.Buttons = buttons

		switch {
		case buttons.Has(input.Left):
			vel.X = -ctl.WalkSpeed
			avatar.FacingLeft = true
		case buttons.Has(input.Right):
			vel.X = ctl.WalkSpeed
			avatar.FacingLeft = false
		default:
			vel.X = 0
		}

		if buttons.Has(input.Up) && vel.Y == 0 {
			vel.Y -= ctl.JumpSpeed
		}
	}
}
