package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slide/components"
)

// AnimationSystem steps walk cycles.
type AnimationSystem struct {
	filter ecs.Filter2[components.Velocity, components.Avatar]
}

// NewAnimationSystem creates a new animation system.
func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter: *ecs.NewFilter2[components.Velocity, components.Avatar](w),
	}
}

// Update advances sprites and returns how many changed frame. Frame 0 is
// standing; walking cycles 1..Frames, holding each for Delay+1 ticks.
func (s *AnimationSystem) Update(w *ecs.World) int {
	changed := 0
	query := s.filter.Query()
	for query.Next() {
		vel, avatar := query.Get()
		old := avatar.SpriteIndex

		if vel.X == 0 {
			avatar.SpriteIndex = 0
			avatar.SpriteTimer = 0
		} else if avatar.SpriteTimer == 0 {
			avatar.SpriteIndex++
			if avatar.SpriteIndex > avatar.Frames {
				avatar.SpriteIndex = 1
			}
			avatar.SpriteTimer = avatar.Delay
		} else {
			avatar.SpriteTimer--
		}

		avatar.Changed = avatar.SpriteIndex != old
		if avatar.Changed {
			changed++
		}
	}
	return changed
}
