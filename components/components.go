// Package components defines ECS components for actors.
package components

import (
	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/input"
)

// Position is an actor's world position (its anchor point on the ground).
type Position struct {
	X, Y fixed.Fixed
}

func (p Position) Point() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// Set copies a point into the component.
func (p *Position) Set(pt geom.Point) { p.X, p.Y = pt.X, pt.Y }

// Velocity is in world units per tick.
type Velocity struct {
	X, Y fixed.Fixed
}

func (v Velocity) Vector() geom.Vector { return geom.Vector{X: v.X, Y: v.Y} }

// Set copies a vector into the component.
func (v *Velocity) Set(vec geom.Vector) { v.X, v.Y = vec.X, vec.Y }

// Hitbox is the collision box relative to Position.
type Hitbox struct {
	Rect geom.Rect
}

// Avatar holds sprite state.
type Avatar struct {
	// Anchor is the sprite pixel that sits on Position.
	Anchor      geom.Point
	SpriteWidth int
	FacingLeft  bool
	SpriteIndex int
	SpriteTimer int
	Frames      int // walk cycle length, frames 1..Frames
	Delay       int // ticks per walk frame
	Changed     bool
}

// Controller maps buttons to velocity.
type Controller struct {
	WalkSpeed fixed.Fixed
	JumpSpeed fixed.Fixed
	Buttons   input.Buttons
}

// Contacts keeps the last movement's contacts for diagnostics.
type Contacts struct {
	Hits       []collision.Contact
	Attempted  geom.Vector
	Total      geom.Vector
	Iterations int
	StuckCount int
	Reason     string
}

// Player marks the actor the camera follows.
type Player struct {
	Name string
}
