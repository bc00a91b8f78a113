// Package renderer turns game frames into output: a raylib window, a
// terminal screen, or nothing at all.
package renderer

import (
	"github.com/pthm-cable/slide/camera"
	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/systems"
	"github.com/pthm-cable/slide/telemetry"
)

// ActorView is the drawable state of one actor.
type ActorView struct {
	Position    geom.Point
	Hitbox      geom.Rect // relative to Position
	Anchor      geom.Point
	SpriteWidth int
	FacingLeft  bool
	SpriteIndex int
	Player      bool

	// Last movement
	Velocity   geom.Vector
	Attempted  geom.Vector
	Iterations int
	StuckCount int
	Reason     string
	Contacts   []collision.Contact
}

// WorldHitbox returns the hitbox in world coordinates.
func (a ActorView) WorldHitbox() geom.Rect {
	return a.Hitbox.Translate(a.Position.ToVector())
}

// SpriteOrigin returns the world position of the sprite's top-left pixel.
// A sprite facing left is mirrored, so its anchor is measured from the
// right edge.
func (a ActorView) SpriteOrigin() geom.Point {
	ax := a.Anchor.X
	if a.FacingLeft {
		ax = fixed.FromInt(a.SpriteWidth) - a.Anchor.X
	}
	return geom.Point{X: a.Position.X - ax, Y: a.Position.Y - a.Anchor.Y}
}

// SweepBox returns the world box covered by the last attempted movement.
func (a ActorView) SweepBox() geom.Rect {
	start := a.WorldHitbox().Translate(a.Attempted.Neg())
	return start.ExpandTowards(a.Attempted)
}

// Frame is everything a sink needs to draw one tick.
type Frame struct {
	Tick    int
	Paused  bool
	Speed   int
	Buttons input.Buttons
	Camera  *camera.Camera
	Map     *systems.TileMap
	Actors  []ActorView
	Perf    telemetry.PerfStats
	Title   string

	MaxIterations int
}

// Player returns the first player actor, if any.
func (f *Frame) Player() (ActorView, bool) {
	for _, a := range f.Actors {
		if a.Player {
			return a, true
		}
	}
	return ActorView{}, false
}

// VisibleCells returns the inclusive cell range under the camera.
func (f *Frame) VisibleCells() (x0, y0, x1, y1 int) {
	shift := f.Map.CellShift()
	view := f.Camera.View()
	x0, y0 = view.MinX().Cell(shift), view.MinY().Cell(shift)
	x1, y1 = (view.MaxX()-1).Cell(shift), (view.MaxY()-1).Cell(shift)
	return max(x0, 0), max(y0, 0), min(x1, f.Map.Width()-1), min(y1, f.Map.Height()-1)
}

// Sink receives frames.
type Sink interface {
	Present(f *Frame) error
	Close() error
}

// Interactive sinks own a window or terminal: they supply input and
// report when the user asked to quit.
type Interactive interface {
	Sink
	input.Source
	Done() bool
	Actions() Actions
}

// Actions are run controls requested through the sink since the last frame.
type Actions struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Speed       int // 0 leaves the speed unchanged
}

// NopSink discards frames.
type NopSink struct{}

func (NopSink) Present(*Frame) error { return nil }
func (NopSink) Close() error         { return nil }
