// Package camera provides a fixed-point viewport that follows a target
// through a margin box and stays inside the level bounds.
package camera

import (
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

// Camera represents the viewport into the level.
type Camera struct {
	// Position is the world coordinate of the top-left corner of the view.
	Position geom.Point
	Size     geom.Size
	// Margin is the distance from each view edge the target may approach
	// before the camera scrolls.
	Margin geom.Size
	// Bounds, when set, keeps the view inside the rectangle.
	Bounds *geom.Rect
}

// New creates a camera of the given size at the origin.
func New(size, margin geom.Size) *Camera {
	return &Camera{Size: size, Margin: margin}
}

// WithBounds sets the clamping rectangle and returns the camera.
func (c *Camera) WithBounds(r geom.Rect) *Camera {
	c.Bounds = &r
	return c
}

// AimAt scrolls the minimum distance that puts target inside the margin
// box, then clamps to Bounds.
func (c *Camera) AimAt(target geom.Point) {
	x := follow(c.Position.X, target.X, c.Margin.W, c.Size.W-c.Margin.W)
	y := follow(c.Position.Y, target.Y, c.Margin.H, c.Size.H-c.Margin.H)

	if c.Bounds != nil {
		x = fixed.Clamp(x, c.Bounds.MinX(), c.Bounds.MaxX()-c.Size.W)
		y = fixed.Clamp(y, c.Bounds.MinY(), c.Bounds.MaxY()-c.Size.H)
	}
	c.Position = geom.Point{X: x, Y: y}
}

func follow(pos, target, lo, hi fixed.Fixed) fixed.Fixed {
	switch d := target - pos; {
	case d < lo:
		return target - lo
	case d > hi:
		return target - hi
	}
	return pos
}

// Offset returns the whole-pixel scroll applied to everything drawn.
func (c *Camera) Offset() (x, y int) {
	return c.Position.X.Round(), c.Position.Y.Round()
}

// WorldToScreen converts a world point to pixel coordinates in the view.
func (c *Camera) WorldToScreen(p geom.Point) (x, y int) {
	ox, oy := c.Offset()
	return p.X.Round() - ox, p.Y.Round() - oy
}

// ScreenToWorld converts view pixel coordinates to a world point.
func (c *Camera) ScreenToWorld(x, y int) geom.Point {
	ox, oy := c.Offset()
	return geom.Pt(x+ox, y+oy)
}

// View returns the world rectangle currently visible.
func (c *Camera) View() geom.Rect {
	return geom.Rect{Origin: c.Position, Size: c.Size}
}

// IsVisible reports whether any part of r is in view.
func (c *Camera) IsVisible(r geom.Rect) bool {
	return c.View().Intersects(r)
}

// Resize changes the view size and re-clamps the position.
func (c *Camera) Resize(size geom.Size) {
	c.Size = size
	c.Pan(geom.Vector{})
}

// Pan moves the view by delta, respecting Bounds.
func (c *Camera) Pan(delta geom.Vector) {
	p := c.Position.Add(delta)
	if c.Bounds != nil {
		p.X = fixed.Clamp(p.X, c.Bounds.MinX(), c.Bounds.MaxX()-c.Size.W)
		p.Y = fixed.Clamp(p.Y, c.Bounds.MinY(), c.Bounds.MaxY()-c.Size.H)
	}
	c.Position = p
}

// Reset returns the camera to the bounds origin, or the world origin.
func (c *Camera) Reset() {
	c.Position = geom.Point{}
	if c.Bounds != nil {
		c.Position = c.Bounds.Origin
	}
}
