package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

func box(x, y, w, h int) Polygon { return PolygonFromRect(geom.R(x, y, w, h)) }

func TestFudgeToZero(t *testing.T) {
	assert.Equal(t, fixed.Fixed(0), FudgeToZero(Precision))
	assert.Equal(t, fixed.Fixed(0), FudgeToZero(-Precision))
	assert.Equal(t, Precision+1, FudgeToZero(Precision+1))
	assert.Equal(t, fixed.One, FudgeToZero(fixed.One))
}

func TestSlideTowardsMissesDistantShape(t *testing.T) {
	_, ok := box(0, 0, 8, 8).SlideTowards(box(20, 0, 8, 8), geom.Vec(3, 0))
	assert.False(t, ok)

	_, ok = box(0, 0, 8, 8).SlideTowards(box(0, 20, 8, 8), geom.Vec(5, 5))
	assert.False(t, ok)
}

func TestSlideTowardsMovingAway(t *testing.T) {
	// Touching on the right, moving left
	_, ok := box(0, 0, 8, 8).SlideTowards(box(8, 0, 8, 8), geom.Vec(-3, 0))
	assert.False(t, ok)
}

func TestSlideTowardsHeadOn(t *testing.T) {
	c, ok := box(0, 0, 8, 8).SlideTowards(box(11, 0, 8, 8), geom.Vec(5, 0))
	require.True(t, ok)

	assert.Equal(t, Collide, c.Type)
	assert.InDelta(t, 0.6, c.Amount.Float64(), 1e-4)
	assert.Equal(t, c.Amount, c.TouchDist)
	assert.Equal(t, geom.Vec(3, 0), c.Movement)
	assert.False(t, c.Slide)

	// After moving, the gap is closed and not negative
	moved := box(0, 0, 8, 8).MoveBy(c.Movement)
	assert.Equal(t, fixed.Fixed(0), moved.BBox().XInterval().Gap(geom.R(11, 0, 8, 8).XInterval()))

	require.True(t, c.HasLeft)
	require.True(t, c.HasRight)
	assert.Equal(t, geom.Vec(-1, 0), c.LeftNormal)
	assert.Equal(t, geom.Vec(-1, 0), c.RightNormal)
	assert.Equal(t, fixed.FromInt(-5), c.LeftDot)
}

func TestSlideTowardsFallingOntoTile(t *testing.T) {
	// 27 tall, bottom edge 1.5 above the tile
	mover := PolygonFromRect(geom.Rect{
		Origin: geom.Point{X: 0, Y: fixed.FromFloat(3.5)},
		Size:   geom.Sz(8, 27),
	})
	c, ok := mover.SlideTowards(box(0, 32, 8, 8), geom.Vec(0, 2))
	require.True(t, ok)

	assert.Equal(t, Collide, c.Type)
	assert.Equal(t, fixed.FromFloat(0.75), c.Amount)
	assert.Equal(t, geom.Vector{Y: fixed.FromFloat(1.5)}, c.Movement)
	assert.Equal(t, geom.Vec(0, -1), c.LeftNormal)
}

func TestSlideTowardsFlushSlide(t *testing.T) {
	// Resting on a floor, walking right along it
	c, ok := box(0, 0, 8, 8).SlideTowards(box(0, 8, 8, 8), geom.Vec(3, 0))
	require.True(t, ok)

	assert.Equal(t, Touch, c.Type)
	assert.True(t, c.Slide)
	assert.Equal(t, fixed.One, c.Amount)
	assert.Equal(t, fixed.MinValue, c.TouchDist, "flush on every axis")
	assert.Equal(t, geom.Vec(3, 0), c.Movement)

	require.True(t, c.HasLeft)
	assert.False(t, c.HasRight)
	assert.Equal(t, geom.Vec(0, -1), c.LeftNormal)
	assert.Equal(t, fixed.Fixed(0), c.LeftDot)
}

func TestSlideTowardsCorner(t *testing.T) {
	c, ok := box(0, 0, 8, 8).SlideTowards(box(10, 10, 8, 8), geom.Vec(4, 4))
	require.True(t, ok)

	assert.Equal(t, Collide, c.Type)
	assert.Equal(t, fixed.Half, c.Amount)
	assert.Equal(t, geom.Vec(2, 2), c.Movement)

	// Both faces of the corner are reported, one per side
	require.True(t, c.HasLeft)
	require.True(t, c.HasRight)
	assert.Equal(t, geom.Vec(0, -1), c.LeftNormal)
	assert.Equal(t, geom.Vec(-1, 0), c.RightNormal)
}

func TestSlideTowardsOverlap(t *testing.T) {
	c, ok := box(0, 0, 8, 8).SlideTowards(box(4, 4, 8, 8), geom.Vec(1, 0))
	require.True(t, ok)

	assert.Equal(t, Overlap, c.Type)
	assert.True(t, c.Movement.IsZero())
	assert.Equal(t, fixed.Fixed(0), c.Amount)
	assert.False(t, c.HasLeft)
	assert.False(t, c.HasRight)
	assert.Equal(t, fixed.MinValue, c.LeftDot)
}

func TestSlideTowardsTinyOverlapIsTouch(t *testing.T) {
	// Within Precision of flush counts as flush
	floor := PolygonFromRect(geom.Rect{
		Origin: geom.Point{X: 0, Y: fixed.FromInt(8) - Precision},
		Size:   geom.Sz(8, 8),
	})
	c, ok := box(0, 0, 8, 8).SlideTowards(floor, geom.Vec(3, 0))
	require.True(t, ok)
	assert.Equal(t, Touch, c.Type)
	assert.Equal(t, fixed.One, c.Amount)
}

func TestSlideTowardsDiamond(t *testing.T) {
	diamond := NewPolygon([4]geom.Point{geom.Pt(4, 0), geom.Pt(8, 4), geom.Pt(4, 8), geom.Pt(0, 4)})
	require.Len(t, diamond.Normals(), 4)

	// Bottom-right corner of the box meets the diamond's left vertex
	c, ok := box(-8, 0, 4, 4).SlideTowards(diamond, geom.Vec(8, 0))
	require.True(t, ok)

	assert.Equal(t, Collide, c.Type)
	assert.Equal(t, fixed.Half, c.Amount)
	assert.Equal(t, geom.Vec(4, 0), c.Movement)

	require.True(t, c.HasLeft)
	require.True(t, c.HasRight)
	assert.Equal(t, geom.Vec(-4, -4), c.LeftNormal)
	assert.Equal(t, geom.Vec(-1, 0), c.RightNormal)
	assert.Equal(t, fixed.FromInt(-8), c.RightDot)
}

func TestPolygonFromRectMatchesNewPolygon(t *testing.T) {
	r := geom.R(-6, -26, 12, 27)
	a := PolygonFromRect(r)
	b := NewPolygon(r.Corners())
	assert.Equal(t, a, b)
	assert.Empty(t, a.Normals())
}

func TestPolygonMoveBy(t *testing.T) {
	p := box(0, 0, 8, 8)
	moved := p.MoveBy(geom.Vec(2, -3))

	assert.Equal(t, geom.R(2, -3, 8, 8), moved.BBox())
	assert.Equal(t, geom.Pt(10, 5), moved.Points()[2])
	// Original untouched
	assert.Equal(t, geom.R(0, 0, 8, 8), p.BBox())
}

func TestProjectOntoAxis(t *testing.T) {
	lo, hi, loPt, hiPt := box(2, 0, 4, 4).ProjectOntoAxis(geom.Vec(1, 1))
	assert.Equal(t, fixed.FromInt(2), lo)
	assert.Equal(t, fixed.FromInt(10), hi)
	assert.Equal(t, geom.Pt(2, 0), loPt)
	assert.Equal(t, geom.Pt(6, 4), hiPt)
}

func TestContactTypeString(t *testing.T) {
	assert.Equal(t, "overlap", Overlap.String())
	assert.Equal(t, "touch", Touch.String())
	assert.Equal(t, "collide", Collide.String())
	assert.Equal(t, "ContactType(9)", ContactType(9).String())
}
