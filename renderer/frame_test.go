package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/camera"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/level"
	"github.com/pthm-cable/slide/systems"
)

func lexy() ActorView {
	return ActorView{
		Position:    geom.Pt(100, 50),
		Hitbox:      geom.R(-6, -26, 12, 27),
		Anchor:      geom.Pt(17, 47),
		SpriteWidth: 32,
		Player:      true,
	}
}

func TestSpriteOrigin(t *testing.T) {
	a := lexy()
	assert.Equal(t, geom.Pt(83, 3), a.SpriteOrigin())

	// Mirrored: anchor measured from the right edge, 32 - 17 = 15
	a.FacingLeft = true
	assert.Equal(t, geom.Pt(85, 3), a.SpriteOrigin())
}

func TestWorldHitboxAndSweepBox(t *testing.T) {
	a := lexy()
	assert.Equal(t, geom.R(94, 24, 12, 27), a.WorldHitbox())

	a.Attempted = geom.Vec(3, -2)
	assert.Equal(t, geom.R(91, 24, 15, 29), a.SweepBox())
}

func TestFramePlayerAndVisibleCells(t *testing.T) {
	m := systems.NewTileMap(level.Default(), systems.DefaultTileMapOptions())
	cam := camera.New(geom.Sz(240, 160), geom.Sz(64, 32))
	cam.Position = geom.Pt(4, 8)

	f := &Frame{Camera: cam, Map: m, Actors: []ActorView{{}, lexy()}}

	p, ok := f.Player()
	require.True(t, ok)
	assert.Equal(t, geom.Pt(100, 50), p.Position)

	x0, y0, x1, y1 := f.VisibleCells()
	assert.Equal(t, []int{0, 1, 30, 20 - 1}, []int{x0, y0, x1, y1})

	_, ok = (&Frame{}).Player()
	assert.False(t, ok)
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	assert.NoError(t, s.Present(&Frame{}))
	assert.NoError(t, s.Close())
}
