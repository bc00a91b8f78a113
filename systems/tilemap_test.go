package systems

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/level"
)

func testMap(t *testing.T, rows ...string) *TileMap {
	t.Helper()
	var b strings.Builder
	b.WriteString("legend: {\".\": 0, \"#\": 1, \",\": 3}\nrows:\n")
	for _, r := range rows {
		b.WriteString("  - \"" + r + "\"\n")
	}
	lvl, err := level.Parse([]byte(b.String()), nil)
	require.NoError(t, err)
	return NewTileMap(lvl, DefaultTileMapOptions())
}

func TestTileMapCells(t *testing.T) {
	m := testMap(t,
		"....",
		".,#.",
	)

	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, fixed.FromInt(8), m.CellSize())
	assert.Equal(t, geom.R(0, 0, 32, 16), m.Bounds())

	assert.False(t, m.Solid(1, 1), "decoration is not solid")
	assert.True(t, m.Solid(2, 1))
	assert.True(t, m.Solid(-1, 0), "outside the grid is solid")
	assert.True(t, m.Solid(0, 2))
	assert.True(t, m.SolidAt(geom.Pt(20, 12)))
	assert.False(t, m.SolidAt(geom.Pt(20, 4)))
	assert.Equal(t, geom.R(16, 8, 8, 8), m.CellRect(2, 1))

	assert.True(t, m.Set(0, 0, 1))
	assert.True(t, m.Solid(0, 0))
	assert.False(t, m.Set(9, 9, 1))
	assert.Equal(t, level.TileID(0), m.At(9, 9))
}

func TestTileMapOpenBounds(t *testing.T) {
	lvl, err := level.Parse([]byte("tiles:\n  - [0, 0]\n"), nil)
	require.NoError(t, err)
	opts := DefaultTileMapOptions()
	opts.SolidBounds = false
	m := NewTileMap(lvl, opts)

	assert.False(t, m.Solid(-1, 0))
	res := m.Sweep(collision.PolygonFromRect(geom.R(0, 0, 8, 8)), geom.Vec(-20, 0))
	assert.False(t, res.Blocked)
	assert.Equal(t, geom.Vec(-20, 0), res.Allowed)
}

func TestTileMapSweepFallingOntoFloor(t *testing.T) {
	m := testMap(t,
		"....",
		"....",
		"####",
	)
	// Bottom edge 1.5 above the floor, spanning two floor cells
	shape := collision.PolygonFromRect(geom.Rect{
		Origin: geom.Pt(4, 0),
		Size:   geom.Size{W: fixed.FromInt(8), H: fixed.FromFloat(14.5)},
	})

	res := m.Sweep(shape, geom.Vec(0, 2))
	assert.True(t, res.Blocked)
	assert.Equal(t, fixed.FromFloat(0.75), res.Amount)
	assert.Equal(t, geom.Vector{Y: fixed.FromFloat(1.5)}, res.Allowed)

	// Both floor cells tie and are kept
	require.Equal(t, 2, res.Contacts.Len())
	assert.Equal(t, collision.CellIndex{X: 0, Y: 2}, res.Contacts.At(0).Cell)
	assert.Equal(t, collision.CellIndex{X: 1, Y: 2}, res.Contacts.At(1).Cell)
}

func TestTileMapSweepFreeMovement(t *testing.T) {
	m := testMap(t,
		"....",
		"....",
		"####",
	)
	res := m.Sweep(collision.PolygonFromRect(geom.R(4, 0, 8, 8)), geom.Vec(3, 0))
	assert.False(t, res.Blocked)
	assert.Equal(t, fixed.One, res.Amount)
	assert.Equal(t, geom.Vec(3, 0), res.Allowed)
	assert.Equal(t, 0, res.Contacts.Len())
}

func TestTileMapSweepWalkingOnFloor(t *testing.T) {
	m := testMap(t,
		"....",
		"####",
	)
	res := m.Sweep(collision.PolygonFromRect(geom.R(4, 0, 8, 8)), geom.Vec(3, 0))
	assert.False(t, res.Blocked)
	assert.Equal(t, geom.Vec(3, 0), res.Allowed)

	require.Greater(t, res.Contacts.Len(), 0)
	for _, c := range res.Contacts.All() {
		assert.Equal(t, collision.Touch, c.Type)
		assert.True(t, c.Slide)
	}
}

func TestCapMovementSortsByTouchDistTrimsByAmount(t *testing.T) {
	list := collision.NewContactList(8, collision.OverflowGrow)
	push := func(cell int, typ collision.ContactType, touch, amount float64) {
		list.Push(collision.Contact{
			Type:      typ,
			TouchDist: fixed.FromFloat(touch),
			Amount:    fixed.FromFloat(amount),
			Cell:      collision.CellIndex{X: cell},
		})
	}
	push(1, collision.Collide, 0.5, 0.5)
	push(2, collision.Touch, 0, 1)
	push(3, collision.Collide, 0.5, 0.5)   // tie with the ceiling: kept
	push(4, collision.Collide, 0.75, 0.75) // needs more movement: trimmed here
	push(5, collision.Touch, 0.6, 0.5)     // touched later, but within the ceiling
	push(6, collision.Collide, 0.9, 0.1)   // after the trim point: gone

	res := capMovement(list, geom.Vec(4, 0))

	var cells []int
	for _, c := range res.Contacts.All() {
		cells = append(cells, c.Cell.X)
	}
	assert.Equal(t, []int{2, 1, 3, 5}, cells)
	assert.True(t, res.Blocked)
	assert.Equal(t, fixed.Half, res.Amount)
	assert.Equal(t, geom.Vec(2, 0), res.Allowed)
}

func TestTileMapSweepFlushFloorUnderWall(t *testing.T) {
	m := testMap(t,
		"..#.",
		"####",
	)
	// Standing on the floor with the wall right against the box
	shape := collision.PolygonFromRect(geom.R(8, 0, 8, 8))

	res := m.Sweep(shape, geom.Vec(2, 0))

	// The wall is scanned first, but the floor under the box has no
	// finite touch distance and sorts ahead of it. The floor cell under
	// the wall touches at 0 with nothing to block, so it is trimmed.
	require.Equal(t, 2, res.Contacts.Len())
	floor, wall := res.Contacts.At(0), res.Contacts.At(1)

	assert.Equal(t, collision.CellIndex{X: 1, Y: 1}, floor.Cell)
	assert.Equal(t, collision.Touch, floor.Type)
	assert.True(t, floor.Slide)
	assert.Equal(t, fixed.MinValue, floor.TouchDist)

	assert.Equal(t, collision.CellIndex{X: 2, Y: 0}, wall.Cell)
	assert.Equal(t, collision.Collide, wall.Type)
	assert.Equal(t, fixed.Fixed(0), wall.Amount)
	assert.Equal(t, fixed.Fixed(0), wall.TouchDist)

	assert.True(t, res.Blocked)
	assert.True(t, res.Allowed.IsZero())

	// Walking into the wall leaves nothing to slide along
	slide := SlideAlongNormals(res.Contacts.All(), geom.Vec(2, 0))
	assert.True(t, slide.Stuck || slide.Direction.IsZero())
}

func TestCapMovementCeilingAtOrAboveOne(t *testing.T) {
	list := collision.NewContactList(8, collision.OverflowGrow)
	list.Push(collision.Contact{Type: collision.Collide, Amount: fixed.One, TouchDist: fixed.One})

	res := capMovement(list, geom.Vec(4, 0))
	assert.False(t, res.Blocked)
	assert.Equal(t, geom.Vec(4, 0), res.Allowed)
	assert.Equal(t, 1, res.Contacts.Len())
}

func TestTileMapSweepDropPolicy(t *testing.T) {
	lvl, err := level.Parse([]byte("tiles:\n  - [1, 1, 1, 1, 1, 1]\n  - [0, 0, 0, 0, 0, 0]\n"), nil)
	require.NoError(t, err)
	opts := DefaultTileMapOptions()
	opts.SolidBounds = false
	opts.MaxContacts = 2
	opts.Overflow = collision.OverflowDrop
	m := NewTileMap(lvl, opts)

	// A wide box jumping into the ceiling touches every cell
	shape := collision.PolygonFromRect(geom.Rect{
		Origin: geom.Point{X: 0, Y: fixed.FromInt(9)},
		Size:   geom.Sz(48, 6),
	})
	res := m.Sweep(shape, geom.Vec(0, -2))

	assert.Equal(t, 2, res.Contacts.Len())
	assert.Equal(t, 4, res.Contacts.Dropped())
	assert.True(t, res.Blocked)
	assert.Equal(t, geom.Vec(0, -1), res.Allowed)
}
