package systems

import (
	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/level"
)

// DefaultCellShift gives 8 world unit cells.
const DefaultCellShift = 3

// SweepResult is the outcome of sweeping a shape through the environment.
type SweepResult struct {
	// Allowed is the part of the attempted movement that can be applied.
	Allowed geom.Vector
	// Amount is Allowed as a fraction of the attempt; One when unblocked.
	Amount fixed.Fixed
	// Blocked is set when a Collide contact capped the movement.
	Blocked bool
	// Contacts are the retained contacts, ordered by TouchDist. The list is
	// owned by the collider and reused by its next sweep.
	Contacts *collision.ContactList
}

// Collider is anything a shape can be swept against.
type Collider interface {
	Sweep(shape collision.Polygon, attempted geom.Vector) SweepResult
}

// TileMapOptions configures a TileMap.
type TileMapOptions struct {
	CellShift uint
	// SolidBounds makes cells outside the grid block movement.
	SolidBounds bool
	MaxContacts int
	Overflow    collision.OverflowPolicy
}

// DefaultTileMapOptions returns 8 unit cells with solid bounds.
func DefaultTileMapOptions() TileMapOptions {
	return TileMapOptions{
		CellShift:   DefaultCellShift,
		SolidBounds: true,
		MaxContacts: collision.DefaultContactCap,
		Overflow:    collision.OverflowGrow,
	}
}

// TileMap is a grid of tiles used as static collision geometry.
type TileMap struct {
	grid       [][]level.TileID
	tileset    *level.Tileset
	gridWidth  int
	gridHeight int
	opts       TileMapOptions
	contacts   *collision.ContactList
}

// NewTileMap creates a tile map over the level's tiles. The grid is shared
// with the level.
func NewTileMap(lvl *level.Level, opts TileMapOptions) *TileMap {
	return &TileMap{
		grid:       lvl.Tiles,
		tileset:    lvl.Tileset,
		gridWidth:  lvl.Width(),
		gridHeight: lvl.Height(),
		opts:       opts,
		contacts:   collision.NewContactList(opts.MaxContacts, opts.Overflow),
	}
}

// Width and Height are in cells.
func (m *TileMap) Width() int  { return m.gridWidth }
func (m *TileMap) Height() int { return m.gridHeight }

// CellSize returns the edge length of a cell in world units.
func (m *TileMap) CellSize() fixed.Fixed { return fixed.One << m.opts.CellShift }

// CellShift returns log2 of the cell size.
func (m *TileMap) CellShift() uint { return m.opts.CellShift }

// Bounds returns the map extent in world units.
func (m *TileMap) Bounds() geom.Rect {
	cs := m.CellSize()
	return geom.Rect{Size: geom.Size{W: cs * fixed.Fixed(m.gridWidth), H: cs * fixed.Fixed(m.gridHeight)}}
}

// Tileset returns the tileset the map was built with.
func (m *TileMap) Tileset() *level.Tileset { return m.tileset }

func (m *TileMap) inBounds(cx, cy int) bool {
	return cx >= 0 && cx < m.gridWidth && cy >= 0 && cy < m.gridHeight
}

// At returns the tile at a cell. Cells outside the grid read as tile 0.
func (m *TileMap) At(cx, cy int) level.TileID {
	if !m.inBounds(cx, cy) {
		return 0
	}
	return m.grid[cy][cx]
}

// Set replaces the tile at a cell. It reports false outside the grid.
func (m *TileMap) Set(cx, cy int, id level.TileID) bool {
	if !m.inBounds(cx, cy) {
		return false
	}
	m.grid[cy][cx] = id
	return true
}

// Solid reports whether a cell blocks movement.
func (m *TileMap) Solid(cx, cy int) bool {
	if !m.inBounds(cx, cy) {
		return m.opts.SolidBounds
	}
	return m.tileset.Solid(m.grid[cy][cx])
}

// SolidAt reports whether the world position lies in a solid cell.
func (m *TileMap) SolidAt(p geom.Point) bool {
	return m.Solid(p.X.Cell(m.opts.CellShift), p.Y.Cell(m.opts.CellShift))
}

// CellRect returns the world-space square covered by a cell.
func (m *TileMap) CellRect(cx, cy int) geom.Rect {
	cs := m.CellSize()
	return geom.Rect{
		Origin: geom.Point{X: cs * fixed.Fixed(cx), Y: cs * fixed.Fixed(cy)},
		Size:   geom.Size{W: cs, H: cs},
	}
}

// CellPolygon returns the collision shape of a cell.
func (m *TileMap) CellPolygon(cx, cy int) collision.Polygon {
	return collision.PolygonFromRect(m.CellRect(cx, cy))
}

// Sweep tests shape moving by attempted against every solid cell its swept
// bounds cover. Contacts are ordered by when they are first touched; the
// first blocking contact caps the movement, and contacts needing more
// movement than that cap are dropped.
func (m *TileMap) Sweep(shape collision.Polygon, attempted geom.Vector) SweepResult {
	m.contacts.Reset()

	xbox := shape.ExtendedBBox(attempted)
	shift := m.opts.CellShift
	for cy := xbox.MinY().Cell(shift); cy <= xbox.MaxY().Cell(shift); cy++ {
		for cx := xbox.MinX().Cell(shift); cx <= xbox.MaxX().Cell(shift); cx++ {
			if !m.Solid(cx, cy) {
				continue
			}
			hit, ok := shape.SlideTowards(m.CellPolygon(cx, cy), attempted)
			if !ok {
				continue
			}
			hit.Cell = collision.CellIndex{X: cx, Y: cy}
			m.contacts.Push(hit)
		}
	}

	return capMovement(m.contacts, attempted)
}

// capMovement orders contacts by TouchDist and trims them by Amount.
func capMovement(contacts *collision.ContactList, attempted geom.Vector) SweepResult {
	contacts.SortByTouchDist()

	allowed := fixed.MinValue
	found := false
	for i, c := range contacts.All() {
		if found && allowed < c.Amount {
			contacts.Truncate(i)
			break
		}
		if !found && c.Type == collision.Collide {
			allowed = c.Amount
			found = true
		}
	}

	if !found || allowed >= fixed.One {
		return SweepResult{Allowed: attempted, Amount: fixed.One, Contacts: contacts}
	}
	return SweepResult{
		Allowed:  attempted.Scale(allowed),
		Amount:   allowed,
		Blocked:  true,
		Contacts: contacts,
	}
}
