package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slide/level"
	"github.com/pthm-cable/slide/systems"
)

// TileRenderer draws the visible part of a tile map as flat cells.
type TileRenderer struct {
	colors map[string]rl.Color
}

// NewTileRenderer creates a tile renderer with the default palette.
func NewTileRenderer() *TileRenderer {
	return &TileRenderer{
		colors: map[string]rl.Color{
			"rock":  {R: 70, G: 75, B: 90, A: 255},
			"ledge": {R: 150, G: 110, B: 70, A: 255},
			"grass": {R: 60, G: 150, B: 70, A: 255},
		},
	}
}

// Draw renders cells x0..x1, y0..y1 in world coordinates.
func (r *TileRenderer) Draw(m *systems.TileMap, x0, y0, x1, y1 int, grid bool) {
	size := int32(m.CellSize().Floor())
	ts := m.Tileset()

	for cy := y0; cy <= y1; cy++ {
		// Depth-based color - darker at bottom
		depthDarken := 1.0 - float32(cy)/float32(m.Height())*0.4

		for cx := x0; cx <= x1; cx++ {
			x, y := int32(cx)*size, int32(cy)*size
			if grid {
				rl.DrawRectangleLines(x, y, size, size, rl.Color{R: 40, G: 40, B: 48, A: 255})
			}

			color, ok := r.color(ts, m.At(cx, cy))
			if !ok {
				continue
			}
			color.R = uint8(float32(color.R) * depthDarken)
			color.G = uint8(float32(color.G) * depthDarken)
			color.B = uint8(float32(color.B) * depthDarken)
			rl.DrawRectangle(x, y, size, size, color)
		}
	}
}

func (r *TileRenderer) color(ts *level.Tileset, id level.TileID) (rl.Color, bool) {
	tile, ok := ts.Lookup(id)
	if !ok {
		return rl.Magenta, true
	}
	if c, ok := r.colors[tile.Name]; ok {
		return c, true
	}
	if tile.Solid {
		return rl.Gray, true
	}
	return rl.Color{}, false
}
