package level

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

// TileID indexes a tileset.
type TileID uint16

// Tile describes one tile kind. Only Solid matters for collision.
type Tile struct {
	ID    TileID `csv:"id" yaml:"id"`
	Name  string `csv:"name" yaml:"name"`
	Solid bool   `csv:"solid" yaml:"solid"`
}

// Tileset maps tile ids to their properties.
type Tileset struct {
	tiles map[TileID]Tile
}

// NewTileset builds a tileset. Later entries replace earlier ones with the same id.
func NewTileset(tiles []Tile) *Tileset {
	ts := &Tileset{tiles: make(map[TileID]Tile, len(tiles))}
	for _, t := range tiles {
		ts.tiles[t.ID] = t
	}
	return ts
}

// ReadTileset parses a tileset CSV with an id,name,solid header.
func ReadTileset(r io.Reader) (*Tileset, error) {
	var tiles []Tile
	if err := gocsv.Unmarshal(r, &tiles); err != nil {
		return nil, fmt.Errorf("parsing tileset: %w", err)
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("parsing tileset: %w", ErrEmptyTileset)
	}
	return NewTileset(tiles), nil
}

// LoadTileset reads a tileset CSV from disk.
func LoadTileset(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset: %w", err)
	}
	return ReadTileset(bytes.NewReader(data))
}

// Lookup returns the tile with the given id.
func (ts *Tileset) Lookup(id TileID) (Tile, bool) {
	t, ok := ts.tiles[id]
	return t, ok
}

// Solid reports whether id blocks movement. Unknown ids are not solid.
func (ts *Tileset) Solid(id TileID) bool {
	return ts.tiles[id].Solid
}

// Tiles returns every tile ordered by id.
func (ts *Tileset) Tiles() []Tile {
	out := make([]Tile, 0, len(ts.tiles))
	for _, t := range ts.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// WriteCSV writes the tileset in the format ReadTileset accepts.
func (ts *Tileset) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(ts.Tiles(), w)
}
