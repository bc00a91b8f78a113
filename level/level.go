// Package level loads tile maps and tilesets.
package level

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

//go:embed default.yaml
var defaultYAML []byte

//go:embed tiles.csv
var defaultTilesCSV []byte

var (
	ErrEmptyLevel   = errors.New("level has no tiles")
	ErrRaggedRows   = errors.New("level rows differ in width")
	ErrUnknownTile  = errors.New("unknown tile")
	ErrEmptyTileset = errors.New("tileset has no tiles")
)

// Level is a rectangular grid of tiles, row-major.
type Level struct {
	Name    string
	Tileset *Tileset
	Tiles   [][]TileID
	Spawn   geom.Point
}

// levelFile is the on-disk yaml layout. Either Tiles or Rows+Legend is used.
type levelFile struct {
	Name    string         `yaml:"name"`
	Tileset string         `yaml:"tileset,omitempty"`
	Spawn   [2]float64     `yaml:"spawn"`
	Tiles   [][]int        `yaml:"tiles,omitempty"`
	Rows    []string       `yaml:"rows,omitempty"`
	Legend  map[string]int `yaml:"legend,omitempty"`
}

// Parse decodes a level. If ts is nil the embedded default tileset is used.
func Parse(data []byte, ts *Tileset) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing level: %w", err)
	}
	if ts == nil {
		ts = DefaultTileset()
	}
	return f.build(ts)
}

// Load reads a level from disk. A tileset path in the file is resolved
// relative to the level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}

	ts := DefaultTileset()
	if f.Tileset != "" {
		tsPath := f.Tileset
		if !filepath.IsAbs(tsPath) {
			tsPath = filepath.Join(filepath.Dir(path), tsPath)
		}
		ts, err = LoadTileset(tsPath)
		if err != nil {
			return nil, err
		}
	}

	lvl, err := f.build(ts)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

func (f *levelFile) build(ts *Tileset) (*Level, error) {
	var rows [][]TileID
	var err error
	if len(f.Rows) > 0 {
		rows, err = f.decodeRows(ts)
	} else {
		rows, err = f.decodeTiles(ts)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLevel
	}
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d tiles, want %d: %w", y, len(row), len(rows[0]), ErrRaggedRows)
		}
	}

	return &Level{
		Name:    f.Name,
		Tileset: ts,
		Tiles:   rows,
		Spawn:   geom.Point{X: fixed.FromFloat(f.Spawn[0]), Y: fixed.FromFloat(f.Spawn[1])},
	}, nil
}

func (f *levelFile) decodeTiles(ts *Tileset) ([][]TileID, error) {
	rows := make([][]TileID, len(f.Tiles))
	for y, src := range f.Tiles {
		rows[y] = make([]TileID, len(src))
		for x, v := range src {
			id := TileID(v)
			if _, ok := ts.Lookup(id); !ok || v < 0 {
				return nil, fmt.Errorf("tile %d at (%d, %d): %w", v, x, y, ErrUnknownTile)
			}
			rows[y][x] = id
		}
	}
	return rows, nil
}

func (f *levelFile) decodeRows(ts *Tileset) ([][]TileID, error) {
	legend := make(map[rune]TileID, len(f.Legend))
	for k, v := range f.Legend {
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) {
			return nil, fmt.Errorf("legend key %q must be a single character", k)
		}
		if _, ok := ts.Lookup(TileID(v)); !ok || v < 0 {
			return nil, fmt.Errorf("legend %q -> %d: %w", k, v, ErrUnknownTile)
		}
		legend[r] = TileID(v)
	}

	rows := make([][]TileID, len(f.Rows))
	for y, line := range f.Rows {
		row := make([]TileID, 0, len(line))
		x := 0
		for _, r := range line {
			id, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("character %q at (%d, %d): %w", r, x, y, ErrUnknownTile)
			}
			row = append(row, id)
			x++
		}
		rows[y] = row
	}
	return rows, nil
}

// Width and Height are in tiles.
func (l *Level) Width() int  { return len(l.Tiles[0]) }
func (l *Level) Height() int { return len(l.Tiles) }

// Fingerprint hashes the level layout, for correlating logs and replays.
func (l *Level) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(l.Width()))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(l.Height()))
	d.Write(buf[:])
	for _, row := range l.Tiles {
		for _, id := range row {
			binary.LittleEndian.PutUint16(buf[0:2], uint16(id))
			d.Write(buf[0:2])
		}
	}
	return d.Sum64()
}

// DefaultTileset returns the embedded tileset.
func DefaultTileset() *Tileset {
	ts, err := ReadTileset(bytes.NewReader(defaultTilesCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded tileset: %v", err))
	}
	return ts
}

// Default returns the embedded test level.
func Default() *Level {
	lvl, err := Parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded level: %v", err))
	}
	return lvl
}
