/*
Package ppumaze is the asset pipeline of a small maze game drawn by a
PPU466 style picture processing unit.

It converts authored PNG images into the palette table, tile table and
background consumed by the renderer, encodes the maze layout into quadrants
and tracks which quadrants of the maze have been illuminated.
*/
package ppumaze

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"log"

	"github.com/bodgit/ppumaze/level"
	"github.com/bodgit/ppumaze/palette"
	"github.com/bodgit/ppumaze/ppu"
	"github.com/bodgit/ppumaze/tile"
)

// Palette table indices.
const (
	GroundPalette = level.GroundPalette
	LitPalette    = level.LitPalette
	UnlitPalette  = level.UnlitPalette
	PlayerPalette = uint8(3)
)

// Tile table indices.
const (
	GroundTile = level.GroundTile
	MazeTile   = level.MazeTileBase
	PlayerTile = uint8(32)
)

var (
	errNoPalettes = errors.New("ppumaze: palette table not loaded")
	errNoLayout   = errors.New("ppumaze: layout not loaded")
	errTileRange  = errors.New("ppumaze: tiles do not fit in tile table")
)

// Game holds the tables handed to the renderer.
type Game struct {
	TileTable       ppu.TileTable
	PaletteTable    ppu.PaletteTable
	Background      ppu.Background
	BackgroundColor color.NRGBA

	Layout *level.Layout

	palettes bool
	lit      [level.NumQuadrants]bool
	logger   *log.Logger
}

// New returns an empty game. A nil logger discards output.
func New(logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Game{
		logger: logger,
	}
}

// LoadPalettes fills the palette table from a 4 by 8 image. The background
// color is taken from the ground palette.
func (g *Game) LoadPalettes(m image.Image) error {
	table, err := palette.Load(m)
	if err != nil {
		return err
	}
	g.PaletteTable = table
	g.BackgroundColor = table[GroundPalette][2]
	g.palettes = true
	return nil
}

// LoadTiles stores tiles in the tile table starting at index.
func (g *Game) LoadTiles(index uint8, tiles []ppu.Tile) error {
	if int(index)+len(tiles) > len(g.TileTable) {
		return fmt.Errorf("%w: %d tiles at %d", errTileRange, len(tiles), index)
	}
	copy(g.TileTable[index:], tiles)
	g.logger.Printf("Loaded %d tile(s) at %d\n", len(tiles), index)
	return nil
}

// LoadSheet slices m with the colors of palette p and stores the tiles
// starting at index. The palette table must already be loaded.
func (g *Game) LoadSheet(index, p uint8, m image.Image) error {
	if !g.palettes {
		return errNoPalettes
	}
	tiles, err := tile.SliceImage(m, g.PaletteTable[p&(ppu.NumPalettes-1)])
	if err != nil {
		return err
	}
	return g.LoadTiles(index, tiles)
}

// LoadLayout reads the layout file from r and draws the unlit maze onto
// the background.
func (g *Game) LoadLayout(r io.Reader, geometry level.Geometry) error {
	l, err := level.Read(r, geometry)
	if err != nil {
		return err
	}
	g.Layout = l
	g.lit = [level.NumQuadrants]bool{}
	level.Render(l, &g.Background)
	return nil
}

// Illuminate lights the maze walls in quadrant q.
func (g *Game) Illuminate(q level.Quadrant) error {
	if g.Layout == nil {
		return errNoLayout
	}
	if int(q) >= level.NumQuadrants {
		return fmt.Errorf("ppumaze: invalid quadrant %d", q)
	}
	if g.lit[q] {
		return nil
	}
	level.Illuminate(g.Layout, &g.Background, q)
	g.lit[q] = true
	g.logger.Printf("Illuminated quadrant %s\n", q)
	return nil
}

// Lit reports whether quadrant q has been illuminated.
func (g *Game) Lit(q level.Quadrant) bool {
	return int(q) < level.NumQuadrants && g.lit[q]
}

// QuadrantAt returns the quadrant containing the layout cell x, y.
func (g *Game) QuadrantAt(x, y int) (level.Quadrant, bool) {
	if g.Layout == nil {
		return 0, false
	}
	return g.Layout.Geometry.QuadrantAt(x, y)
}

// Wall reports whether the layout cell x, y is a maze wall.
func (g *Game) Wall(x, y int) bool {
	return g.Layout != nil && g.Layout.Occupied(x, y)
}
