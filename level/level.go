/*
Package level implements the maze layout of the game.

A layout is authored as an image one pixel per background cell where any
pixel that is not fully transparent marks a maze wall. It is split into four
quadrants, each of which can be illuminated independently, and written as
four chunks in the order lower left, lower right, upper left, upper right.
Each chunk is a four byte magic identifier, a 32-bit little endian payload
length and then one '0' (ground) or '1' (wall) byte per cell, bottom row
first.
*/
package level

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/ppumaze/ppu"
)

const (
	// Filename is the conventional name of the layout file
	Filename = "level-layout.bin"
	// SourceFilename is the conventional name of the authored image
	SourceFilename = "level-layout.png"

	// Width and Height are the default layout dimensions in cells, one
	// screen's worth of tiles
	Width  = ppu.ScreenWidth / ppu.TileWidth
	Height = ppu.ScreenHeight / ppu.TileHeight

	// NumQuadrants is the number of independently lit regions
	NumQuadrants = 4
)

// Tile and palette table conventions the layout is rendered with.
const (
	GroundTile   uint8 = 0
	MazeTileBase uint8 = 1

	GroundPalette uint8 = 0
	LitPalette    uint8 = 1
	UnlitPalette  uint8 = 2
)

var (
	// ErrChunkMagicMismatch is returned when a chunk does not carry the
	// identifier expected for its slot
	ErrChunkMagicMismatch = errors.New("level: chunk magic mismatch")
	// ErrChunkSizeMismatch is returned when a chunk payload is not one
	// byte per quadrant cell
	ErrChunkSizeMismatch = errors.New("level: chunk size mismatch")

	errBadCell     = errors.New("level: invalid cell value")
	errTooMuch     = errors.New("level: too much layout data")
	errBadGeometry = errors.New("level: invalid geometry")
)

// Quadrant identifies one quarter of the layout.
type Quadrant uint8

// Quadrants in file order.
const (
	LowerLeft Quadrant = iota
	LowerRight
	UpperLeft
	UpperRight
)

var magics = [NumQuadrants]string{"Q_LL", "Q_LR", "Q_UL", "Q_UR"}

// Quadrants lists every quadrant in file order.
var Quadrants = [NumQuadrants]Quadrant{LowerLeft, LowerRight, UpperLeft, UpperRight}

// Row returns 0 for the lower quadrants and 1 for the upper ones.
func (q Quadrant) Row() int {
	return int(q >> 1)
}

// Col returns 0 for the left quadrants and 1 for the right ones.
func (q Quadrant) Col() int {
	return int(q & 1)
}

// Magic returns the chunk identifier of the quadrant.
func (q Quadrant) Magic() string {
	return magics[q]
}

func (q Quadrant) String() string {
	if int(q) < len(magics) {
		return magics[q]
	}
	return fmt.Sprintf("Quadrant(%d)", uint8(q))
}

// ParseQuadrant accepts either a magic identifier such as "Q_UL" or its
// suffix, case insensitively.
func ParseQuadrant(s string) (Quadrant, error) {
	s = strings.ToUpper(s)
	for i, m := range magics {
		if s == m || s == strings.TrimPrefix(m, "Q_") {
			return Quadrant(i), nil
		}
	}
	return 0, fmt.Errorf("level: unknown quadrant %q", s)
}

func quadrant(row, col int) Quadrant {
	return Quadrant(row<<1 | col)
}

// Geometry holds the layout dimensions and the derived quadrant size.
type Geometry struct {
	Width, Height                 int
	QuadrantWidth, QuadrantHeight int
}

// DefaultGeometry is the geometry of a single screen layout.
var DefaultGeometry, _ = NewGeometry(Width, Height)

// NewGeometry returns the geometry of a w by h layout. Both dimensions
// must be even and fit within the background.
func NewGeometry(w, h int) (Geometry, error) {
	if w <= 0 || h <= 0 || w%2 != 0 || h%2 != 0 || w > ppu.BackgroundWidth || h > ppu.BackgroundHeight {
		return Geometry{}, fmt.Errorf("%w: %dx%d", errBadGeometry, w, h)
	}
	return Geometry{
		Width:          w,
		Height:         h,
		QuadrantWidth:  w >> 1,
		QuadrantHeight: h >> 1,
	}, nil
}

// QuadrantSize returns the number of cells in a quadrant.
func (g Geometry) QuadrantSize() int {
	return g.QuadrantWidth * g.QuadrantHeight
}

// Offset returns the cell coordinates of the lower left corner of q.
func (g Geometry) Offset(q Quadrant) (int, int) {
	return q.Col() * g.QuadrantWidth, q.Row() * g.QuadrantHeight
}

// QuadrantAt returns the quadrant containing the cell at x, y.
func (g Geometry) QuadrantAt(x, y int) (Quadrant, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return quadrant(y/g.QuadrantHeight, x/g.QuadrantWidth), true
}
