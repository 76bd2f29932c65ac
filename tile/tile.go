/*
Package tile implements the conversion of paletted pixel art into PPU466
tiles and a CHR style encoding of tile tables.

Each tile is written as 16 bytes; the eight bytes of the low bitplane,
bottom row first, followed by the eight bytes of the high bitplane. There is
no header or compression so a file is always a multiple of 16 bytes long.
*/
package tile

import (
	"errors"

	"github.com/bodgit/ppumaze/ppu"
)

const (
	tileWidth  = ppu.TileWidth
	tileHeight = ppu.TileHeight
	tilePixels = ppu.TilePixels
	tileBytes  = tileHeight << 1
)

var (
	// ErrInvalidTileSize is returned when the pixel data for a tile is
	// not exactly 8 by 8
	ErrInvalidTileSize = errors.New("tile: invalid tile size")
	// ErrInvalidSpritesheetDimensions is returned when a spritesheet is
	// not a whole number of tiles in either dimension
	ErrInvalidSpritesheetDimensions = errors.New("tile: invalid spritesheet dimensions")
)
