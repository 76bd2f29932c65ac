/*
Package ppu describes the fixed tables consumed by a PPU466 style picture
processing unit.

Tiles are 8 by 8 pixels with two bits per pixel, stored as two bitplanes of
eight bytes each. Row 0 of a tile is its bottom scanline and bit x of a row
byte is column x. Each tile is drawn through one of eight four colour
palettes. The background is a 64 by 60 grid of 16-bit entries where the low
byte selects a tile and bits 8 to 10 select a palette, again with row 0 at
the bottom of the screen.
*/
package ppu

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// TileWidth and TileHeight are the dimensions of a tile in pixels
	TileWidth  = 8
	TileHeight = TileWidth
	// TilePixels is the number of pixels in a tile
	TilePixels = TileWidth * TileHeight

	// ColorsPerPalette is the number of colors in each palette
	ColorsPerPalette = 4

	// NumPalettes is the capacity of the palette table
	NumPalettes = 8
	// NumTiles is the capacity of the tile table
	NumTiles = 256

	// BackgroundWidth and BackgroundHeight are the background dimensions
	// in tiles
	BackgroundWidth  = 64
	BackgroundHeight = 60

	// ScreenWidth and ScreenHeight are the visible dimensions in pixels
	ScreenWidth  = 256
	ScreenHeight = 240

	paletteShift = 8
	paletteMask  = 0x07
	tileMask     = 0xff
)

var (
	// ErrColorNotInPalette is returned when a pixel uses a color the
	// palette does not declare
	ErrColorNotInPalette = errors.New("ppu: color not in palette")
	// ErrImageDimensionMismatch is returned when a source image is not
	// the size the pipeline expects
	ErrImageDimensionMismatch = errors.New("ppu: image dimension mismatch")
)

// Palette is four colors, index 0 is typically transparent for sprites.
type Palette [ColorsPerPalette]color.NRGBA

// FindIndex returns the first index in p holding c.
func FindIndex(p Palette, c color.Color) (uint8, error) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i, pc := range p {
		if pc == n {
			return uint8(i), nil
		}
	}
	return ColorsPerPalette, fmt.Errorf("%w: #%02x%02x%02x%02x", ErrColorNotInPalette, n.R, n.G, n.B, n.A)
}

// ColorPalette returns p as a color.Palette for use with image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, ColorsPerPalette)
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Tile is an 8x8 2-bit indexed image stored as two bitplanes.
type Tile struct {
	Bit0 [TileHeight]uint8
	Bit1 [TileHeight]uint8
}

// ColorIndexAt returns the palette index of the pixel at column x and row
// y, where row 0 is the bottom scanline.
func (t Tile) ColorIndexAt(x, y int) uint8 {
	return (t.Bit1[y]>>uint(x)&1)<<1 | t.Bit0[y]>>uint(x)&1
}

// TileTable maps tile indices to tiles.
type TileTable [NumTiles]Tile

// PaletteTable maps palette indices to palettes.
type PaletteTable [NumPalettes]Palette

// Background is the background tile map.
type Background [BackgroundWidth * BackgroundHeight]uint16

// Entry packs a tile and palette index into a background entry.
func Entry(tile, palette uint8) uint16 {
	return uint16(palette&paletteMask)<<paletteShift | uint16(tile)
}

// Index returns the offset of the cell at column x and row y.
func (b *Background) Index(x, y int) int {
	return y*BackgroundWidth + x
}

// Set stores the tile and palette for the cell at x, y.
func (b *Background) Set(x, y int, tile, palette uint8) {
	b[b.Index(x, y)] = Entry(tile, palette)
}

// Tile returns the tile index of the cell at x, y.
func (b *Background) Tile(x, y int) uint8 {
	return uint8(b[b.Index(x, y)] & tileMask)
}

// Palette returns the palette index of the cell at x, y.
func (b *Background) Palette(x, y int) uint8 {
	return uint8(b[b.Index(x, y)] >> paletteShift & paletteMask)
}

// SetPalette replaces the palette of the cell at x, y keeping its tile.
func (b *Background) SetPalette(x, y int, palette uint8) {
	i := b.Index(x, y)
	b[i] = b[i]&tileMask | uint16(palette&paletteMask)<<paletteShift
}
