/*
Package palette loads and authors PPU466 palette tables.

A palette table is stored as a 4 by 8 pixel image; each row of four pixels
is one palette, the top row being palette 0.
*/
package palette

import (
	"fmt"
	"image"

	"github.com/bodgit/ppumaze/ppu"
)

const (
	// Filename is the conventional name of the palette table image
	Filename = "palette_table_data.png"

	pixelX = ppu.ColorsPerPalette
	pixelY = ppu.NumPalettes
)

// Load reads a palette table from a 4 by 8 image.
func Load(m image.Image) (ppu.PaletteTable, error) {
	var table ppu.PaletteTable

	pixels, w, h := ppu.Pixels(m, ppu.UpperLeftOrigin)
	if w != pixelX || h != pixelY {
		return table, fmt.Errorf("%w: palette table is %dx%d, want %dx%d", ppu.ErrImageDimensionMismatch, w, h, pixelX, pixelY)
	}

	for i := range table {
		copy(table[i][:], pixels[i*pixelX:(i+1)*pixelX])
	}

	return table, nil
}

// Image returns the palette table as a 4 by 8 image suitable for Load.
func Image(table *ppu.PaletteTable) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, pixelX, pixelY))
	for y, p := range table {
		for x, c := range p {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}
