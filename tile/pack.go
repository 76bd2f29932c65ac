package tile

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/ppumaze/ppu"
)

// Pack converts 64 pixels, stored with a lower-left origin, into a tile
// using the indices of p.
func Pack(pixels []color.NRGBA, p ppu.Palette) (ppu.Tile, error) {
	var t ppu.Tile
	if len(pixels) != tilePixels {
		return t, fmt.Errorf("%w: %d pixels", ErrInvalidTileSize, len(pixels))
	}

	for y := 0; y < tileHeight; y++ {
		var bit0, bit1 uint8
		for x := 0; x < tileWidth; x++ {
			i, err := ppu.FindIndex(p, pixels[y*tileWidth+x])
			if err != nil {
				return ppu.Tile{}, fmt.Errorf("tile: pixel (%d, %d): %w", x, y, err)
			}
			bit0 |= (i & 1) << uint(x)
			bit1 |= (i >> 1 & 1) << uint(x)
		}
		t.Bit0[y] = bit0
		t.Bit1[y] = bit1
	}

	return t, nil
}

// PackImage converts an 8 by 8 image into a tile.
func PackImage(m image.Image, p ppu.Palette) (ppu.Tile, error) {
	pixels, w, h := ppu.Pixels(m, ppu.LowerLeftOrigin)
	if w != tileWidth || h != tileHeight {
		return ppu.Tile{}, fmt.Errorf("%w: %dx%d", ppu.ErrImageDimensionMismatch, w, h)
	}
	return Pack(pixels, p)
}
