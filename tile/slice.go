package tile

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/ppumaze/ppu"
)

// Slice cuts a w by h spritesheet, stored with a lower-left origin, into
// tiles. Tiles are returned in reading order so the first tile is the top
// left cell of the sheet as it is displayed.
func Slice(pixels []color.NRGBA, w, h int, p ppu.Palette) ([]ppu.Tile, error) {
	if w <= 0 || h <= 0 || w%tileWidth != 0 || h%tileHeight != 0 || len(pixels) != w*h {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", ErrInvalidSpritesheetDimensions, w, h, len(pixels))
	}

	tileX, tileY := w/tileWidth, h/tileHeight
	tiles := make([]ppu.Tile, 0, tileX*tileY)

	var cell [tilePixels]color.NRGBA
	for ty := tileY - 1; ty >= 0; ty-- {
		for tx := 0; tx < tileX; tx++ {
			start := ty*tileHeight*w + tx*tileWidth
			for y := 0; y < tileHeight; y++ {
				copy(cell[y*tileWidth:(y+1)*tileWidth], pixels[start+y*w:start+y*w+tileWidth])
			}

			t, err := Pack(cell[:], p)
			if err != nil {
				return nil, fmt.Errorf("tile: cell (%d, %d): %w", tx, tileY-1-ty, err)
			}
			tiles = append(tiles, t)
		}
	}

	return tiles, nil
}

// SliceImage cuts m into tiles.
func SliceImage(m image.Image, p ppu.Palette) ([]ppu.Tile, error) {
	pixels, w, h := ppu.Pixels(m, ppu.LowerLeftOrigin)
	return Slice(pixels, w, h, p)
}
