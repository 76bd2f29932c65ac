package tile

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/ppumaze/ppu"
)

var (
	errNotEnough = errors.New("tile: not enough tile data")
	errTooMany   = errors.New("tile: too many tiles")
)

type decoder struct {
	r io.Reader

	tiles []ppu.Tile

	tmp [tileBytes]byte
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	for {
		n, err := io.ReadFull(d.r, d.tmp[:])
		switch err {
		case nil:
		case io.EOF:
			return nil
		case io.ErrUnexpectedEOF:
			if n > 0 {
				return errNotEnough
			}
			return nil
		default:
			return err
		}

		if len(d.tiles) == ppu.NumTiles {
			return errTooMany
		}

		var t ppu.Tile
		copy(t.Bit0[:], d.tmp[:tileHeight])
		copy(t.Bit1[:], d.tmp[tileHeight:])
		d.tiles = append(d.tiles, t)
	}
}

// Decode reads CHR data from r, returning at most a full tile table.
func Decode(r io.Reader) ([]ppu.Tile, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.tiles, nil
}

// DecodeTable reads CHR data from r into the start of table and returns
// the number of tiles read.
func DecodeTable(r io.Reader, table *ppu.TileTable) (int, error) {
	tiles, err := Decode(r)
	if err != nil {
		return 0, err
	}
	return copy(table[:], tiles), nil
}

// Image lays tiles out left to right, top to bottom, tileX tiles per row
// and returns the result drawn with p in the usual top-left orientation.
func Image(tiles []ppu.Tile, tileX int, p ppu.Palette) *image.Paletted {
	if tileX < 1 {
		tileX = 1
	}
	tileY := (len(tiles) + tileX - 1) / tileX

	m := image.NewPaletted(image.Rect(0, 0, tileX*tileWidth, tileY*tileHeight), p.ColorPalette())

	for i, t := range tiles {
		tx, ty := i%tileX, i/tileX
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				dx := tx*tileWidth + x
				dy := ty*tileHeight + tileHeight - 1 - y
				m.SetColorIndex(dx, dy, t.ColorIndexAt(x, y))
			}
		}
	}

	return m
}
