package tile

import (
	"io"

	"github.com/bodgit/ppumaze/ppu"
)

type encoder struct {
	w   io.Writer
	tmp [tileBytes]byte
}

func (e *encoder) encode(tiles []ppu.Tile) error {
	for _, t := range tiles {
		copy(e.tmp[:tileHeight], t.Bit0[:])
		copy(e.tmp[tileHeight:], t.Bit1[:])
		if _, err := e.w.Write(e.tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes tiles to w in CHR format.
func Encode(w io.Writer, tiles []ppu.Tile) error {
	e := encoder{w: w}
	return e.encode(tiles)
}

// EncodeTable writes the first n entries of a tile table to w.
func EncodeTable(w io.Writer, table *ppu.TileTable, n int) error {
	if n > len(table) {
		n = len(table)
	}
	return Encode(w, table[:n])
}
