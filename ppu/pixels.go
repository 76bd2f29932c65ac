package ppu

import (
	"image"
	"image/color"
)

// Origin selects which scanline of an image becomes the first row of a
// flattened pixel buffer.
type Origin int

const (
	// UpperLeftOrigin stores the top scanline first
	UpperLeftOrigin Origin = iota
	// LowerLeftOrigin stores the bottom scanline first, matching the
	// row order of tiles and the background
	LowerLeftOrigin
)

// Pixels flattens m into a row-major buffer of non-premultiplied colors
// and returns it with the image dimensions.
func Pixels(m image.Image, origin Origin) ([]color.NRGBA, int, int) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]color.NRGBA, 0, w*h)
	for i := 0; i < h; i++ {
		y := b.Min.Y + i
		if origin == LowerLeftOrigin {
			y = b.Max.Y - 1 - i
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA))
		}
	}
	return pixels, w, h
}
