package palette

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/bodgit/ppumaze/ppu"
	"github.com/ericpauley/go-quantize/quantize"
)

func countColors(m image.Image) map[color.NRGBA]int {
	colors := make(map[color.NRGBA]int)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)]++
		}
	}
	return colors
}

func luma(c color.NRGBA) uint32 {
	return 299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)
}

// Transparent colors first, then darkest to lightest
func sortColors(p []color.NRGBA) {
	sort.SliceStable(p, func(i, j int) bool {
		if p[i].A != p[j].A {
			return p[i].A < p[j].A
		}
		if li, lj := luma(p[i]), luma(p[j]); li != lj {
			return li < lj
		}
		return uint32(p[i].R)<<16|uint32(p[i].G)<<8|uint32(p[i].B) < uint32(p[j].R)<<16|uint32(p[j].G)<<8|uint32(p[j].B)
	})
}

// Suggest returns a palette that can represent m. If m already uses no
// more than four colors they are used as-is, otherwise the image is
// reduced to four colors with a median cut quantizer. Unused slots are
// padded with transparent black.
func Suggest(m image.Image) ppu.Palette {
	h := countColors(m)

	colors := make([]color.NRGBA, 0, ppu.ColorsPerPalette)
	if len(h) <= ppu.ColorsPerPalette {
		for c := range h {
			colors = append(colors, c)
		}
	} else {
		q := quantize.MedianCutQuantizer{}
		for _, c := range q.Quantize(make(color.Palette, 0, ppu.ColorsPerPalette), m) {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			if !containsColor(colors, n) {
				colors = append(colors, n)
			}
		}
	}
	if len(colors) > ppu.ColorsPerPalette {
		colors = colors[:ppu.ColorsPerPalette]
	}
	sortColors(colors)

	var p ppu.Palette
	copy(p[len(p)-len(colors):], colors)
	return p
}

func containsColor(p []color.NRGBA, c color.NRGBA) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Remap draws m using only the colors of p so the result can be packed
// into tiles.
func Remap(m image.Image, p ppu.Palette) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(b, p.ColorPalette())
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}
