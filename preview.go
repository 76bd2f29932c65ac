package ppumaze

import (
	"image"

	"github.com/bodgit/ppumaze/ppu"
	"golang.org/x/image/draw"
)

// Preview draws the background cells covered by the layout. Pixels using
// a transparent palette color show the background color. The result is
// in the usual top-left orientation.
func (g *Game) Preview() *image.NRGBA {
	if g.Layout == nil {
		return image.NewNRGBA(image.Rectangle{})
	}

	w, h := g.Layout.Geometry.Width, g.Layout.Geometry.Height
	pixelY := h * ppu.TileHeight

	m := image.NewNRGBA(image.Rect(0, 0, w*ppu.TileWidth, pixelY))

	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			t := g.TileTable[g.Background.Tile(tx, ty)]
			p := g.PaletteTable[g.Background.Palette(tx, ty)]
			for y := 0; y < ppu.TileHeight; y++ {
				for x := 0; x < ppu.TileWidth; x++ {
					c := p[t.ColorIndexAt(x, y)]
					if c.A == 0 {
						c = g.BackgroundColor
					}
					m.SetNRGBA(tx*ppu.TileWidth+x, pixelY-1-(ty*ppu.TileHeight+y), c)
				}
			}
		}
	}

	return m
}

// Scale enlarges m by an integer factor without smoothing.
func Scale(m image.Image, factor int) image.Image {
	if factor <= 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}
