package level

import "github.com/bodgit/ppumaze/ppu"

// Render draws the layout onto the lower left corner of bg. Walls use the
// unlit palette and ground uses the ground tile and palette. Cells outside
// of the layout are left alone.
func Render(l *Layout, bg *ppu.Background) {
	for _, q := range Quadrants {
		ox, oy := l.Geometry.Offset(q)
		for y := 0; y < l.Geometry.QuadrantHeight; y++ {
			for x := 0; x < l.Geometry.QuadrantWidth; x++ {
				if l.occupied(q, x, y) {
					bg.Set(ox+x, oy+y, l.variant(q, x, y).Tile(), UnlitPalette)
				} else {
					bg.Set(ox+x, oy+y, GroundTile, GroundPalette)
				}
			}
		}
	}
}

// Illuminate switches every wall in q to the lit palette. Tile indices and
// ground cells are unchanged.
func Illuminate(l *Layout, bg *ppu.Background, q Quadrant) {
	ox, oy := l.Geometry.Offset(q)
	for y := 0; y < l.Geometry.QuadrantHeight; y++ {
		for x := 0; x < l.Geometry.QuadrantWidth; x++ {
			if l.occupied(q, x, y) {
				bg.SetPalette(ox+x, oy+y, LitPalette)
			}
		}
	}
}
