package level

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/bodgit/ppumaze/ppu"
)

const (
	ground = '0'
	wall   = '1'
)

// Layout is the wall occupancy of every quadrant. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Layout struct {
	Geometry Geometry
	chunks   [NumQuadrants][]byte
}

// New returns a layout with no walls.
func New(g Geometry) *Layout {
	l := &Layout{Geometry: g}
	l.reset()
	return l
}

func (l *Layout) reset() {
	for i := range l.chunks {
		l.chunks[i] = bytes.Repeat([]byte{ground}, l.Geometry.QuadrantSize())
	}
}

// Encode converts a layout image into quadrants. The image must be
// exactly the size of g; any pixel that is not transparent black is a
// wall.
func Encode(m image.Image, g Geometry) (*Layout, error) {
	pixels, w, h := ppu.Pixels(m, ppu.LowerLeftOrigin)
	if w != g.Width || h != g.Height {
		return nil, fmt.Errorf("%w: layout is %dx%d, want %dx%d", ppu.ErrImageDimensionMismatch, w, h, g.Width, g.Height)
	}

	l := &Layout{Geometry: g}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			chunk := make([]byte, 0, g.QuadrantSize())
			start := r*g.QuadrantHeight*g.Width + c*g.QuadrantWidth
			for y := 0; y < g.QuadrantHeight; y++ {
				for x := 0; x < g.QuadrantWidth; x++ {
					if pixels[start+y*g.Width+x] == (color.NRGBA{}) {
						chunk = append(chunk, ground)
					} else {
						chunk = append(chunk, wall)
					}
				}
			}
			l.chunks[quadrant(r, c)] = chunk
		}
	}

	return l, nil
}

// Chunk returns a copy of the raw cells of q.
func (l *Layout) Chunk(q Quadrant) []byte {
	return append([]byte(nil), l.chunks[q]...)
}

// occupied reports whether the cell x, y relative to q is a wall. Cells
// outside of q are never walls, even if the neighbouring quadrant has one.
func (l *Layout) occupied(q Quadrant, x, y int) bool {
	if x < 0 || y < 0 || x >= l.Geometry.QuadrantWidth || y >= l.Geometry.QuadrantHeight {
		return false
	}
	return l.chunks[q][y*l.Geometry.QuadrantWidth+x] == wall
}

func (l *Layout) locate(x, y int) (Quadrant, int, int, bool) {
	q, ok := l.Geometry.QuadrantAt(x, y)
	if !ok {
		return 0, 0, 0, false
	}
	ox, oy := l.Geometry.Offset(q)
	return q, x - ox, y - oy, true
}

// Occupied reports whether the cell x, y is a wall, with 0, 0 being the
// lower left cell of the layout.
func (l *Layout) Occupied(x, y int) bool {
	q, qx, qy, ok := l.locate(x, y)
	return ok && l.occupied(q, qx, qy)
}

// Set marks the cell x, y as a wall or as ground.
func (l *Layout) Set(x, y int, isWall bool) {
	q, qx, qy, ok := l.locate(x, y)
	if !ok {
		return
	}
	v := byte(ground)
	if isWall {
		v = wall
	}
	l.chunks[q][qy*l.Geometry.QuadrantWidth+qx] = v
}

// WriteTo writes the layout chunks to w.
func (l *Layout) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, q := range Quadrants {
		if len(l.chunks[q]) != l.Geometry.QuadrantSize() {
			return n, fmt.Errorf("%w: chunk %s is %d bytes, want %d", ErrChunkSizeMismatch, q, len(l.chunks[q]), l.Geometry.QuadrantSize())
		}
		if err := writeChunk(w, q.Magic(), l.chunks[q]); err != nil {
			return n, err
		}
		n += int64(chunkHeaderSize + len(l.chunks[q]))
	}
	return n, nil
}

// MarshalBinary encodes the layout into binary form and returns the result
func (l *Layout) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if _, err := l.WriteTo(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the layout from binary form. The geometry must
// be set beforehand; a zero geometry is taken to mean DefaultGeometry.
func (l *Layout) UnmarshalBinary(b []byte) error {
	if l.Geometry == (Geometry{}) {
		l.Geometry = DefaultGeometry
	}

	r := bytes.NewReader(b)

	var chunks [NumQuadrants][]byte
	for _, q := range Quadrants {
		data, err := readChunk(r, q.Magic(), l.Geometry.QuadrantSize())
		if err != nil {
			return err
		}
		for i, c := range data {
			if c != ground && c != wall {
				return fmt.Errorf("%w: chunk %s cell %d is %#02x", errBadCell, q, i, c)
			}
		}
		chunks[q] = data
	}

	if r.Len() > 0 {
		return errTooMuch
	}

	l.chunks = chunks

	return nil
}

// Read reads a whole layout file from r.
func Read(r io.Reader, g Geometry) (*Layout, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	l := &Layout{Geometry: g}
	if err := l.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return l, nil
}
