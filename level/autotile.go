package level

import "fmt"

// Variant is one of the nine maze wall tiles. The values follow the 3 by 3
// layout of the maze spritesheet in reading order, so the tile index of a
// variant is MazeTileBase plus the variant.
type Variant uint8

// Maze wall tiles.
const (
	CornerTopLeft Variant = iota
	EdgeTop
	CornerTopRight
	EdgeLeft
	Cross
	EdgeRight
	CornerBottomLeft
	EdgeBottom
	CornerBottomRight
	NumVariants
)

var variantNames = [NumVariants]string{
	"CornerTopLeft",
	"EdgeTop",
	"CornerTopRight",
	"EdgeLeft",
	"Cross",
	"EdgeRight",
	"CornerBottomLeft",
	"EdgeBottom",
	"CornerBottomRight",
}

func (v Variant) String() string {
	if v < NumVariants {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Tile returns the tile table index of v.
func (v Variant) Tile() uint8 {
	return MazeTileBase + uint8(v)
}

// Position classifies where a cell sits within its quadrant.
type Position uint8

// Cell positions. A cell on both the top row and a column edge is treated
// as being on the top row, likewise for the bottom row.
const (
	Interior Position = iota
	TopRow
	BottomRow
	LeftColumn
	RightColumn
	numPositions
)

// Neighbors is a mask of the walls adjacent to a cell within its quadrant.
type Neighbors uint8

// Neighbor directions, Up being towards the top of the screen.
const (
	Up Neighbors = 1 << iota
	Down
	Left
	Right

	numNeighbors = 16
)

// Indexed by the Left and Right bits
var (
	topRow = [4]Variant{
		0:                   CornerTopLeft,
		Left >> 2:           CornerTopRight,
		Right >> 2:          CornerTopLeft,
		(Left | Right) >> 2: EdgeTop,
	}
	bottomRow = [4]Variant{
		0:                   CornerBottomLeft,
		Left >> 2:           CornerBottomRight,
		Right >> 2:          CornerBottomLeft,
		(Left | Right) >> 2: EdgeBottom,
	}
)

// Indexed by the Up and Down bits
var (
	leftColumn = [4]Variant{
		0:         CornerTopLeft,
		Up:        CornerBottomLeft,
		Down:      CornerTopLeft,
		Up | Down: EdgeLeft,
	}
	rightColumn = [4]Variant{
		0:         CornerTopRight,
		Up:        CornerBottomRight,
		Down:      CornerTopRight,
		Up | Down: EdgeRight,
	}
)

var interior = [numNeighbors]Variant{
	0:                        EdgeTop,
	Left:                     CornerTopRight,
	Right:                    CornerTopLeft,
	Left | Right:             EdgeTop,
	Down:                     EdgeTop,
	Down | Left:              CornerTopRight,
	Down | Right:             CornerTopLeft,
	Down | Left | Right:      EdgeTop,
	Up:                       EdgeBottom,
	Up | Left:                CornerBottomRight,
	Up | Right:               CornerBottomLeft,
	Up | Left | Right:        EdgeBottom,
	Up | Down:                EdgeRight,
	Up | Down | Left:         EdgeRight,
	Up | Down | Right:        EdgeLeft,
	Up | Down | Left | Right: Cross,
}

var variants [numPositions][numNeighbors]Variant

func init() {
	for n := Neighbors(0); n < numNeighbors; n++ {
		variants[Interior][n] = interior[n]
		variants[TopRow][n] = topRow[n&(Left|Right)>>2]
		variants[BottomRow][n] = bottomRow[n&(Left|Right)>>2]
		variants[LeftColumn][n] = leftColumn[n&(Up|Down)]
		variants[RightColumn][n] = rightColumn[n&(Up|Down)]
	}
}

// Classify returns the wall tile for a cell at position p with walls at
// neighbors n.
func Classify(p Position, n Neighbors) Variant {
	return variants[p][n&(numNeighbors-1)]
}

func (g Geometry) position(x, y int) Position {
	switch {
	case y == g.QuadrantHeight-1:
		return TopRow
	case y == 0:
		return BottomRow
	case x == 0:
		return LeftColumn
	case x == g.QuadrantWidth-1:
		return RightColumn
	default:
		return Interior
	}
}

func (l *Layout) neighbors(q Quadrant, x, y int) Neighbors {
	var n Neighbors
	if l.occupied(q, x, y+1) {
		n |= Up
	}
	if l.occupied(q, x, y-1) {
		n |= Down
	}
	if l.occupied(q, x-1, y) {
		n |= Left
	}
	if l.occupied(q, x+1, y) {
		n |= Right
	}
	return n
}

func (l *Layout) variant(q Quadrant, x, y int) Variant {
	return Classify(l.Geometry.position(x, y), l.neighbors(q, x, y))
}

// Variant returns the wall tile drawn at cell x, y, or false if the cell
// is ground.
func (l *Layout) Variant(x, y int) (Variant, bool) {
	q, qx, qy, ok := l.locate(x, y)
	if !ok || !l.occupied(q, qx, qy) {
		return 0, false
	}
	return l.variant(q, qx, qy), true
}
