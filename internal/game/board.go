package game

import (
	"fmt"
	"strconv"
	"strings"
)

type RevealState int8

const (
	Hidden RevealState = iota
	Revealed
	Flagged
)

func (s RevealState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "invalid"
	}
}

// Tile content is fixed at generation time; only State changes during
// play, and only through Open and ToggleFlag.
type Tile struct {
	Mine     bool
	Adjacent int8 // mined neighbors, meaningless when Mine
	State    RevealState
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

func (s RevealState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TileChange reports a tile whose reveal state was altered by an
// action, for the presentation layer to redraw.
type TileChange struct {
	Point
	State RevealState `json:"state"`
}

/*
 * Each item in a [GridView] is one of the following values:
 *
 * 	- 0 to 8 mean the cell is open and has a surrounding mine
 * 	  count.
 *
 * 	- -1 means the cell is flagged.
 *
 * 	- -2 means the cell is covered.
 *
 * 	- 64 means the cell holds a mine exposed after the game ended.
 */
type CellView int8

const (
	CellHidden  CellView = -2
	CellFlagged CellView = -1
	CellMine    CellView = 64
)

func (c CellView) String() string {
	switch {
	case c == CellHidden:
		return "-"
	case c == CellFlagged:
		return "*"
	case c == CellMine:
		return "@"
	case 0 <= c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

type GridView []CellView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (p GameParams) index(x, y int) int {
	return y*p.Width + x
}

func (p GameParams) coords(i int) (x, y int) {
	return i % p.Width, i / p.Width
}

func (p GameParams) neighbors(x, y int) []Point {
	pts := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if p.InBounds(x+dx, y+dy) {
				pts = append(pts, Point{x + dx, y + dy})
			}
		}
	}
	return pts
}
