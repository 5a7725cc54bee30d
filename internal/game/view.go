package game

import "fmt"

// TileView projects a single tile for display. Content leaks only
// through an open tile or a finished game: a covered or flagged tile
// views the same whether or not it holds a mine.
func (s *GameSession) TileView(x, y int) (CellView, error) {
	if !s.InBounds(x, y) {
		return CellHidden, fmt.Errorf("view %d:%d: %w", x, y, ErrOutOfBounds)
	}
	return s.cellView(s.index(x, y)), nil
}

func (s *GameSession) cellView(i int) CellView {
	t := s.Tiles[i]
	if t.State == Revealed {
		if t.Mine {
			return CellMine
		}
		return CellView(t.Adjacent)
	}
	if s.Status == Lost && t.Mine {
		// terminal-state-only projection of the full layout
		return CellMine
	}
	if t.State == Flagged {
		return CellFlagged
	}
	return CellHidden
}

func (s *GameSession) ViewGrid() GridView {
	g := make(GridView, len(s.Tiles))
	for i := range s.Tiles {
		g[i] = s.cellView(i)
	}
	return g
}

// Mines lists the mine layout of a finished game. During play it
// returns nil so no caller can use it to cheat.
func (s *GameSession) Mines() []Point {
	if !s.Over() {
		return nil
	}
	var pts []Point
	for i := range s.Tiles {
		if s.Tiles[i].Mine {
			x, y := s.coords(i)
			pts = append(pts, Point{x, y})
		}
	}
	return pts
}
