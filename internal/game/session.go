package game

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type GameSession struct {
	GameParams
	Tiles  []Tile
	Status Status
}

// NewSession builds a fully populated board: mines scattered, adjacent
// counts computed, every tile covered. Tile content never changes after
// this point.
func NewSession(p GameParams, r *rand.Rand) (*GameSession, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mines := scatterMines(p, r)
	counts := countAdjacent(p, mines)

	tiles := make([]Tile, p.CellCount())
	for i := range tiles {
		tiles[i] = Tile{Mine: mines[i], Adjacent: counts[i]}
	}

	return &GameSession{GameParams: p, Tiles: tiles}, nil
}

func NewSessionFor(d Difficulty, r *rand.Rand) (*GameSession, error) {
	return NewSession(d.Params(), r)
}

func DecodeSession(buf []byte) (*GameSession, error) {
	var s GameSession
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s GameSession) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GameSession) Over() bool {
	return s.Status != InProgress
}

// Open uncovers the tile at x:y. Opening a mine loses the game;
// opening a cell with no mined neighbors cascades through its whole
// zero region and that region's numbered border. Calls on a flagged,
// already open or post-game tile do nothing and report no changes.
func (s *GameSession) Open(x, y int) ([]TileChange, error) {
	if !s.InBounds(x, y) {
		return nil, fmt.Errorf("open %d:%d: %w", x, y, ErrOutOfBounds)
	}
	if s.Over() {
		return nil, nil
	}

	i := s.index(x, y)
	if s.Tiles[i].State != Hidden {
		return nil, nil
	}

	if s.Tiles[i].Mine {
		s.Tiles[i].State = Revealed
		s.Status = Lost
		return []TileChange{{Point{x, y}, Revealed}}, nil
	}

	changed := s.flood(i)

	if s.cleared() {
		s.Status = Won
	}

	return changed, nil
}

/*
 * Uncover the zero region connected to the starting cell along with
 * its numbered border. A plain worklist over tile indices; a tile is
 * marked open the moment it is queued, so no cell is ever visited
 * twice no matter how large the open region is. Mines and flagged
 * tiles are skipped, never uncovered by a cascade.
 */
func (s *GameSession) flood(start int) []TileChange {
	s.Tiles[start].State = Revealed

	sx, sy := s.coords(start)
	changed := []TileChange{{Point{sx, sy}, Revealed}}

	queue := []int{start}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		if s.Tiles[i].Adjacent > 0 {
			continue
		}

		x, y := s.coords(i)
		for _, n := range s.neighbors(x, y) {
			j := s.index(n.X, n.Y)
			if s.Tiles[j].State != Hidden || s.Tiles[j].Mine {
				continue
			}
			s.Tiles[j].State = Revealed
			changed = append(changed, TileChange{n, Revealed})
			if s.Tiles[j].Adjacent == 0 {
				queue = append(queue, j)
			}
		}
	}

	return changed
}

func (s *GameSession) cleared() bool {
	for i := range s.Tiles {
		if !s.Tiles[i].Mine && s.Tiles[i].State != Revealed {
			return false
		}
	}
	return true
}

// ToggleFlag flips the tile at x:y between covered and flagged. Open
// tiles cannot be flagged; a finished game accepts no toggles. The
// returned change is nil when nothing happened.
func (s *GameSession) ToggleFlag(x, y int) (*TileChange, error) {
	if !s.InBounds(x, y) {
		return nil, fmt.Errorf("flag %d:%d: %w", x, y, ErrOutOfBounds)
	}
	if s.Over() {
		return nil, nil
	}

	i := s.index(x, y)
	switch s.Tiles[i].State {
	case Hidden:
		s.Tiles[i].State = Flagged
	case Flagged:
		s.Tiles[i].State = Hidden
	default:
		return nil, nil
	}
	return &TileChange{Point{x, y}, s.Tiles[i].State}, nil
}

// Forfeit ends the game as a loss. Does nothing if the game is already
// over.
func (s *GameSession) Forfeit() {
	if !s.Over() {
		s.Status = Lost
	}
}
