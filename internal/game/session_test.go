package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSession builds a board with a fixed mine layout, bypassing the
// random scatter.
func testSession(t *testing.T, width, height int, mines ...Point) *GameSession {
	t.Helper()

	p := GameParams{Width: width, Height: height, MineCount: len(mines)}
	require.NoError(t, p.Validate())

	grid := make([]bool, p.CellCount())
	for _, m := range mines {
		require.True(t, p.InBounds(m.X, m.Y), "mine %s out of bounds", m)
		require.False(t, grid[p.index(m.X, m.Y)], "duplicate mine %s", m)
		grid[p.index(m.X, m.Y)] = true
	}

	counts := countAdjacent(p, grid)
	tiles := make([]Tile, p.CellCount())
	for i := range tiles {
		tiles[i] = Tile{Mine: grid[i], Adjacent: counts[i]}
	}
	return &GameSession{GameParams: p, Tiles: tiles}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	for _, d := range []Difficulty{Beginner, Intermediate, Expert} {
		t.Run(string(d), func(t *testing.T) {
			s, err := NewSessionFor(d, r)
			require.NoError(t, err)

			p := d.Params()
			assert.Equal(t, InProgress, s.Status)
			assert.Len(t, s.Tiles, p.CellCount())

			placed := 0
			for i, tile := range s.Tiles {
				assert.Equal(t, Hidden, tile.State)
				if tile.Mine {
					placed++
					continue
				}
				x, y := s.coords(i)
				want := int8(0)
				for _, n := range p.neighbors(x, y) {
					if s.Tiles[p.index(n.X, n.Y)].Mine {
						want++
					}
				}
				assert.Equal(t, want, tile.Adjacent, "adjacent count at %d:%d", x, y)
			}
			assert.Equal(t, p.MineCount, placed)
		})
	}
}

func TestNewSessionRejectsBadParams(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	_, err := NewSession(GameParams{Width: 3, Height: 3, MineCount: 9}, r)
	assert.ErrorIs(t, err, ErrTooManyMines)

	_, err = NewSession(GameParams{Width: 0, Height: 3, MineCount: 0}, r)
	assert.ErrorIs(t, err, ErrBadDims)
}

func TestOpenNumberedTile(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	changed, err := s.Open(1, 1)
	require.NoError(t, err)

	assert.Equal(t, []TileChange{{Point{1, 1}, Revealed}}, changed)
	assert.Equal(t, InProgress, s.Status)
}

func TestOpenMineLosesGame(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	changed, err := s.Open(0, 0)
	require.NoError(t, err)

	assert.Equal(t, []TileChange{{Point{0, 0}, Revealed}}, changed)
	assert.Equal(t, Lost, s.Status)
}

func TestOpenCascade(t *testing.T) {
	t.Parallel()

	/*
	 * 5x3 board with a single mine in the corner:
	 *
	 *   * 1 0 0 0
	 *   1 1 0 0 0
	 *   0 0 0 0 0
	 *
	 * Opening 4:0 must uncover everything except the mine.
	 */
	s := testSession(t, 5, 3, Point{0, 0})

	changed, err := s.Open(4, 0)
	require.NoError(t, err)

	assert.Len(t, changed, 14)
	for _, c := range changed {
		assert.Equal(t, Revealed, c.State)
		assert.NotEqual(t, Point{0, 0}, c.Point, "cascade must not touch the mine")
	}
	assert.Equal(t, Hidden, s.Tiles[s.index(0, 0)].State)
	assert.Equal(t, Won, s.Status, "uncovering every safe tile wins")
}

func TestCascadeStopsAtNumberedBorder(t *testing.T) {
	t.Parallel()

	/*
	 *   0 0 1 * 1
	 *   0 0 1 1 1
	 *   0 0 0 0 0
	 *
	 * The numbered border is revealed but does not propagate past
	 * itself: the mine stays covered, and so does 4:0, whose only
	 * safe neighbors are themselves numbered.
	 */
	s := testSession(t, 5, 3, Point{3, 0})

	changed, err := s.Open(0, 0)
	require.NoError(t, err)

	assert.Len(t, changed, 13)
	assert.Equal(t, Hidden, s.Tiles[s.index(3, 0)].State)
	assert.Equal(t, Hidden, s.Tiles[s.index(4, 0)].State)
	assert.Equal(t, InProgress, s.Status)
}

func TestCascadeSkipsFlaggedTiles(t *testing.T) {
	t.Parallel()

	s := testSession(t, 5, 3, Point{0, 0})

	_, err := s.ToggleFlag(2, 1)
	require.NoError(t, err)

	changed, err := s.Open(4, 0)
	require.NoError(t, err)

	assert.Len(t, changed, 13)
	assert.Equal(t, Flagged, s.Tiles[s.index(2, 1)].State)
	assert.Equal(t, InProgress, s.Status, "flagged safe tile is still covered")
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	first, err := s.Open(1, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := s.Open(1, 1)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestOpenFlaggedTileIsNoop(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	_, err := s.ToggleFlag(1, 1)
	require.NoError(t, err)

	changed, err := s.Open(1, 1)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, Flagged, s.Tiles[s.index(1, 1)].State)

	// unflag, then the open goes through
	_, err = s.ToggleFlag(1, 1)
	require.NoError(t, err)

	changed, err = s.Open(1, 1)
	require.NoError(t, err)
	assert.Len(t, changed, 1)
}

func TestToggleFlag(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	c, err := s.ToggleFlag(2, 2)
	require.NoError(t, err)
	assert.Equal(t, &TileChange{Point{2, 2}, Flagged}, c)

	c, err = s.ToggleFlag(2, 2)
	require.NoError(t, err)
	assert.Equal(t, &TileChange{Point{2, 2}, Hidden}, c)
}

func TestToggleFlagOnRevealedTileIsNoop(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	_, err := s.Open(1, 1)
	require.NoError(t, err)

	c, err := s.ToggleFlag(1, 1)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, Revealed, s.Tiles[s.index(1, 1)].State)
}

func TestWinOnLastSafeTile(t *testing.T) {
	t.Parallel()

	s := testSession(t, 2, 2, Point{0, 0})

	for _, pt := range []Point{{1, 0}, {0, 1}} {
		_, err := s.Open(pt.X, pt.Y)
		require.NoError(t, err)
		assert.Equal(t, InProgress, s.Status, "no premature win after %s", pt)
	}

	_, err := s.Open(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, s.Status)
}

func TestTerminalSessionRejectsActions(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	_, err := s.Open(0, 0)
	require.NoError(t, err)
	require.Equal(t, Lost, s.Status)

	snapshot := make([]Tile, len(s.Tiles))
	copy(snapshot, s.Tiles)

	changed, err := s.Open(2, 2)
	require.NoError(t, err)
	assert.Empty(t, changed)

	c, err := s.ToggleFlag(2, 2)
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.Equal(t, snapshot, s.Tiles, "no tile may change after the game ends")
}

func TestOutOfBounds(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	for _, pt := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		_, err := s.Open(pt.X, pt.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "open %s", pt)

		_, err = s.ToggleFlag(pt.X, pt.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "flag %s", pt)

		_, err = s.TileView(pt.X, pt.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "view %s", pt)
	}
}

func TestForfeit(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})
	s.Forfeit()
	assert.Equal(t, Lost, s.Status)

	// forfeit never downgrades a win
	s = testSession(t, 2, 2, Point{0, 0})
	for _, pt := range []Point{{1, 0}, {0, 1}, {1, 1}} {
		_, err := s.Open(pt.X, pt.Y)
		require.NoError(t, err)
	}
	require.Equal(t, Won, s.Status)
	s.Forfeit()
	assert.Equal(t, Won, s.Status)
}

func TestSessionGobRoundTrip(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSessionFor(Beginner, r)
	require.NoError(t, err)

	// leave some play state behind before encoding
	_, err = s.ToggleFlag(0, 0)
	require.NoError(t, err)
	for y := range s.Height {
		for x := range s.Width {
			if !s.Tiles[s.index(x, y)].Mine {
				_, err = s.Open(x, y)
				require.NoError(t, err)
				break
			}
		}
		break
	}

	b, err := s.Bytes()
	require.NoError(t, err)

	decoded, err := DecodeSession(b)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestErrorsAreComparable(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})
	_, err := s.Open(5, 5)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
