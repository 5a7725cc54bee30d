package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileViewHidesContent(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	// before any reveal, a mine and a safe tile view identically
	for y := range s.Height {
		for x := range s.Width {
			v, err := s.TileView(x, y)
			require.NoError(t, err)
			assert.Equal(t, CellHidden, v, "tile %d:%d", x, y)
		}
	}

	_, err := s.ToggleFlag(0, 0)
	require.NoError(t, err)
	v, err := s.TileView(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CellFlagged, v, "flagging must not expose the mine")
}

func TestTileViewRevealedContent(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0})

	_, err := s.Open(1, 1)
	require.NoError(t, err)

	v, err := s.TileView(1, 1)
	require.NoError(t, err)
	assert.Equal(t, CellView(1), v)
}

func TestLossExposesAllMines(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0}, Point{2, 2})

	_, err := s.Open(0, 0)
	require.NoError(t, err)
	require.Equal(t, Lost, s.Status)

	g := s.ViewGrid()
	assert.Equal(t, CellMine, g[s.index(0, 0)])
	assert.Equal(t, CellMine, g[s.index(2, 2)], "unopened mine shown after loss")
	// the projection does not touch reveal states
	assert.Equal(t, Hidden, s.Tiles[s.index(2, 2)].State)
}

func TestMinesProjectionGatedOnGameOver(t *testing.T) {
	t.Parallel()

	s := testSession(t, 3, 3, Point{0, 0}, Point{2, 2})

	assert.Nil(t, s.Mines(), "layout must stay secret during play")

	_, err := s.Open(0, 0)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Point{{0, 0}, {2, 2}}, s.Mines())
}

func TestGridViewToString(t *testing.T) {
	t.Parallel()

	s := testSession(t, 2, 2, Point{0, 0})

	_, err := s.Open(1, 1)
	require.NoError(t, err)
	_, err = s.ToggleFlag(0, 1)
	require.NoError(t, err)

	assert.Equal(t, "- - \n* 1 \n", s.ViewGrid().ToString(s.Width))
}
