package game

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestScatterMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{"beginner", Beginner.Params()},
		{"intermediate", Intermediate.Params()},
		{"expert", Expert.Params()},
		{"dense", GameParams{Width: 4, Height: 4, MineCount: 15}},
		{"empty", GameParams{Width: 5, Height: 5, MineCount: 0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for round := range 20 {
				grid := scatterMines(test.params, r)

				if len(grid) != test.params.CellCount() {
					t.Fatalf(
						"round %d: grid has %d cells, want %d",
						round, len(grid), test.params.CellCount(),
					)
				}

				placed := 0
				for _, mine := range grid {
					if mine {
						placed++
					}
				}
				if placed != test.params.MineCount {
					t.Errorf(
						"round %d: placed %d mines, want %d",
						round, placed, test.params.MineCount,
					)
				}
			}
		})
	}
}

func TestCountAdjacent(t *testing.T) {
	t.Parallel()

	p := GameParams{Width: 3, Height: 3, MineCount: 2}
	mines := make([]bool, p.CellCount())
	mines[p.index(0, 0)] = true
	mines[p.index(2, 2)] = true

	counts := countAdjacent(p, mines)

	want := map[Point]int8{
		{1, 0}: 1, {0, 1}: 1, {1, 1}: 2,
		{2, 0}: 0, {0, 2}: 0,
		{2, 1}: 1, {1, 2}: 1,
	}
	for pt, n := range want {
		if got := counts[p.index(pt.X, pt.Y)]; got != n {
			t.Errorf("adjacent count at %s = %d, want %d", pt, got, n)
		}
	}
}

func TestCountAdjacentEdgeClipping(t *testing.T) {
	t.Parallel()

	// a lone corner mine on a 2x2 board touches every other cell
	p := GameParams{Width: 2, Height: 2, MineCount: 1}
	mines := []bool{true, false, false, false}

	counts := countAdjacent(p, mines)
	for _, pt := range []Point{{1, 0}, {0, 1}, {1, 1}} {
		if got := counts[p.index(pt.X, pt.Y)]; got != 1 {
			t.Errorf("adjacent count at %s = %d, want 1", pt, got)
		}
	}
}

func TestValidateParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  GameParams
		wantErr error
	}{
		{"beginner ok", GameParams{9, 9, 10}, nil},
		{"full board", GameParams{3, 3, 9}, ErrTooManyMines},
		{"overfull board", GameParams{3, 3, 100}, ErrTooManyMines},
		{"one free cell", GameParams{3, 3, 8}, nil},
		{"zero width", GameParams{0, 3, 0}, ErrBadDims},
		{"negative height", GameParams{3, -1, 0}, ErrBadDims},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
			} else if !errors.Is(err, test.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, test.wantErr)
			}
		})
	}
}
