package game

import "math/rand/v2"

// scatterMines picks exactly p.MineCount distinct cells uniformly at
// random. Any cell may hold a mine, including the first one the player
// opens.
func scatterMines(p GameParams, r *rand.Rand) []bool {
	grid := make([]bool, p.CellCount())

	candidates := make([]int, len(grid))
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Pick n off the list at random, swapping each pick out of the
	 * candidate pool so no cell can be drawn twice.
	 */
	k := len(candidates)
	for range p.MineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return grid
}

// countAdjacent computes the mined-neighbor count of every non-mine
// cell. Runs once per board, right after placement.
func countAdjacent(p GameParams, mines []bool) []int8 {
	counts := make([]int8, len(mines))
	for i := range mines {
		if mines[i] {
			continue
		}
		x, y := p.coords(i)
		for _, n := range p.neighbors(x, y) {
			if mines[p.index(n.X, n.Y)] {
				counts[i]++
			}
		}
	}
	return counts
}
