package game

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyMines = errors.New("mine count must be less than cell count")
	ErrBadDims      = errors.New("board dimensions must be positive")
	ErrOutOfBounds  = errors.New("coordinates out of bounds")
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", p.Width, p.Height, ErrBadDims)
	}
	if p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"%d mines on %dx%d: %w",
			p.MineCount, p.Width, p.Height, ErrTooManyMines,
		)
	}
	return nil
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) InBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Expert       Difficulty = "expert"
)

var difficultyParams = map[Difficulty]GameParams{
	Beginner:     {Width: 9, Height: 9, MineCount: 10},
	Intermediate: {Width: 16, Height: 16, MineCount: 40},
	Expert:       {Width: 30, Height: 16, MineCount: 99},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := difficultyParams[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

func (d Difficulty) Params() GameParams {
	return difficultyParams[d]
}
