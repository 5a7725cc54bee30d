package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nhoffmann/rusty-minesweeper/internal/game"
	"github.com/nhoffmann/rusty-minesweeper/internal/repository"
)

// CustomDifficulty labels sessions created with explicit dimensions
// instead of a preset.
const CustomDifficulty = "custom"

type CreateGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	var dto CreateGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameParams resolves the request to board parameters: a named preset
// when difficulty is given, explicit dimensions otherwise.
func (dto CreateGameDTO) GameParams() (game.GameParams, string, error) {
	if dto.Difficulty != "" {
		d, err := game.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return game.GameParams{}, "", err
		}
		return d.Params(), string(d), nil
	}
	if dto.Width == 0 && dto.Height == 0 && dto.MineCount == 0 {
		return game.GameParams{}, "", fmt.Errorf(
			"either difficulty or width, height and mine_count must be given",
		)
	}
	p := game.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	return p, CustomDifficulty, p.Validate()
}

type MoveDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string            `json:"game_session_id"`
	Difficulty    string            `json:"difficulty"`
	Grid          game.GridView     `json:"grid"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	MineCount     int               `json:"mine_count"`
	Status        game.Status       `json:"status"`
	Changed       []game.TileChange `json:"changed,omitempty"`
	StartedAt     int64             `json:"started_at"`
	EndedAt       *int64            `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, state *game.GameSession,
) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Difficulty:    session.Difficulty,
		Grid:          state.ViewGrid(),
		Width:         state.Width,
		Height:        state.Height,
		MineCount:     state.MineCount,
		Status:        state.Status,
		StartedAt:     timestampMs(session.StartedAt),
		EndedAt:       timestampMsPtr(session.EndedAt),
	}
}

func (dto *GameSessionDTO) WithChanged(changed []game.TileChange) *GameSessionDTO {
	dto.Changed = changed
	return dto
}

func timestampMs(ts pgtype.Timestamptz) int64 {
	return ts.Time.UnixMilli()
}

func timestampMsPtr(ts pgtype.Timestamptz) *int64 {
	if !ts.Valid {
		return nil
	}
	ms := ts.Time.UnixMilli()
	return &ms
}
