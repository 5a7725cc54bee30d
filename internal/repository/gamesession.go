package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nhoffmann/rusty-minesweeper/internal/game"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	Difficulty    string
	Width         int
	Height        int
	MineCount     int
	Dead          bool
	Won           bool
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	State         []byte
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type CreateGameSessionParams struct {
	PlayerId   *int64
	Difficulty string
}

func (q Queries) CreateGameSession(
	ctx context.Context, state *game.GameSession, params CreateGameSessionParams,
) (*GameSession, error) {
	b, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":  nil,
		"difficulty": params.Difficulty,
		"width":      state.Width,
		"height":     state.Height,
		"mine_count": state.MineCount,
		"dead":       state.Status == game.Lost,
		"won":        state.Status == game.Won,
		"state":      b,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, difficulty, width, height, mine_count, dead, won, state
		)
		VALUES (
			@player_id, @difficulty, @width, @height, @mine_count, @dead, @won, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Dead    *bool
	Won     *bool
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := make([]string, 0)
	args := pgx.NamedArgs{}

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	if setClause == "" {
		return q.FetchGameSession(ctx, gameSessionId)
	}
	args["game_session_id"] = gameSessionId

	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session
		SET `+setClause+`
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

// SaveGame persists the outcome of a move: the serialized state plus
// denormalized status columns, stamping ended_at the first time the
// game reaches a terminal status.
func (q Queries) SaveGame(
	ctx context.Context, session *GameSession, state *game.GameSession,
) (*GameSession, error) {
	b, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	dead := state.Status == game.Lost
	won := state.Status == game.Won
	params := UpdateGameSessionParams{
		Dead:  &dead,
		Won:   &won,
		State: &b,
	}
	if state.Over() && !session.EndedAt.Valid {
		now := time.Now().UTC()
		params.EndedAt = &now
	}

	return q.UpdateGameSession(ctx, session.GameSessionId, params)
}
