package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

// GameRepo stores saved games in the saved_games table.
type GameRepo struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewGameRepo(db *sql.DB, logger *zap.Logger) *GameRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameRepo{DB: db, logger: logger.Named("postgres-store")}
}

// Save upserts the payload under name. game_id and total_moves are taken from
// the JSON document itself.
func (r *GameRepo) Save(ctx context.Context, name string, payload []byte) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrapf(domain.ErrInvalidSaveName, "%q", name)
	}

	query := `
	INSERT INTO saved_games (name, game_id, payload, total_moves, saved_at)
	VALUES ($1, COALESCE($2::jsonb ->> 'gameId', ''), $2::jsonb, jsonb_array_length($2::jsonb -> 'history'), NOW())
	ON CONFLICT (name) DO UPDATE SET
		game_id = EXCLUDED.game_id,
		payload = EXCLUDED.payload,
		total_moves = EXCLUDED.total_moves,
		saved_at = EXCLUDED.saved_at;
	`

	if _, err := r.DB.ExecContext(ctx, query, name, string(payload)); err != nil {
		return "", errors.Wrapf(err, "failed to upsert save %s", name)
	}

	r.logger.Info("game saved", zap.String("name", name), zap.Int("bytes", len(payload)))
	return "postgres:saved_games/" + name, nil
}

func (r *GameRepo) Load(ctx context.Context, name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrapf(domain.ErrInvalidSaveName, "%q", name)
	}

	var payload []byte
	err := r.DB.QueryRowContext(ctx, `SELECT payload FROM saved_games WHERE name = $1;`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrSaveNotFound, "%s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get save %s", name)
	}
	return payload, nil
}

// List returns save names, most recent first.
func (r *GameRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM saved_games ORDER BY saved_at DESC, name;`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query saves")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan save row")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
