package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anhngx/grambot/internal/core"
	"github.com/anhngx/grambot/pkg/log"
)

// TurnsRepo persists the per-user conversation log. The AUTOINCREMENT
// primary key doubles as the turn sequence: sqlite's single-writer model
// makes its assignment linearizable per user.
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) Append(ctx context.Context, userID, role, content string) error {
	query := `INSERT INTO turns (user_id, role, content) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, role, content); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) Recent(ctx context.Context, userID string, limit int) ([]core.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT id, user_id, role, content, created_at FROM turns WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.Sequence, &t.UserID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned turns newest first; reverse back to
	// chronological order for the prompt.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("user_id", userID).Int("count", len(turns)).Msg("loaded recent turns")
	return turns, nil
}

func (r *TurnsRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turns WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear turns: %w", err)
	}
	return nil
}
