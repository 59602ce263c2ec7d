package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anhngx/grambot/internal/core"
)

// FragmentsRepo persists embedded text fragments. Fragments are
// append-only; ids are AUTOINCREMENT rowids and never collide, even
// under concurrent inserts.
type FragmentsRepo struct {
	db *sql.DB
}

func NewFragmentsRepo(db *sql.DB) *FragmentsRepo {
	return &FragmentsRepo{db: db}
}

func (r *FragmentsRepo) Insert(ctx context.Context, text string, embedding []float32) (int64, error) {
	blob, err := serializeVector(embedding)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fragments (text, dim, embedding) VALUES (?, ?, ?)`,
		text, len(embedding), blob,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fragment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// All returns every fragment ordered by ascending id. A single SELECT
// gives a consistent snapshot: a concurrent insert is either fully
// visible or not at all.
func (r *FragmentsRepo) All(ctx context.Context) ([]core.Fragment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, text, dim, embedding FROM fragments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fragments: %w", err)
	}
	defer rows.Close()

	var fragments []core.Fragment
	for rows.Next() {
		var (
			f    core.Fragment
			dim  int
			blob []byte
		)
		if err := rows.Scan(&f.ID, &f.Text, &dim, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan fragment: %w", err)
		}
		if f.Embedding, err = deserializeVector(blob, dim); err != nil {
			return nil, fmt.Errorf("fragment %d: %w", f.ID, err)
		}
		fragments = append(fragments, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fragments, nil
}

func (r *FragmentsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fragments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count fragments: %w", err)
	}
	return n, nil
}
