package core

import "context"

// TurnsRepository is the append-only per-user conversation log.
type TurnsRepository interface {
	// Append assigns the next sequence for the user and stores the turn.
	Append(ctx context.Context, userID, role, content string) error
	// Recent returns up to limit newest turns for the user, oldest first.
	Recent(ctx context.Context, userID string, limit int) ([]Turn, error)
	// Clear removes all turns for the user. Sequence numbering does not restart.
	Clear(ctx context.Context, userID string) error
}

// FragmentsRepository persists embedded text fragments.
type FragmentsRepository interface {
	// Insert stores a fragment and returns its assigned id.
	Insert(ctx context.Context, text string, embedding []float32) (int64, error)
	// All returns a consistent snapshot of every stored fragment,
	// ordered by ascending id.
	All(ctx context.Context) ([]Fragment, error)
	// Count reports the number of stored fragments.
	Count(ctx context.Context) (int64, error)
}
