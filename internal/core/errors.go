package core

import (
	"errors"
	"fmt"
)

// ErrRetrievalUnavailable marks a failed history or memory-index read.
// The orchestrator recovers from it locally; it never reaches the caller.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

// ErrEmptyReply is returned when a backend produced no usable text.
var ErrEmptyReply = errors.New("backend returned empty reply")

// GenerationError is the only failure that crosses the orchestrator
// boundary. It carries the backend name and the underlying cause.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Backend, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// DimensionError rejects a fragment whose embedding does not match the
// index's configured dimension.
type DimensionError struct {
	Want, Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}
