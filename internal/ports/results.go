package ports

import (
	"context"
	"errors"

	"bridge/internal/domain"
)

// ErrResultConflict is returned when a concurrent writer changed a board's results
// between read and write. Callers may retry.
var ErrResultConflict = errors.New("board results changed concurrently")

// ResultStore persists scored boards so a board can be matchpointed once every table
// has played it.
type ResultStore interface {
	// SaveResult appends one table's result to its board.
	SaveResult(ctx context.Context, result domain.ScoredBoard) error

	// BoardResults returns every stored result for a board in the order they were saved.
	// A board with no results returns an empty slice and no error.
	BoardResults(ctx context.Context, board domain.BoardNumber) ([]domain.ScoredBoard, error)
}
