package app

import (
	"context"
	"errors"
	"fmt"

	"bridge/internal/domain"
	"bridge/internal/ports"
)

var ErrNoResults = errors.New("board has no results")

// BoardStanding is one table's result on a board after matchpointing.
type BoardStanding struct {
	Scored        domain.ScoredBoard
	NSMatchpoints float64
	EWMatchpoints float64
	NSPercent     float64
}

// Ledger records scored boards and ranks the tables that played the same board.
type Ledger struct {
	store ports.ResultStore
}

func NewLedger(store ports.ResultStore) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Record(ctx context.Context, scored domain.ScoredBoard) error {
	if scored.Board == 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidBoard, scored.Board)
	}
	if err := l.store.SaveResult(ctx, scored); err != nil {
		return fmt.Errorf("save result for board %d: %w", scored.Board, err)
	}
	return nil
}

// Standings matchpoints every stored result of a board in the order they were recorded.
func (l *Ledger) Standings(ctx context.Context, board domain.BoardNumber) ([]BoardStanding, error) {
	results, err := l.store.BoardResults(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("load results for board %d: %w", board, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoResults, board)
	}

	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	mps := domain.Matchpoints(scores)
	pcts := domain.Percentages(mps)
	top := domain.Top(len(results))

	out := make([]BoardStanding, len(results))
	for i, r := range results {
		out[i] = BoardStanding{
			Scored:        r,
			NSMatchpoints: mps[i],
			EWMatchpoints: top - mps[i],
			NSPercent:     pcts[i],
		}
	}
	return out, nil
}
