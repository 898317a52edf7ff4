package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidRank     = errors.New("rank out of range")
	ErrSeatTaken       = errors.New("seat already played")
	ErrInvalidContract = errors.New("invalid contract")
	ErrInvalidBoard    = errors.New("invalid board number")
)

// SeatConflictError reports a second play for a seat that already holds a card.
// Held is the rank recorded first.
type SeatConflictError struct {
	Seat Direction
	Held Rank
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %s already played %s", e.Seat, e.Held)
}

func (e *SeatConflictError) Is(target error) bool {
	return target == ErrSeatTaken
}

func invalidToken(kind, token string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidToken, kind, token)
}
