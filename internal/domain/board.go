package domain

import (
	"fmt"
	"math"
)

// BoardNumber identifies a deal in a duplicate set. Numbering starts at 1; dealer and
// vulnerability repeat every 16 boards.
type BoardNumber uint32

var boardVulnerability = [16]Vulnerability{
	VulNone, VulNS, VulWE, VulBoth,
	VulNS, VulWE, VulBoth, VulNone,
	VulWE, VulBoth, VulNone, VulNS,
	VulBoth, VulNone, VulNS, VulWE,
}

// NewBoardNumber rejects board 0 and numbers that do not fit a BoardNumber.
func NewBoardNumber(n int) (BoardNumber, error) {
	if n < 1 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBoard, n)
	}
	return BoardNumber(n), nil
}

// Dealer rotates N, E, S, W starting with board 1.
func (b BoardNumber) Dealer() Direction {
	return Direction((b + 3) % 4)
}

func (b BoardNumber) Vulnerability() Vulnerability {
	return boardVulnerability[(b+15)%16]
}

// Deal is the four hands of one board.
type Deal struct {
	Board BoardNumber
	Hands [4]Hand
}

// Hand returns the cards dealt to d.
func (d Deal) Hand(dir Direction) Hand {
	return d.Hands[dir]
}

// DealFromDeck splits a 52-card deck into hands, dealing one card at a time clockwise
// from the seat after the dealer. Each hand comes back sorted.
func DealFromDeck(board BoardNumber, deck []Card) (Deal, error) {
	if len(deck) != 52 {
		return Deal{}, fmt.Errorf("deck has %d cards, want 52", len(deck))
	}
	d := Deal{Board: board}
	seat := board.Dealer().Next()
	for _, c := range deck {
		d.Hands[seat] = append(d.Hands[seat], c)
		seat = seat.Next()
	}
	for i := range d.Hands {
		d.Hands[i].Sort()
	}
	return d, nil
}
