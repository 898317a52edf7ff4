package domain

import (
	"fmt"
	"strings"
)

// Trick records the rank each seat contributed to one trick. The low nibble holds
// North's rank, the next East's, and so on; a zero nibble means the seat has not played.
//
// Winner compares raw ranks across all four seats, so every recorded card must come from
// the same comparable group (all trumps, or all of the led suit with no trump played).
// The caller sequencing the play guarantees this.
type Trick uint16

// NewTrick returns a trick with no plays.
func NewTrick() Trick {
	return 0
}

func trickShift(d Direction) uint16 {
	return 4 * uint16(d)
}

func trickMask(d Direction) uint16 {
	return 0xf << trickShift(d)
}

// PlayedBy returns the rank recorded for d, if any.
func (t Trick) PlayedBy(d Direction) (Rank, bool) {
	r := Rank((uint16(t) & trickMask(d)) >> trickShift(d))
	return r, r != NoRank
}

// WithPlayed returns a copy of t with d's rank recorded. A seat that already played
// yields t unchanged and a *SeatConflictError holding the earlier rank.
func (t Trick) WithPlayed(d Direction, r Rank) (Trick, error) {
	if held, ok := t.PlayedBy(d); ok {
		return t, &SeatConflictError{Seat: d, Held: held}
	}
	if !r.Valid() {
		return t, fmt.Errorf("%w: %d", ErrInvalidRank, uint8(r))
	}
	return Trick(uint16(t) | uint16(r)<<trickShift(d)), nil
}

// Without returns a copy of t with d's play removed.
func (t Trick) Without(d Direction) Trick {
	return Trick(uint16(t) &^ trickMask(d))
}

// Complete reports whether all four seats have played.
func (t Trick) Complete() bool {
	for _, d := range Directions {
		if uint16(t)&trickMask(d) == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of seats that have played.
func (t Trick) Count() int {
	n := 0
	for _, d := range Directions {
		if _, ok := t.PlayedBy(d); ok {
			n++
		}
	}
	return n
}

// Winner returns the seat holding the highest rank. Empty seats count as the lowest
// possible rank; on an incomplete trick the result is only provisional.
func (t Trick) Winner() Direction {
	best := North
	bestRank, _ := t.PlayedBy(North)
	for _, d := range Directions[1:] {
		if r, _ := t.PlayedBy(d); r > bestRank {
			best, bestRank = d, r
		}
	}
	return best
}

func (t Trick) String() string {
	parts := make([]string, 0, len(Directions))
	for _, d := range Directions {
		r, _ := t.PlayedBy(d)
		parts = append(parts, d.String()+":"+r.String())
	}
	return strings.Join(parts, " ")
}
