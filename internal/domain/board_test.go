package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestBoardDealerAndVulnerability(t *testing.T) {
	tests := []struct {
		board  BoardNumber
		dealer Direction
		vul    Vulnerability
	}{
		{1, North, VulNone},
		{2, East, VulNS},
		{3, South, VulWE},
		{4, West, VulBoth},
		{5, North, VulNS},
		{8, West, VulNone},
		{9, North, VulWE},
		{13, North, VulBoth},
		{16, West, VulWE},
		{17, North, VulNone},
		{20, West, VulBoth},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("board %d", tt.board), func(t *testing.T) {
			if got := tt.board.Dealer(); got != tt.dealer {
				t.Fatalf("Dealer() = %s, want %s", got, tt.dealer)
			}
			if got := tt.board.Vulnerability(); got != tt.vul {
				t.Fatalf("Vulnerability() = %s, want %s", got, tt.vul)
			}
		})
	}
}

func TestNewBoardNumber(t *testing.T) {
	if _, err := NewBoardNumber(0); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("board 0 error = %v, want ErrInvalidBoard", err)
	}
	if b, err := NewBoardNumber(7); err != nil || b != 7 {
		t.Fatalf("NewBoardNumber(7) = %d, %v", b, err)
	}

	wrapped := int64(math.MaxUint32) + 2
	if b, err := NewBoardNumber(int(wrapped)); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("NewBoardNumber(%d) = %d, %v; want ErrInvalidBoard", wrapped, b, err)
	}
	highest := int64(math.MaxUint32)
	if b, err := NewBoardNumber(int(highest)); err != nil || b != math.MaxUint32 {
		t.Fatalf("NewBoardNumber(MaxUint32) = %d, %v", b, err)
	}
}

func TestDealFromDeck(t *testing.T) {
	deal, err := DealFromDeck(2, NewDeck())
	if err != nil {
		t.Fatalf("DealFromDeck error: %v", err)
	}

	seen := make(map[Card]bool)
	for _, d := range Directions {
		hand := deal.Hand(d)
		if len(hand) != 13 {
			t.Fatalf("%s holds %d cards, want 13", d, len(hand))
		}
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}

	// Board 2 is dealt by East, so South receives the first card (the club two).
	if got := deal.Hand(South)[12]; got != (Card{Suit: Clubs, Rank: Two}) {
		t.Fatalf("South's lowest card = %s, want C2", got)
	}

	if _, err := DealFromDeck(1, NewDeck()[:51]); err == nil {
		t.Fatalf("expected error for short deck")
	}
}
