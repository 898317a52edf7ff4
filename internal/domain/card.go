package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Suit is one of the four card suits, lowest first.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in ascending order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

func ParseSuit(s string) (Suit, error) {
	switch strings.ToUpper(s) {
	case "C":
		return Clubs, nil
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	}
	return 0, invalidToken("suit", s)
}

// Rank orders cards within a suit. Zero is reserved for "no card"; Two is 1 and Ace is 13.
type Rank uint8

const (
	NoRank Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankSymbols = "23456789TJQKA"

// Valid reports whether r names a real card.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) String() string {
	if !r.Valid() {
		return "-"
	}
	return rankSymbols[r-1 : r]
}

// ParseRank accepts 2-9, T (or 10), J, Q, K, A in any case.
func ParseRank(s string) (Rank, error) {
	if s == "10" {
		return Ten, nil
	}
	if len(s) == 1 {
		if i := strings.IndexByte(rankSymbols, strings.ToUpper(s)[0]); i >= 0 {
			return Rank(i + 1), nil
		}
	}
	return NoRank, invalidToken("rank", s)
}

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// ParseCard reads suit-first notation such as "SA", "H10" or "dt".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, invalidToken("card", s)
	}
	suit, err := ParseSuit(s[:1])
	if err != nil {
		return Card{}, invalidToken("card", s)
	}
	rank, err := ParseRank(s[1:])
	if err != nil {
		return Card{}, invalidToken("card", s)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// NewDeck returns the 52 cards ordered by suit, then rank.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Hand is the cards held by one seat.
type Hand []Card

// Sort orders the hand by suit descending (spades first), then rank descending.
func (h Hand) Sort() {
	sort.Slice(h, func(i, j int) bool {
		if h[i].Suit != h[j].Suit {
			return h[i].Suit > h[j].Suit
		}
		return h[i].Rank > h[j].Rank
	})
}

// InSuit returns the ranks held in one suit, in the hand's current order.
func (h Hand) InSuit(s Suit) []Rank {
	var out []Rank
	for _, c := range h {
		if c.Suit == s {
			out = append(out, c.Rank)
		}
	}
	return out
}

// HighCardPoints counts 4-3-2-1 for A-K-Q-J.
func (h Hand) HighCardPoints() int {
	hcp := 0
	for _, c := range h {
		if c.Rank >= Jack {
			hcp += int(c.Rank - Ten)
		}
	}
	return hcp
}

// String renders the hand as "S:AKQ H:T9 D:- C:5432".
func (h Hand) String() string {
	parts := make([]string, 0, 4)
	for i := len(Suits) - 1; i >= 0; i-- {
		var b strings.Builder
		for _, r := range h.InSuit(Suits[i]) {
			b.WriteString(r.String())
		}
		if b.Len() == 0 {
			b.WriteString("-")
		}
		parts = append(parts, Suits[i].String()+":"+b.String())
	}
	return strings.Join(parts, " ")
}
