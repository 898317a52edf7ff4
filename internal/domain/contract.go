package domain

import (
	"fmt"
	"strings"
)

// Strain is the trump designation of a contract.
type Strain uint8

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	NoTrump
)

// Strains lists every strain in bidding order.
var Strains = [5]Strain{StrainClubs, StrainDiamonds, StrainHearts, StrainSpades, NoTrump}

func (s Strain) String() string {
	switch s {
	case StrainClubs:
		return "C"
	case StrainDiamonds:
		return "D"
	case StrainHearts:
		return "H"
	case StrainSpades:
		return "S"
	case NoTrump:
		return "NT"
	}
	return fmt.Sprintf("Strain(%d)", uint8(s))
}

// ParseStrain accepts C, D, H, S, NT (or N) in any case.
func ParseStrain(s string) (Strain, error) {
	switch strings.ToUpper(s) {
	case "C":
		return StrainClubs, nil
	case "D":
		return StrainDiamonds, nil
	case "H":
		return StrainHearts, nil
	case "S":
		return StrainSpades, nil
	case "NT", "N":
		return NoTrump, nil
	}
	return 0, invalidToken("strain", s)
}

// Trump returns the trump suit, or false for no-trump.
func (s Strain) Trump() (Suit, bool) {
	if s == NoTrump {
		return 0, false
	}
	return Suit(s), true
}

func (s Strain) IsMajor() bool { return s == StrainHearts || s == StrainSpades }
func (s Strain) IsMinor() bool { return s == StrainClubs || s == StrainDiamonds }

// TrickValue is the undoubled trick score for a contract of the given level.
func (s Strain) TrickValue(level int) int {
	switch {
	case s == NoTrump:
		return 40 + 30*(level-1)
	case s.IsMajor():
		return 30 * level
	default:
		return 20 * level
	}
}

// OvertrickValue is the undoubled value of a single trick beyond the contract.
func (s Strain) OvertrickValue() int {
	if s.IsMinor() {
		return 20
	}
	return 30
}

// Doubling is the risk multiplier agreed in the auction.
type Doubling uint8

const (
	Undoubled Doubling = iota
	Doubled
	Redoubled
)

func (d Doubling) String() string {
	switch d {
	case Undoubled:
		return ""
	case Doubled:
		return "X"
	case Redoubled:
		return "XX"
	}
	return fmt.Sprintf("Doubling(%d)", uint8(d))
}

// ParseDoubling accepts "", "-", X and XX in any case.
func ParseDoubling(s string) (Doubling, error) {
	switch strings.ToUpper(s) {
	case "", "-":
		return Undoubled, nil
	case "X":
		return Doubled, nil
	case "XX":
		return Redoubled, nil
	}
	return 0, invalidToken("doubling", s)
}

// Multiplier applies to the trick score: 1, 2 or 4.
func (d Doubling) Multiplier() int {
	return 1 << d
}

// Contract is the final bid: level (tricks beyond six), strain and doubling.
type Contract struct {
	Level    int      `json:"level"`
	Strain   Strain   `json:"strain"`
	Doubling Doubling `json:"doubling"`
}

func (c Contract) String() string {
	return fmt.Sprintf("%d%s%s", c.Level, c.Strain, c.Doubling)
}

// Tricks is the number of tricks the declarer undertook to win.
func (c Contract) Tricks() int {
	return 6 + c.Level
}

// Result is the outcome of one board: either passed out, or a contract played by a
// declarer and made or missed by Differential tricks (0 made exactly, +n overtricks,
// -n undertricks).
type Result struct {
	Passed       bool
	Contract     Contract
	Declarer     Direction
	Differential int
}

// PassedOut is the result of a board nobody bid.
func PassedOut() Result {
	return Result{Passed: true}
}

// NewResult validates a played result. Score never checks its input; this is the
// boundary where malformed outcomes are rejected.
func NewResult(c Contract, declarer Direction, differential int) (Result, error) {
	if c.Level < 1 || c.Level > 7 {
		return Result{}, fmt.Errorf("%w: level %d", ErrInvalidContract, c.Level)
	}
	if c.Strain > NoTrump {
		return Result{}, fmt.Errorf("%w: strain %d", ErrInvalidContract, uint8(c.Strain))
	}
	if c.Doubling > Redoubled {
		return Result{}, fmt.Errorf("%w: doubling %d", ErrInvalidContract, uint8(c.Doubling))
	}
	if declarer > West {
		return Result{}, fmt.Errorf("%w: declarer %d", ErrInvalidContract, uint8(declarer))
	}
	if differential < -c.Tricks() || differential > 13-c.Tricks() {
		return Result{}, fmt.Errorf("%w: %s cannot finish %+d", ErrInvalidContract, c, differential)
	}
	return Result{Contract: c, Declarer: declarer, Differential: differential}, nil
}

// ResultFromTricks builds a result from the number of tricks the declarer won.
func ResultFromTricks(c Contract, declarer Direction, tricksTaken int) (Result, error) {
	if tricksTaken < 0 || tricksTaken > 13 {
		return Result{}, fmt.Errorf("%w: %d tricks taken", ErrInvalidContract, tricksTaken)
	}
	return NewResult(c, declarer, tricksTaken-c.Tricks())
}

// Made reports whether the contract was fulfilled.
func (r Result) Made() bool {
	return !r.Passed && r.Differential >= 0
}

// TricksTaken is the declarer's trick count; zero for a passed board.
func (r Result) TricksTaken() int {
	if r.Passed {
		return 0
	}
	return r.Contract.Tricks() + r.Differential
}

// String renders "pass", "3NT N =", "4SX E +1" or "2H W -2".
func (r Result) String() string {
	if r.Passed {
		return "pass"
	}
	outcome := "="
	if r.Differential != 0 {
		outcome = fmt.Sprintf("%+d", r.Differential)
	}
	return fmt.Sprintf("%s %s %s", r.Contract, r.Declarer, outcome)
}
