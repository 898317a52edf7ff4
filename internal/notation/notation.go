// Package notation reads and writes the text forms of contracts, outcomes and commands.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bridge/internal/domain"
)

var ErrMalformedCommand = errors.New("malformed command")

// ParseContract reads compact contract notation such as "3NT", "4HX" or "7cxx".
func ParseContract(s string) (domain.Contract, error) {
	if len(s) < 2 || s[0] < '1' || s[0] > '7' {
		return domain.Contract{}, fmt.Errorf("%w: contract %q", domain.ErrInvalidToken, s)
	}
	level := int(s[0] - '0')
	rest := strings.ToUpper(s[1:])

	strainLen := 1
	if strings.HasPrefix(rest, "NT") {
		strainLen = 2
	}
	strain, err := domain.ParseStrain(rest[:strainLen])
	if err != nil {
		return domain.Contract{}, fmt.Errorf("%w: contract %q", domain.ErrInvalidToken, s)
	}
	doubling, err := domain.ParseDoubling(rest[strainLen:])
	if err != nil {
		return domain.Contract{}, fmt.Errorf("%w: contract %q", domain.ErrInvalidToken, s)
	}
	return domain.Contract{Level: level, Strain: strain, Doubling: doubling}, nil
}

// FormatContract is the inverse of ParseContract.
func FormatContract(c domain.Contract) string {
	return c.String()
}

// Outcome is a parsed result token: either a differential against the contract or an
// absolute trick count that still needs the contract to resolve.
type Outcome struct {
	Differential int
	Tricks       int
	Absolute     bool
}

// ParseOutcome reads "=", "+N", "-N", a bare signed differential such as "0" or "2",
// or "tN" for N tricks taken.
func ParseOutcome(s string) (Outcome, error) {
	switch {
	case s == "=":
		return Outcome{}, nil
	case len(s) > 1 && (s[0] == 't' || s[0] == 'T'):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 || n > 13 {
			return Outcome{}, fmt.Errorf("%w: tricks %q", domain.ErrInvalidToken, s)
		}
		return Outcome{Tricks: n, Absolute: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: outcome %q", domain.ErrInvalidToken, s)
	}
	return Outcome{Differential: n}, nil
}

// Resolve turns the outcome into a validated result for the given contract and declarer.
func (o Outcome) Resolve(c domain.Contract, declarer domain.Direction) (domain.Result, error) {
	if o.Absolute {
		return domain.ResultFromTricks(c, declarer, o.Tricks)
	}
	return domain.NewResult(c, declarer, o.Differential)
}

// FormatResult renders a result in the form accepted by the score command.
func FormatResult(r domain.Result) string {
	return r.String()
}

// ParsePlay reads a "<direction>:<rank>" pair such as "N:A" or "w:10".
func ParsePlay(s string) (domain.Direction, domain.Rank, error) {
	seat, rank, ok := strings.Cut(s, ":")
	if !ok {
		return 0, domain.NoRank, fmt.Errorf("%w: play %q", domain.ErrInvalidToken, s)
	}
	d, err := domain.ParseDirection(seat)
	if err != nil {
		return 0, domain.NoRank, err
	}
	r, err := domain.ParseRank(rank)
	if err != nil {
		return 0, domain.NoRank, err
	}
	return d, r, nil
}
