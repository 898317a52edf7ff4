package domain

import (
	"fmt"
	"iter"
	"strings"
)

// Direction is one of the four seats at the table, in clockwise order.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every seat in ordinal order.
var Directions = [4]Direction{North, East, South, West}

// DirectionFromOrdinal maps 0..3 to a Direction. Any other value is a programming error.
func DirectionFromOrdinal(i uint8) Direction {
	if i > uint8(West) {
		panic(fmt.Sprintf("direction ordinal out of range: %d", i))
	}
	return Direction(i)
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection reads the short form (any case) or the full seat name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return 0, invalidToken("direction", s)
}

// Side returns the axis the seat belongs to.
func (d Direction) Side() Side {
	return Side(uint8(d) & 1)
}

// Partner returns the seat across the table.
func (d Direction) Partner() Direction {
	return (d + 2) % 4
}

// Next returns the seat to the left, clockwise.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

// Opponent reports whether d and other sit on different axes.
func (d Direction) Opponent(other Direction) bool {
	return uint8(d)|1 != uint8(other)|1
}

// Successors returns an iterator over the other three seats, clockwise from d.
func (d Direction) Successors() *Successors {
	return &Successors{current: d, last: (d + 3) % 4}
}

// Others yields the same seats as Successors as a range-over-func sequence.
func (d Direction) Others() iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		it := d.Successors()
		for {
			next, ok := it.Next()
			if !ok || !yield(next) {
				return
			}
		}
	}
}

// Successors walks the three seats after a starting seat. It is exhausted after three
// calls to Next and cannot be rewound.
type Successors struct {
	current Direction
	last    Direction
}

func (it *Successors) Next() (Direction, bool) {
	if it.current == it.last {
		return 0, false
	}
	it.current = it.current.Next()
	return it.current, true
}

// Side is a partnership: North-South or West-East.
type Side uint8

const (
	NS Side = iota
	WE
)

// Sides lists both partnerships in ordinal order.
var Sides = [2]Side{NS, WE}

// SideFromOrdinal maps 0..1 to a Side. Any other value is a programming error.
func SideFromOrdinal(i uint8) Side {
	if i > uint8(WE) {
		panic(fmt.Sprintf("side ordinal out of range: %d", i))
	}
	return Side(i)
}

func (s Side) String() string {
	switch s {
	case NS:
		return "NS"
	case WE:
		return "WE"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// ParseSide accepts NS and WE in either case; EW is read as WE.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "ns":
		return NS, nil
	case "we", "ew":
		return WE, nil
	}
	return 0, invalidToken("side", s)
}

// Other returns the opposing partnership.
func (s Side) Other() Side {
	return s ^ 1
}

// Sign is +1 for North-South and -1 for West-East; scores are always kept from
// North-South's point of view.
func (s Side) Sign() int {
	if s == NS {
		return 1
	}
	return -1
}

// Vulnerability is the per-board flag naming which partnerships are vulnerable.
type Vulnerability uint8

const (
	VulNone Vulnerability = iota
	VulNS
	VulWE
	VulBoth
)

// Vulnerabilities lists every state in ordinal order.
var Vulnerabilities = [4]Vulnerability{VulNone, VulNS, VulWE, VulBoth}

// VulnerabilityFromOrdinal maps 0..3 to a Vulnerability. Any other value is a programming error.
func VulnerabilityFromOrdinal(i uint8) Vulnerability {
	if i > uint8(VulBoth) {
		panic(fmt.Sprintf("vulnerability ordinal out of range: %d", i))
	}
	return Vulnerability(i)
}

func (v Vulnerability) String() string {
	switch v {
	case VulNone:
		return "None"
	case VulNS:
		return "NS"
	case VulWE:
		return "WE"
	case VulBoth:
		return "Both"
	}
	return fmt.Sprintf("Vulnerability(%d)", uint8(v))
}

func ParseVulnerability(s string) (Vulnerability, error) {
	switch strings.ToLower(s) {
	case "none", "-":
		return VulNone, nil
	case "ns":
		return VulNS, nil
	case "we", "ew":
		return VulWE, nil
	case "both", "all":
		return VulBoth, nil
	}
	return 0, invalidToken("vulnerability", s)
}

// Vulnerable reports whether the given partnership is vulnerable on this board.
func (v Vulnerability) Vulnerable(s Side) bool {
	switch v {
	case VulBoth:
		return true
	case VulNS:
		return s == NS
	case VulWE:
		return s == WE
	}
	return false
}
