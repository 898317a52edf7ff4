package domain

import "time"

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (v Vulnerability) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Vulnerability) UnmarshalText(b []byte) error {
	p, err := ParseVulnerability(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

func (s Strain) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strain) UnmarshalText(b []byte) error {
	p, err := ParseStrain(string(b))
	if err != nil {
		return err
	}
	*s = p
	return nil
}

func (d Doubling) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Doubling) UnmarshalText(b []byte) error {
	p, err := ParseDoubling(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// ScoredBoard is one table's scored result on a board.
type ScoredBoard struct {
	ID            string        `json:"id"`
	Board         BoardNumber   `json:"board"`
	Vulnerability Vulnerability `json:"vulnerability"`
	Passed        bool          `json:"passed,omitempty"`
	Contract      Contract      `json:"contract"`
	Declarer      Direction     `json:"declarer"`
	Differential  int           `json:"differential"`
	Score         int           `json:"score"`
	RecordedAt    time.Time     `json:"recorded_at"`
}

// Result rebuilds the domain result the score was computed from.
func (s ScoredBoard) Result() Result {
	if s.Passed {
		return PassedOut()
	}
	return Result{Contract: s.Contract, Declarer: s.Declarer, Differential: s.Differential}
}
