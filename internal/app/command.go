package app

import (
	"fmt"
	"strings"

	"bridge/internal/domain"
	"bridge/internal/notation"
)

// CommandResult is the outcome of one executed command. Only the fields of Kind are set.
type CommandResult struct {
	Kind        notation.CommandKind
	Deal        domain.Deal
	Scored      domain.ScoredBoard
	Breakdown   domain.Breakdown
	Trick       domain.Trick
	Winner      domain.Direction
	Complete    bool
	Matchpoints []float64
	Percentages []float64
	Events      []Event
}

// Execute runs a parsed command. seed is used for deal commands.
func (s *Service) Execute(cmd notation.Command, seed int64) (CommandResult, error) {
	res := CommandResult{Kind: cmd.Kind}
	switch cmd.Kind {
	case notation.CommandDeal:
		deal, events, err := s.Deal(cmd.Board, seed)
		if err != nil {
			return res, err
		}
		res.Deal, res.Events = deal, events

	case notation.CommandScore:
		res.Scored, res.Events = s.Score(cmd.Board, cmd.Result)
		res.Breakdown = cmd.Result.Breakdown(res.Scored.Vulnerability)

	case notation.CommandTrick:
		trick, events, err := s.PlayTrick(cmd.Plays)
		res.Trick, res.Events = trick, events
		if err != nil {
			return res, err
		}
		res.Complete = trick.Complete()
		res.Winner = trick.Winner()

	case notation.CommandMatchpoints:
		res.Matchpoints = domain.Matchpoints(cmd.Scores)
		res.Percentages = domain.Percentages(res.Matchpoints)

	default:
		return res, fmt.Errorf("%w: unknown command kind %q", notation.ErrMalformedCommand, cmd.Kind)
	}
	return res, nil
}

// String renders the result as the text reply of the command tool.
func (r CommandResult) String() string {
	switch r.Kind {
	case notation.CommandDeal:
		var b strings.Builder
		fmt.Fprintf(&b, "board %d dealer %s vul %s", r.Deal.Board, r.Deal.Board.Dealer(), r.Deal.Board.Vulnerability())
		for _, d := range domain.Directions {
			fmt.Fprintf(&b, "\n  %s %s", d, r.Deal.Hand(d))
		}
		return b.String()
	case notation.CommandScore:
		return fmt.Sprintf("board %d vul %s %s: %d", r.Scored.Board, r.Scored.Vulnerability, r.Scored.Result(), r.Scored.Score)
	case notation.CommandTrick:
		if !r.Complete {
			return fmt.Sprintf("%s (incomplete, leading %s)", r.Trick, r.Winner)
		}
		return fmt.Sprintf("%s winner %s", r.Trick, r.Winner)
	case notation.CommandMatchpoints:
		parts := make([]string, len(r.Matchpoints))
		for i, mp := range r.Matchpoints {
			parts[i] = fmt.Sprintf("%g (%.2f%%)", mp, r.Percentages[i])
		}
		return strings.Join(parts, " ")
	}
	return ""
}
