package notation

import (
	"fmt"
	"strconv"
	"strings"

	"bridge/internal/domain"
)

// CommandKind names a text command.
type CommandKind string

const (
	CommandDeal        CommandKind = "deal"
	CommandScore       CommandKind = "score"
	CommandTrick       CommandKind = "trick"
	CommandMatchpoints CommandKind = "matchpoints"
)

// Play is one (seat, rank) event for a trick.
type Play struct {
	Seat domain.Direction
	Rank domain.Rank
}

// Command is a parsed command line. Only the fields of its Kind are set.
type Command struct {
	Kind   CommandKind
	Board  domain.BoardNumber
	Result domain.Result
	Plays  []Play
	Scores []int
}

// ParseCommand reads one command line:
//
//	deal <board>
//	score <board> pass
//	score <board> <contract> <declarer> <outcome>
//	score <board> <level> <strain> [x|xx] <declarer> <differential>
//	trick <dir>:<rank> ...
//	matchpoints <score> ...
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrMalformedCommand)
	}

	switch CommandKind(strings.ToLower(fields[0])) {
	case CommandDeal:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: deal takes one board number", ErrMalformedCommand)
		}
		board, err := parseBoard(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDeal, Board: board}, nil

	case CommandScore:
		return parseScore(fields[1:])

	case CommandTrick:
		if len(fields) < 2 || len(fields) > 5 {
			return Command{}, fmt.Errorf("%w: trick takes one to four plays", ErrMalformedCommand)
		}
		cmd := Command{Kind: CommandTrick}
		for _, f := range fields[1:] {
			seat, rank, err := ParsePlay(f)
			if err != nil {
				return Command{}, err
			}
			cmd.Plays = append(cmd.Plays, Play{Seat: seat, Rank: rank})
		}
		return cmd, nil

	case CommandMatchpoints:
		if len(fields) < 2 {
			return Command{}, fmt.Errorf("%w: matchpoints needs at least one score", ErrMalformedCommand)
		}
		cmd := Command{Kind: CommandMatchpoints}
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return Command{}, fmt.Errorf("%w: score %q", domain.ErrInvalidToken, f)
			}
			cmd.Scores = append(cmd.Scores, n)
		}
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%w: command %q", domain.ErrInvalidToken, fields[0])
}

func parseBoard(s string) (domain.BoardNumber, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: board %q", domain.ErrInvalidToken, s)
	}
	return domain.NewBoardNumber(n)
}

func parseScore(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, fmt.Errorf("%w: score needs a board and a result", ErrMalformedCommand)
	}
	board, err := parseBoard(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: CommandScore, Board: board}
	args = args[1:]

	if len(args) == 1 && strings.EqualFold(args[0], "pass") {
		cmd.Result = domain.PassedOut()
		return cmd, nil
	}

	var (
		contract domain.Contract
		rest     []string
	)
	switch len(args) {
	case 3:
		contract, err = ParseContract(args[0])
		rest = args[1:]
	case 4, 5:
		contract, err = parseSpacedContract(args[:len(args)-2])
		rest = args[len(args)-2:]
	default:
		return Command{}, fmt.Errorf("%w: score takes a contract, declarer and outcome", ErrMalformedCommand)
	}
	if err != nil {
		return Command{}, err
	}

	declarer, err := domain.ParseDirection(rest[0])
	if err != nil {
		return Command{}, err
	}
	outcome, err := ParseOutcome(rest[1])
	if err != nil {
		return Command{}, err
	}
	cmd.Result, err = outcome.Resolve(contract, declarer)
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// parseSpacedContract reads "<level> <strain> [x|xx]".
func parseSpacedContract(args []string) (domain.Contract, error) {
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 || level > 7 {
		return domain.Contract{}, fmt.Errorf("%w: level %q", domain.ErrInvalidToken, args[0])
	}
	strain, err := domain.ParseStrain(args[1])
	if err != nil {
		return domain.Contract{}, err
	}
	doubling := domain.Undoubled
	if len(args) == 3 {
		if doubling, err = domain.ParseDoubling(args[2]); err != nil {
			return domain.Contract{}, err
		}
	}
	return domain.Contract{Level: level, Strain: strain, Doubling: doubling}, nil
}

// FormatCommand renders a command back into the line ParseCommand reads.
func FormatCommand(cmd Command) string {
	switch cmd.Kind {
	case CommandDeal:
		return fmt.Sprintf("deal %d", cmd.Board)
	case CommandScore:
		return fmt.Sprintf("score %d %s", cmd.Board, FormatResult(cmd.Result))
	case CommandTrick:
		parts := []string{string(CommandTrick)}
		for _, p := range cmd.Plays {
			parts = append(parts, p.Seat.String()+":"+p.Rank.String())
		}
		return strings.Join(parts, " ")
	case CommandMatchpoints:
		parts := []string{string(CommandMatchpoints)}
		for _, s := range cmd.Scores {
			parts = append(parts, strconv.Itoa(s))
		}
		return strings.Join(parts, " ")
	}
	return ""
}
