package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bridge/internal/domain"
	"bridge/internal/notation"

	"github.com/google/uuid"
)

// Service contains the bridge use-cases operating on domain values.
type Service struct {
	rng *rand.Rand
	now func() time.Time
}

// NewService constructs a Service with provided rng or a time-seeded default.
// The rng only supplies seeds for unnumbered deals; numbered deals are reproducible.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, now: time.Now}
}

var ErrNoPlays = errors.New("no plays to record")

// Deal shuffles a deck for the board. The same board and seed always produce the same deal.
func (s *Service) Deal(board domain.BoardNumber, seed int64) (domain.Deal, []Event, error) {
	if board == 0 {
		return domain.Deal{}, nil, fmt.Errorf("%w: %d", domain.ErrInvalidBoard, board)
	}
	deck := domain.NewDeck()
	rng := rand.New(rand.NewSource(seed*1_000_003 + int64(board)))
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	deal, err := domain.DealFromDeck(board, deck)
	if err != nil {
		return domain.Deal{}, nil, err
	}
	return deal, []Event{
		{
			Kind: EventBoardDealt,
			Payload: BoardDealtPayload{
				Board:         board,
				Dealer:        board.Dealer(),
				Vulnerability: board.Vulnerability(),
			},
		},
	}, nil
}

// RandomSeed draws a seed for a fresh deal set.
func (s *Service) RandomSeed() int64 {
	return s.rng.Int63()
}

// SeedOrRandom returns seed when it was set, otherwise a fresh RandomSeed.
func (s *Service) SeedOrRandom(seed int64, set bool) int64 {
	if set {
		return seed
	}
	return s.RandomSeed()
}

// Score computes the board's score using the vulnerability fixed by its number.
// The result must already be validated (domain.NewResult / notation parsing).
func (s *Service) Score(board domain.BoardNumber, result domain.Result) (domain.ScoredBoard, []Event) {
	vul := board.Vulnerability()
	scored := domain.ScoredBoard{
		ID:            uuid.NewString(),
		Board:         board,
		Vulnerability: vul,
		Passed:        result.Passed,
		Contract:      result.Contract,
		Declarer:      result.Declarer,
		Differential:  result.Differential,
		Score:         result.Score(vul),
		RecordedAt:    s.now().UTC(),
	}
	return scored, []Event{{Kind: EventBoardScored, Payload: BoardScoredPayload{Scored: scored}}}
}

// PlayTrick applies plays to a fresh trick one at a time and stops at the first seat
// conflict, returning the trick as it stood before the conflicting play.
func (s *Service) PlayTrick(plays []notation.Play) (domain.Trick, []Event, error) {
	return s.ContinueTrick(domain.NewTrick(), plays)
}

// ContinueTrick applies plays to an existing trick. A completed trick emits its winner.
func (s *Service) ContinueTrick(trick domain.Trick, plays []notation.Play) (domain.Trick, []Event, error) {
	if len(plays) == 0 {
		return trick, nil, ErrNoPlays
	}

	events := make([]Event, 0, len(plays)+1)
	for _, p := range plays {
		next, err := trick.WithPlayed(p.Seat, p.Rank)
		if err != nil {
			var conflict *domain.SeatConflictError
			if errors.As(err, &conflict) {
				events = append(events, Event{
					Kind:    EventSeatConflict,
					Payload: SeatConflictPayload{Seat: p.Seat, Attempted: p.Rank, Held: conflict.Held},
				})
			}
			return trick, events, err
		}
		trick = next
		events = append(events, Event{
			Kind:    EventCardRecorded,
			Payload: CardRecordedPayload{Seat: p.Seat, Rank: p.Rank, Trick: trick},
		})
	}

	if trick.Complete() {
		events = append(events, Event{
			Kind:    EventTrickCompleted,
			Payload: TrickCompletedPayload{Trick: trick, Winner: trick.Winner()},
		})
	}
	return trick, events, nil
}
