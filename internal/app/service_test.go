package app

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"bridge/internal/domain"
	"bridge/internal/notation"
)

func TestDealIsReproducible(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))

	first, evs, err := svc.Deal(5, 42)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	second, _, err := svc.Deal(5, 42)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	for _, d := range domain.Directions {
		if first.Hand(d).String() != second.Hand(d).String() {
			t.Fatalf("%s hand differs between identical deals", d)
		}
	}

	other, _, err := svc.Deal(6, 42)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	if first.Hand(domain.North).String() == other.Hand(domain.North).String() {
		t.Fatal("different boards produced the same north hand")
	}

	if len(evs) != 1 || evs[0].Kind != EventBoardDealt {
		t.Fatalf("events = %+v, want one board_dealt", evs)
	}
	payload := evs[0].Payload.(BoardDealtPayload)
	if payload.Dealer != domain.North || payload.Vulnerability != domain.VulNS {
		t.Fatalf("board 5 dealer/vul = %s/%s, want N/NS", payload.Dealer, payload.Vulnerability)
	}
}

func TestDealHandsPartitionDeck(t *testing.T) {
	svc := NewService(nil)
	deal, _, err := svc.Deal(1, svc.RandomSeed())
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	seen := make(map[domain.Card]bool)
	for _, d := range domain.Directions {
		h := deal.Hand(d)
		if len(h) != 13 {
			t.Fatalf("%s has %d cards, want 13", d, len(h))
		}
		for _, c := range h {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
}

func TestSeedOrRandom(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	if got := svc.SeedOrRandom(42, true); got != 42 {
		t.Fatalf("configured seed = %d, want 42", got)
	}

	first := NewService(rand.New(rand.NewSource(1))).SeedOrRandom(0, false)
	second := NewService(rand.New(rand.NewSource(2))).SeedOrRandom(0, false)
	if first == second {
		t.Fatalf("unseeded sessions drew the same seed %d", first)
	}

	a, _, err := svc.Deal(3, first)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	b, _, err := svc.Deal(3, second)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	if a.Hand(domain.North).String() == b.Hand(domain.North).String() {
		t.Fatal("unseeded sessions dealt the same board 3")
	}
}

func TestDealRejectsBoardZero(t *testing.T) {
	svc := NewService(nil)
	if _, _, err := svc.Deal(0, 1); !errors.Is(err, domain.ErrInvalidBoard) {
		t.Fatalf("err = %v, want ErrInvalidBoard", err)
	}
}

func TestScoreUsesBoardVulnerability(t *testing.T) {
	svc := NewService(nil)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := domain.NewResult(domain.Contract{Level: 4, Strain: domain.StrainSpades}, domain.South, 0)
	if err != nil {
		t.Fatalf("result error: %v", err)
	}

	tests := []struct {
		board domain.BoardNumber
		want  int
	}{
		{1, 420},
		{2, 620},
		{3, 420},
		{4, 620},
	}
	for _, tt := range tests {
		scored, evs := svc.Score(tt.board, result)
		if scored.Score != tt.want {
			t.Fatalf("board %d score = %d, want %d", tt.board, scored.Score, tt.want)
		}
		if scored.ID == "" {
			t.Fatal("scored board has no id")
		}
		if !scored.RecordedAt.Equal(fixed) {
			t.Fatalf("recorded at = %v, want %v", scored.RecordedAt, fixed)
		}
		if len(evs) != 1 || evs[0].Kind != EventBoardScored {
			t.Fatalf("events = %+v, want one board_scored", evs)
		}
	}
}

func TestPlayTrickCompletes(t *testing.T) {
	svc := NewService(nil)
	plays := []notation.Play{
		{Seat: domain.West, Rank: domain.Ten},
		{Seat: domain.North, Rank: domain.Two},
		{Seat: domain.East, Rank: domain.King},
		{Seat: domain.South, Rank: domain.Ace},
	}
	trick, evs, err := svc.PlayTrick(plays)
	if err != nil {
		t.Fatalf("play trick error: %v", err)
	}
	if !trick.Complete() {
		t.Fatal("trick should be complete")
	}
	if len(evs) != 5 {
		t.Fatalf("events = %d, want 5", len(evs))
	}
	last := evs[len(evs)-1]
	if last.Kind != EventTrickCompleted {
		t.Fatalf("last event = %s, want trick_completed", last.Kind)
	}
	if got := last.Payload.(TrickCompletedPayload).Winner; got != domain.South {
		t.Fatalf("winner = %s, want S", got)
	}
}

func TestPlayTrickStopsAtConflict(t *testing.T) {
	svc := NewService(nil)
	plays := []notation.Play{
		{Seat: domain.North, Rank: domain.Queen},
		{Seat: domain.North, Rank: domain.Three},
		{Seat: domain.East, Rank: domain.Four},
	}
	trick, evs, err := svc.PlayTrick(plays)
	if !errors.Is(err, domain.ErrSeatTaken) {
		t.Fatalf("err = %v, want ErrSeatTaken", err)
	}
	if r, ok := trick.PlayedBy(domain.North); !ok || r != domain.Queen {
		t.Fatalf("north = %s, want Q", r)
	}
	if trick.Count() != 1 {
		t.Fatalf("count = %d, want 1", trick.Count())
	}
	if len(evs) != 2 || evs[1].Kind != EventSeatConflict {
		t.Fatalf("events = %+v, want card_recorded then seat_conflict", evs)
	}
	conflict := evs[1].Payload.(SeatConflictPayload)
	if conflict.Held != domain.Queen || conflict.Attempted != domain.Three {
		t.Fatalf("conflict = %+v", conflict)
	}
}

func TestContinueTrickRequiresPlays(t *testing.T) {
	svc := NewService(nil)
	if _, _, err := svc.ContinueTrick(domain.NewTrick(), nil); !errors.Is(err, ErrNoPlays) {
		t.Fatalf("err = %v, want ErrNoPlays", err)
	}
}
