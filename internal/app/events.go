package app

import "bridge/internal/domain"

// EventKind identifies emitted events for dispatch by a transport adapter.
type EventKind string

const (
	EventBoardDealt     EventKind = "board_dealt"
	EventBoardScored    EventKind = "board_scored"
	EventCardRecorded   EventKind = "card_recorded"
	EventSeatConflict   EventKind = "seat_conflict"
	EventTrickCompleted EventKind = "trick_completed"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type BoardDealtPayload struct {
	Board         domain.BoardNumber
	Dealer        domain.Direction
	Vulnerability domain.Vulnerability
}

type BoardScoredPayload struct {
	Scored domain.ScoredBoard
}

type CardRecordedPayload struct {
	Seat  domain.Direction
	Rank  domain.Rank
	Trick domain.Trick
}

type SeatConflictPayload struct {
	Seat      domain.Direction
	Attempted domain.Rank
	Held      domain.Rank
}

type TrickCompletedPayload struct {
	Trick  domain.Trick
	Winner domain.Direction
}
