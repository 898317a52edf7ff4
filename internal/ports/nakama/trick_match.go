package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bridge/internal/app"
	"bridge/internal/domain"
	"bridge/internal/notation"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	errNotSeated = errors.New("user is not seated at this table")
	errNoRank    = errors.New("message has no rank")
)

// TableState holds the authoritative runtime state for one trick table.
type TableState struct {
	Seats     [4]string                   // user id per direction, N E S W; empty means open
	Presences map[string]runtime.Presence // user id -> presence for targeted messages
	Trick     domain.Trick                // trick in progress
	Completed []CompletedTrick
	App       *app.Service
	Tick      int64
}

// CompletedTrick is a finished trick and the seat that won it.
type CompletedTrick struct {
	Trick  domain.Trick
	Winner domain.Direction
}

func newTableState() *TableState {
	return &TableState{
		Presences: make(map[string]runtime.Presence),
		Trick:     domain.NewTrick(),
		App:       app.NewService(nil),
	}
}

func (ts *TableState) openSeats() int {
	count := 0
	for _, seat := range ts.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// seatOf returns the direction a user sits in.
func (ts *TableState) seatOf(userID string) (domain.Direction, bool) {
	for i, seat := range ts.Seats {
		if seat != "" && seat == userID {
			return domain.DirectionFromOrdinal(uint8(i)), true
		}
	}
	return 0, false
}

// tricksWon counts completed tricks per partnership.
func (ts *TableState) tricksWon() map[domain.Side]int {
	won := map[domain.Side]int{domain.NS: 0, domain.WE: 0}
	for _, ct := range ts.Completed {
		won[ct.Winner.Side()]++
	}
	return won
}

// lowestAvailableSeat returns the first open seat in N, E, S, W order, or -1.
// vacateSeat frees the user's seat and takes back any card they put on the current trick.
func vacateSeat(ts *TableState, userID string) (domain.Direction, bool) {
	seat, ok := ts.seatOf(userID)
	if !ok {
		return 0, false
	}
	ts.Seats[seat] = ""
	ts.Trick = ts.Trick.Without(seat)
	return seat, true
}

func lowestAvailableSeat(seats *[4]string) int {
	for i, s := range seats {
		if s == "" {
			return i
		}
	}
	return -1
}

func buildLabel(ts *TableState) string {
	label, err := encodeStruct(map[string]interface{}{
		"open":   ts.openSeats(),
		"tricks": len(ts.Completed),
	})
	if err != nil {
		return "{}"
	}
	return string(label)
}

func snapshotToMap(ts *TableState) map[string]interface{} {
	seats := make(map[string]interface{}, len(domain.Directions))
	for _, d := range domain.Directions {
		seats[d.String()] = ts.Seats[d]
	}
	history := make([]interface{}, 0, len(ts.Completed))
	for _, ct := range ts.Completed {
		history = append(history, map[string]interface{}{
			"trick":  ct.Trick.String(),
			"winner": ct.Winner.String(),
		})
	}
	won := ts.tricksWon()
	return map[string]interface{}{
		"seats":     seats,
		"trick":     trickToMap(ts.Trick),
		"completed": history,
		"tricks_ns": won[domain.NS],
		"tricks_we": won[domain.WE],
		"tick":      ts.Tick,
	}
}

// playCard records the sender's rank on the current trick. A completed trick is archived
// and a fresh one started.
func playCard(ts *TableState, userID string, data []byte) ([]app.Event, error) {
	seat, ok := ts.seatOf(userID)
	if !ok {
		return nil, errNotSeated
	}
	msg, err := decodeStruct(data)
	if err != nil {
		return nil, fmt.Errorf("invalid play message: %w", err)
	}
	text := stringField(msg, "rank")
	if text == "" {
		return nil, errNoRank
	}
	rank, err := domain.ParseRank(text)
	if err != nil {
		return nil, err
	}

	trick, events, err := ts.App.ContinueTrick(ts.Trick, []notation.Play{{Seat: seat, Rank: rank}})
	ts.Trick = trick
	if err != nil {
		return events, err
	}
	if trick.Complete() {
		ts.Completed = append(ts.Completed, CompletedTrick{Trick: trick, Winner: trick.Winner()})
		ts.Trick = domain.NewTrick()
	}
	return events, nil
}

// NewTrickTable is the factory function registered with Nakama.
func NewTrickTable(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &trickTable{}, nil
}

type trickTable struct{}

func (tt *trickTable) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing trick table.")
	state := newTableState()
	tickRate := 5
	return state, tickRate, buildLabel(state)
}

func (tt *trickTable) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	ts, ok := state.(*TableState)
	if !ok {
		return state, false, "state not found"
	}
	if _, seated := ts.seatOf(presence.GetUserId()); seated {
		return state, true, ""
	}
	if ts.openSeats() == 0 {
		return state, false, "table_full"
	}
	return state, true, ""
}

func (tt *trickTable) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ts, ok := state.(*TableState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		uid := p.GetUserId()
		ts.Presences[uid] = p
		if seat, seated := ts.seatOf(uid); seated {
			logger.Debug("MatchJoin: User %s rejoined seat %s.", uid, seat)
			continue
		}
		i := lowestAvailableSeat(&ts.Seats)
		if i < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", uid)
			continue
		}
		ts.Seats[i] = uid
		logger.Info("MatchJoin: User %s seated %s.", uid, domain.DirectionFromOrdinal(uint8(i)))
	}

	tt.updateLabel(ts, dispatcher, logger)
	tt.broadcastTable(ts, dispatcher, logger)
	return ts
}

func (tt *trickTable) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ts, ok := state.(*TableState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		uid := p.GetUserId()
		delete(ts.Presences, uid)
		if seat, seated := vacateSeat(ts, uid); seated {
			logger.Debug("MatchLeave: User %s left, seat %s freed.", uid, seat)
		}
	}

	if ts.openSeats() == len(ts.Seats) {
		logger.Info("MatchLeave: Terminating empty table.")
		return nil
	}

	tt.updateLabel(ts, dispatcher, logger)
	tt.broadcastTable(ts, dispatcher, logger)
	return ts
}

func (tt *trickTable) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	ts, ok := state.(*TableState)
	if !ok {
		return state
	}
	ts.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayCard:
			tt.handlePlayCard(ts, dispatcher, logger, msg.GetUserId(), msg.GetData())
		case OpResetTrick:
			tt.handleResetTrick(ts, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}
	return ts
}

func (tt *trickTable) handlePlayCard(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, data []byte) {
	events, err := playCard(ts, userID, data)
	for _, ev := range events {
		tt.dispatchEvent(ts, dispatcher, logger, userID, ev)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSeatTaken) {
			return
		}
		logger.Warn("handlePlayCard: User %s failed to play: %v", userID, err)
		tt.sendError(ts, dispatcher, logger, userID, err.Error())
		return
	}
	for _, ev := range events {
		if ev.Kind == app.EventTrickCompleted {
			tt.updateLabel(ts, dispatcher, logger)
		}
	}
}

func (tt *trickTable) handleResetTrick(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if _, ok := ts.seatOf(userID); !ok {
		tt.sendError(ts, dispatcher, logger, userID, errNotSeated.Error())
		return
	}
	logger.Info("handleResetTrick: User %s cleared trick %s.", userID, ts.Trick)
	ts.Trick = domain.NewTrick()
	tt.broadcastTable(ts, dispatcher, logger)
}

// dispatchEvent sends seat conflicts to the sender only and broadcasts everything else.
func (tt *trickTable) dispatchEvent(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventCardRecorded:
		opCode = OpCardRecorded
	case app.EventTrickCompleted:
		opCode = OpTrickCompleted
	case app.EventSeatConflict:
		opCode = OpSeatConflict
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	fields, ok := eventToMap(ev)
	if !ok {
		logger.Warn("Event %v has no payload mapping", ev.Kind)
		return
	}
	bytes, err := encodeStruct(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	if ev.Kind == app.EventSeatConflict {
		presence, ok := ts.Presences[senderID]
		if !ok {
			logger.Warn("Cannot send seat conflict to %s: Presence not found", senderID)
			return
		}
		dispatcher.BroadcastMessage(opCode, bytes, []runtime.Presence{presence}, nil, true)
		return
	}
	dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true)
}

func (tt *trickTable) broadcastTable(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := encodeStruct(snapshotToMap(ts))
	if err != nil {
		logger.Error("Failed to marshal table state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpTableState, bytes, nil, nil, true)
}

func (tt *trickTable) sendError(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, message string) {
	bytes, err := encodeStruct(map[string]interface{}{"message": message})
	if err != nil {
		logger.Error("Failed to marshal table error: %v", err)
		return
	}
	presence, ok := ts.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpTableError, bytes, []runtime.Presence{presence}, nil, true)
}

func (tt *trickTable) updateLabel(ts *TableState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(buildLabel(ts)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (tt *trickTable) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Trick table terminated with %d seconds grace", graceSeconds)
	return state
}

func (tt *trickTable) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
