package nakama

import (
	"fmt"

	"bridge/internal/app"
	"bridge/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var jsonOptions = protojson.MarshalOptions{EmitUnpopulated: true}

// encodeStruct converts a plain map to a structpb.Struct and renders it as JSON.
func encodeStruct(fields map[string]interface{}) ([]byte, error) {
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return jsonOptions.Marshal(st)
}

// decodeStruct parses a client JSON message.
func decodeStruct(data []byte) (*structpb.Struct, error) {
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, err
	}
	return st, nil
}

func stringField(st *structpb.Struct, name string) string {
	v, ok := st.GetFields()[name]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

func dealToMap(deal domain.Deal) map[string]interface{} {
	hands := make(map[string]interface{}, len(domain.Directions))
	for _, d := range domain.Directions {
		cards := make([]interface{}, 0, len(deal.Hand(d)))
		for _, c := range deal.Hand(d) {
			cards = append(cards, c.String())
		}
		hands[d.String()] = map[string]interface{}{
			"cards": cards,
			"hcp":   deal.Hand(d).HighCardPoints(),
			"text":  deal.Hand(d).String(),
		}
	}
	return map[string]interface{}{
		"board":         int64(deal.Board),
		"dealer":        deal.Board.Dealer().String(),
		"vulnerability": deal.Board.Vulnerability().String(),
		"hands":         hands,
	}
}

func trickToMap(trick domain.Trick) map[string]interface{} {
	played := make(map[string]interface{}, len(domain.Directions))
	for _, d := range domain.Directions {
		if r, ok := trick.PlayedBy(d); ok {
			played[d.String()] = r.String()
		}
	}
	out := map[string]interface{}{
		"played":   played,
		"count":    trick.Count(),
		"complete": trick.Complete(),
		"text":     trick.String(),
	}
	if trick.Count() > 0 {
		out["winning"] = trick.Winner().String()
	}
	return out
}

// eventToMap renders a match event. The op code is chosen by the caller.
func eventToMap(ev app.Event) (map[string]interface{}, bool) {
	switch p := ev.Payload.(type) {
	case app.CardRecordedPayload:
		return map[string]interface{}{
			"seat":  p.Seat.String(),
			"rank":  p.Rank.String(),
			"trick": trickToMap(p.Trick),
		}, true
	case app.TrickCompletedPayload:
		return map[string]interface{}{
			"winner": p.Winner.String(),
			"trick":  trickToMap(p.Trick),
		}, true
	case app.SeatConflictPayload:
		return map[string]interface{}{
			"seat":      p.Seat.String(),
			"attempted": p.Attempted.String(),
			"held":      p.Held.String(),
		}, true
	}
	return nil, false
}
