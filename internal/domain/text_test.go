package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestScoredBoardJSON(t *testing.T) {
	in := ScoredBoard{
		ID:            "b1",
		Board:         4,
		Vulnerability: VulBoth,
		Contract:      Contract{Level: 3, Strain: NoTrump, Doubling: Doubled},
		Declarer:      East,
		Differential:  -1,
		Score:         200,
		RecordedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"b1","board":4,"vulnerability":"Both","contract":{"level":3,"strain":"NT","doubling":"X"},"declarer":"E","differential":-1,"score":200,"recorded_at":"2024-03-01T12:00:00Z"}`
	if string(data) != want {
		t.Fatalf("json = %s\nwant   %s", data, want)
	}

	var out ScoredBoard
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.RecordedAt.Equal(in.RecordedAt) {
		t.Fatalf("recorded_at = %v, want %v", out.RecordedAt, in.RecordedAt)
	}
	out.RecordedAt, in.RecordedAt = time.Time{}, time.Time{}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
	if got := out.Result().Score(out.Vulnerability); got != 200 {
		t.Fatalf("rescored = %d, want 200", got)
	}
}

func TestUnmarshalTextRejectsUnknown(t *testing.T) {
	var d Direction
	if err := json.Unmarshal([]byte(`"NE"`), &d); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
	var v Vulnerability
	if err := json.Unmarshal([]byte(`"some"`), &v); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}
