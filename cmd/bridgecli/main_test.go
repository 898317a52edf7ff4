package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"bridge/internal/app"
	"bridge/internal/domain"
)

type memoryStore struct {
	results map[domain.BoardNumber][]domain.ScoredBoard
}

func (m *memoryStore) SaveResult(_ context.Context, result domain.ScoredBoard) error {
	m.results[result.Board] = append(m.results[result.Board], result)
	return nil
}

func (m *memoryStore) BoardResults(_ context.Context, board domain.BoardNumber) ([]domain.ScoredBoard, error) {
	return append([]domain.ScoredBoard{}, m.results[board]...), nil
}

func newTestRunner(out io.Writer, ledger *app.Ledger) *runner {
	return &runner{
		svc:    app.NewService(nil),
		ledger: ledger,
		seed:   1,
		out:    out,
		log:    newLogger(io.Discard, "debug"),
	}
}

func TestRunnerScoresSpacedCommands(t *testing.T) {
	input := strings.Join([]string{
		"# board level strain [x] declarer differential",
		"score 1 2 S x N 0",
		"",
		"score 4 3 NT E -1",
		"score 1 pass",
	}, "\n")

	var out bytes.Buffer
	if err := newTestRunner(&out, nil).run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run error: %v", err)
	}

	want := []string{
		"board 1 vul None 2SX N =: 470",
		"board 4 vul Both 3NT E -1: 100",
		"board 1 vul None pass: 0",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("output = %q", out.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunnerReportsBadLinesAndContinues(t *testing.T) {
	input := "score 1 9NT N =\nbid 1C\nmatchpoints 100 50\n"

	var out bytes.Buffer
	if err := newTestRunner(&out, nil).run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "error:") || !strings.HasPrefix(lines[1], "error:") {
		t.Fatalf("bad lines should be reported: %q", out.String())
	}
	if lines[2] != "1 (100.00%) 0 (0.00%)" {
		t.Fatalf("matchpoints line = %q", lines[2])
	}
}

func TestRunnerRecordsToLedger(t *testing.T) {
	store := &memoryStore{results: make(map[domain.BoardNumber][]domain.ScoredBoard)}
	input := "score 2 4H S =\nscore 2 4H S +1\n"

	var out bytes.Buffer
	if err := newTestRunner(&out, app.NewLedger(store)).run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if len(store.results[2]) != 2 {
		t.Fatalf("stored = %d, want 2", len(store.results[2]))
	}
	if !strings.Contains(out.String(), "board 2: 2 results, this table 100.00% NS") {
		t.Fatalf("output = %q", out.String())
	}
}
