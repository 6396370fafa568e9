package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"rotsolve/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "rotsolve.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSolves(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(0, 0).UTC()
	for i := 0; i < 3; i++ {
		rec := model.SolveRecord{
			SolvedAt: base.Add(time.Duration(i) * time.Minute),
			Preview:  "khoor zruog",
			Letters:  10,
			Shift:    3 + i,
			Score:    0.5 + float64(i),
		}
		if _, err := st.InsertSolve(ctx, rec); err != nil {
			t.Fatalf("insert solve: %v", err)
		}
	}

	recs, err := st.ListSolves(ctx, model.HistoryQuery{})
	if err != nil {
		t.Fatalf("list solves: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].Shift != 3 || recs[2].Shift != 5 {
		t.Fatalf("unexpected order: %+v", recs)
	}
	if !recs[1].SolvedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("timestamp mismatch: %v", recs[1].SolvedAt)
	}
}

func TestListSolvesLast(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(0, 0).UTC()
	for i := 0; i < 5; i++ {
		rec := model.SolveRecord{
			SolvedAt: base.Add(time.Duration(i) * time.Minute),
			Preview:  "x",
			Letters:  1,
			Shift:    i,
			Score:    1,
		}
		if _, err := st.InsertSolve(ctx, rec); err != nil {
			t.Fatalf("insert solve: %v", err)
		}
	}

	recs, err := st.ListSolves(ctx, model.HistoryQuery{Last: 2})
	if err != nil {
		t.Fatalf("list solves: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Shift != 3 || recs[1].Shift != 4 {
		t.Fatalf("expected the two most recent in order, got %+v", recs)
	}
}

func TestListSolvesOrdersSubsecondTimestamps(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(100, 0).UTC()
	whole := model.SolveRecord{SolvedAt: base, Preview: "first", Letters: 1, Shift: 1, Score: 1}
	fractional := model.SolveRecord{SolvedAt: base.Add(500 * time.Millisecond), Preview: "second", Letters: 1, Shift: 2, Score: 1}
	if _, err := st.InsertSolve(ctx, fractional); err != nil {
		t.Fatalf("insert solve: %v", err)
	}
	if _, err := st.InsertSolve(ctx, whole); err != nil {
		t.Fatalf("insert solve: %v", err)
	}

	recs, err := st.ListSolves(ctx, model.HistoryQuery{})
	if err != nil {
		t.Fatalf("list solves: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Preview != "first" || recs[1].Preview != "second" {
		t.Fatalf("whole-second timestamp ordered after its fractional successor: %+v", recs)
	}
}

func TestSolveCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	count, err := st.SolveCount(ctx)
	if err != nil {
		t.Fatalf("solve count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 solves, got %d", count)
	}

	for i := 0; i < 4; i++ {
		rec := model.SolveRecord{
			SolvedAt: time.Unix(int64(i), 0).UTC(),
			Preview:  "x",
			Letters:  1,
			Shift:    i,
			Score:    1,
		}
		if _, err := st.InsertSolve(ctx, rec); err != nil {
			t.Fatalf("insert solve: %v", err)
		}
	}

	count, err = st.SolveCount(ctx)
	if err != nil {
		t.Fatalf("solve count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 solves, got %d", count)
	}
}

func TestListSolvesEmpty(t *testing.T) {
	st := openTestStore(t)
	recs, err := st.ListSolves(context.Background(), model.HistoryQuery{})
	if err != nil {
		t.Fatalf("list solves: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}
