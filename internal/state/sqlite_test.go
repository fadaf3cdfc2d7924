package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vocadojo/internal/srs"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "vocadojo.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestProgressRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	missing, err := store.GetProgress(ctx, "spanish-core", "dog")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing progress, got %+v", missing)
	}

	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	p := srs.NewProgress("spanish-core", "dog")
	p.Interval = 6
	p.Repetitions = 2
	p.LastReview = now
	p.NextReview = now.AddDate(0, 0, 6)
	p.TotalReviews = 2
	p.CorrectCount = 2
	p.Streak = 2
	if err := store.UpsertProgress(ctx, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetProgress(ctx, "spanish-core", "dog")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected progress row")
	}
	if got.Interval != 6 || got.Repetitions != 2 || got.Ease != srs.DefaultEase {
		t.Fatalf("unexpected progress: %+v", got)
	}
	if !got.NextReview.Equal(p.NextReview) || !got.LastReview.Equal(now) {
		t.Fatalf("timestamps off: %+v", got)
	}

	// Second upsert overwrites in place.
	p.Interval = 14
	p.Mastered = false
	if err := store.UpsertProgress(ctx, p); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	got, err = store.GetProgress(ctx, "spanish-core", "dog")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Interval != 14 {
		t.Fatalf("expected interval 14, got %d", got.Interval)
	}
}

func TestListDueOrderingAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	rows := []srs.Progress{
		{DeckID: "d", EntryID: "future", Ease: 2.5, TotalReviews: 1, NextReview: now.AddDate(0, 0, 5)},
		{DeckID: "d", EntryID: "new", Ease: 2.5},
		{DeckID: "d", EntryID: "hard", Ease: 1.4, TotalReviews: 3, NextReview: now.AddDate(0, 0, -1)},
		{DeckID: "d", EntryID: "easy", Ease: 2.8, TotalReviews: 5, NextReview: now.AddDate(0, 0, -3)},
		{DeckID: "other", EntryID: "stray", Ease: 2.5},
	}
	for _, p := range rows {
		if err := store.UpsertProgress(ctx, p); err != nil {
			t.Fatalf("upsert %s: %v", p.EntryID, err)
		}
	}

	due, err := store.ListDue(ctx, "d", now, 10)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	want := []string{"new", "hard", "easy"}
	if len(due) != len(want) {
		t.Fatalf("expected %d due rows, got %d", len(want), len(due))
	}
	for i, id := range want {
		if due[i].EntryID != id {
			t.Fatalf("position %d: got %s, want %s", i, due[i].EntryID, id)
		}
	}

	limited, err := store.ListDue(ctx, "d", now, 1)
	if err != nil {
		t.Fatalf("list due limited: %v", err)
	}
	if len(limited) != 1 || limited[0].EntryID != "new" {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	a := srs.Progress{DeckID: "d", EntryID: "a", Ease: 2.5, TotalReviews: 4, CorrectCount: 3, IncorrectCount: 1, Interval: 30, Mastered: true, NextReview: now.AddDate(0, 0, 30)}
	b := srs.Progress{DeckID: "d", EntryID: "b", Ease: 2.5, TotalReviews: 2, CorrectCount: 1, IncorrectCount: 1, NextReview: now.AddDate(0, 0, -1)}
	for _, p := range []srs.Progress{a, b} {
		if err := store.UpsertProgress(ctx, p); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if err := store.AppendReviewLog(ctx, ReviewLogEntry{
		SessionID: "s1", DeckID: "d", EntryID: "a", Tier: "exact", Quality: 5,
		Similarity: 100, ResponseMS: 1200, ReviewedAt: now,
	}); err != nil {
		t.Fatalf("append log: %v", err)
	}

	sum, err := store.GetSummary(ctx, now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TrackedEntries != 2 || sum.TotalReviews != 6 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.CorrectCount != 4 || sum.IncorrectCount != 2 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.MasteredCount != 1 || sum.DueCount != 1 {
		t.Fatalf("unexpected mastered/due: %+v", sum)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveSettings(ctx, map[string]string{"grading": "strict", "deck": "spanish-core"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := store.SaveSettings(ctx, map[string]string{"grading": "normal"}); err != nil {
		t.Fatalf("overwrite setting: %v", err)
	}

	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got["grading"] != "normal" || got["deck"] != "spanish-core" {
		t.Fatalf("unexpected settings: %v", got)
	}
}
