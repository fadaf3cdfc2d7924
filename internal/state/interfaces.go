package state

import (
	"context"
	"time"

	"vocadojo/internal/srs"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	GetProgress(ctx context.Context, deckID, entryID string) (*srs.Progress, error)
	UpsertProgress(ctx context.Context, p srs.Progress) error
	ListDue(ctx context.Context, deckID string, at time.Time, limit int) ([]srs.Progress, error)
	AppendReviewLog(ctx context.Context, entry ReviewLogEntry) error
	GetSummary(ctx context.Context, at time.Time) (Summary, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	Close() error
}

// ReviewLogEntry is one row of the append-only answer history.
type ReviewLogEntry struct {
	SessionID  string
	DeckID     string
	EntryID    string
	Tier       string
	Quality    int
	Similarity float64
	ResponseMS int64
	ReviewedAt time.Time
}

type Summary struct {
	TrackedEntries int
	TotalReviews   int
	CorrectCount   int
	IncorrectCount int
	MasteredCount  int
	DueCount       int
}
