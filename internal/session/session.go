package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vocadojo/internal/answer"
	"vocadojo/internal/deck"
	"vocadojo/internal/srs"
	"vocadojo/internal/state"
)

// EventLogger receives structured session events. telemetry.EventLog
// satisfies it; a nil logger is replaced with a no-op.
type EventLogger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

type RunnerConfig struct {
	Store      state.Store
	QualityMap QualityMap
	Options    answer.Options
	Events     EventLogger
	Now        func() time.Time // nil → time.Now
}

// Runner drives one review session: it plans the due queue and runs
// the validate→grade→schedule→persist sequence per submitted answer.
type Runner struct {
	validator *answer.Validator
	store     state.Store
	qmap      QualityMap
	opts      answer.Options
	events    EventLogger
	sessionID string
	now       func() time.Time
}

func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session: store is required")
	}
	if err := cfg.QualityMap.Validate(); err != nil {
		return nil, err
	}
	if cfg.Events == nil {
		cfg.Events = nopLogger{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Runner{
		validator: answer.NewValidator(),
		store:     cfg.Store,
		qmap:      cfg.QualityMap,
		opts:      cfg.Options,
		events:    cfg.Events,
		sessionID: uuid.NewString(),
		now:       cfg.Now,
	}, nil
}

func (r *Runner) SessionID() string { return r.sessionID }

// Plan selects up to limit due entries from the deck, new entries
// first, then hardest. Entries without a progress row are new.
func (r *Runner) Plan(ctx context.Context, d deck.Deck, limit int) ([]deck.Entry, error) {
	now := r.now()
	due := make([]srs.Progress, 0, len(d.Entries))
	for _, e := range d.Entries {
		p, err := r.store.GetProgress(ctx, d.DeckID, e.EntryID)
		if err != nil {
			return nil, fmt.Errorf("plan %s/%s: %w", d.DeckID, e.EntryID, err)
		}
		if p == nil {
			np := srs.NewProgress(d.DeckID, e.EntryID)
			p = &np
		}
		if p.IsDue(now) {
			due = append(due, *p)
		}
	}
	srs.SortDue(due)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]deck.Entry, 0, len(due))
	for _, p := range due {
		e, err := deck.FindEntry(d, p.EntryID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	r.events.Info("session_planned", map[string]any{
		"session_id": r.sessionID,
		"deck_id":    d.DeckID,
		"due":        len(out),
	})
	return out, nil
}

// Answer is the outcome of one submission.
type Answer struct {
	Verdict  answer.Verdict
	Quality  srs.Quality
	Progress srs.Progress
}

// Submit validates one typed answer, grades it, reschedules the entry
// and persists the updated progress plus a review-log row.
func (r *Runner) Submit(ctx context.Context, d deck.Deck, e deck.Entry, input string, responseTime time.Duration) (Answer, error) {
	_, expected := deck.PromptAndAnswer(e)

	opts := r.opts
	opts.AlternateAnswers = e.Alternates
	verdict := r.validator.Check(input, expected, opts)
	quality := r.qmap.For(verdict.Tier)

	p, err := r.store.GetProgress(ctx, d.DeckID, e.EntryID)
	if err != nil {
		return Answer{}, fmt.Errorf("submit %s/%s: %w", d.DeckID, e.EntryID, err)
	}
	if p == nil {
		np := srs.NewProgress(d.DeckID, e.EntryID)
		p = &np
	}

	now := r.now()
	p.ApplyState(srs.ScheduleNext(p.State(), quality, now))
	p.LastReview = now
	p.TotalReviews++
	if verdict.IsCorrect {
		p.CorrectCount++
		p.Streak++
	} else {
		p.IncorrectCount++
		p.Streak = 0
	}

	if err := r.store.UpsertProgress(ctx, *p); err != nil {
		return Answer{}, fmt.Errorf("persist progress %s/%s: %w", d.DeckID, e.EntryID, err)
	}
	if err := r.store.AppendReviewLog(ctx, state.ReviewLogEntry{
		SessionID:  r.sessionID,
		DeckID:     d.DeckID,
		EntryID:    e.EntryID,
		Tier:       string(verdict.Tier),
		Quality:    int(quality),
		Similarity: verdict.Similarity,
		ResponseMS: responseTime.Milliseconds(),
		ReviewedAt: now,
	}); err != nil {
		return Answer{}, fmt.Errorf("append review log %s/%s: %w", d.DeckID, e.EntryID, err)
	}

	r.events.Info("answer", map[string]any{
		"session_id": r.sessionID,
		"deck_id":    d.DeckID,
		"entry_id":   e.EntryID,
		"tier":       string(verdict.Tier),
		"quality":    quality.String(),
		"interval":   p.Interval,
		"streak":     p.Streak,
	})
	return Answer{Verdict: verdict, Quality: quality, Progress: *p}, nil
}
