package srs

import "time"

// Progress is the full per-entry review record persisted by the store.
// ScheduleNext touches only the State fields; the counters belong to
// the session orchestrator.
type Progress struct {
	DeckID      string
	EntryID     string
	Interval    int
	Ease        float64
	Repetitions int
	LastReview  time.Time // zero when never reviewed
	NextReview  time.Time

	TotalReviews   int
	CorrectCount   int
	IncorrectCount int
	Streak         int
	Mastered       bool
}

// NewProgress seeds defaults for an entry seen for the first time.
func NewProgress(deckID, entryID string) Progress {
	return Progress{DeckID: deckID, EntryID: entryID, Ease: DefaultEase}
}

// State extracts the scheduling tuple for ScheduleNext.
func (p Progress) State() State {
	return State{
		Interval:    p.Interval,
		Ease:        p.Ease,
		Repetitions: p.Repetitions,
		NextReview:  p.NextReview,
	}
}

// ApplyState writes a scheduling result back and re-derives Mastered.
func (p *Progress) ApplyState(s State) {
	p.Interval = s.Interval
	p.Ease = s.Ease
	p.Repetitions = s.Repetitions
	p.NextReview = s.NextReview
	p.Mastered = s.Interval > MasteryDays
}

// IsDue reports whether the entry should be reviewed at the given
// time. A zero NextReview (never scheduled) is always due.
func (p Progress) IsDue(at time.Time) bool {
	return !p.NextReview.After(at)
}
