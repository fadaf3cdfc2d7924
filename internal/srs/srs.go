package srs

import (
	"fmt"
	"math"
	"time"
)

// Quality grades one recall on the SM-2 scale. The numeric gaps are
// the SM-2 convention; the ease formula consumes the raw value.
type Quality int

const (
	Again Quality = 0
	Hard  Quality = 2
	Good  Quality = 3
	Easy  Quality = 5
)

func (q Quality) Valid() bool {
	switch q {
	case Again, Hard, Good, Easy:
		return true
	}
	return false
}

func (q Quality) String() string {
	switch q {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

const (
	// MinEase is the SM-2 floor; below it intervals stop growing usefully.
	MinEase = 1.3
	// DefaultEase seeds a new progress record.
	DefaultEase = 2.5
	// MasteryDays: an entry whose interval exceeds this is mastered.
	MasteryDays = 21
	// againPenalty is the flat ease cost of a failed recall.
	againPenalty = 0.2
)

// State is the scheduling tuple consumed and produced by ScheduleNext.
type State struct {
	Interval    int // days
	Ease        float64
	Repetitions int
	NextReview  time.Time
}

// ScheduleNext applies one review result to the scheduling state.
// Pure: the caller owns the state before and after, and identical
// inputs always produce identical outputs. An invalid quality is a
// contract violation and panics rather than guessing a grade.
func ScheduleNext(s State, q Quality, now time.Time) State {
	if !q.Valid() {
		panic(fmt.Sprintf("srs: invalid quality %d", int(q)))
	}
	if now.IsZero() {
		now = time.Now()
	}

	out := s
	if q == Again {
		out.Repetitions = 0
		out.Interval = 1
		out.Ease = math.Max(MinEase, s.Ease-againPenalty)
	} else {
		out.Ease = math.Max(MinEase, s.Ease+easeDelta(q))
		out.Repetitions = s.Repetitions + 1
		switch {
		case out.Repetitions == 1:
			out.Interval = 1
		case out.Repetitions == 2:
			out.Interval = 6
		default:
			out.Interval = int(math.Round(float64(s.Interval) * out.Ease))
		}
		if out.Interval < 1 {
			out.Interval = 1
		}
	}
	out.NextReview = now.AddDate(0, 0, out.Interval)
	return out
}

// easeDelta is the SM-2 ease adjustment for a successful recall:
// 0.1 - (5-q)*(0.08 + (5-q)*0.02).
func easeDelta(q Quality) float64 {
	miss := float64(5 - int(q))
	return 0.1 - miss*(0.08+miss*0.02)
}
