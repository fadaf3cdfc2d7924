package srs

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestScheduleNextFirstReview(t *testing.T) {
	got := ScheduleNext(State{Interval: 0, Ease: 2.5, Repetitions: 0}, Good, testNow)
	if got.Interval != 1 || got.Repetitions != 1 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if !got.NextReview.Equal(testNow.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected next review: %v", got.NextReview)
	}
}

func TestScheduleNextSecondReview(t *testing.T) {
	got := ScheduleNext(State{Interval: 1, Ease: 2.5, Repetitions: 1}, Good, testNow)
	if got.Interval != 6 || got.Repetitions != 2 {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestScheduleNextGrowth(t *testing.T) {
	// Third successful review multiplies the prior interval by the
	// updated ease factor: Good moves ease to 2.36, round(6*2.36)=14.
	got := ScheduleNext(State{Interval: 6, Ease: 2.5, Repetitions: 2}, Good, testNow)
	if got.Repetitions != 3 {
		t.Fatalf("unexpected repetitions: %d", got.Repetitions)
	}
	if got.Interval != 14 {
		t.Fatalf("expected interval 14, got %d", got.Interval)
	}
}

func TestScheduleNextAgainResets(t *testing.T) {
	got := ScheduleNext(State{Interval: 6, Ease: 2.5, Repetitions: 2}, Again, testNow)
	if got.Repetitions != 0 || got.Interval != 1 {
		t.Fatalf("again must reset: %+v", got)
	}
	if math.Abs(got.Ease-2.3) > 1e-9 {
		t.Fatalf("expected flat 0.2 penalty, got ease %v", got.Ease)
	}

	// Regardless of how long the prior streak was.
	long := ScheduleNext(State{Interval: 180, Ease: 3.1, Repetitions: 12}, Again, testNow)
	if long.Repetitions != 0 || long.Interval != 1 {
		t.Fatalf("again must reset long streaks too: %+v", long)
	}
}

func TestScheduleNextEaseFloor(t *testing.T) {
	got := ScheduleNext(State{Interval: 1, Ease: 1.35, Repetitions: 0}, Again, testNow)
	if got.Ease != MinEase {
		t.Fatalf("ease must not drop below %v, got %v", MinEase, got.Ease)
	}
	hard := ScheduleNext(State{Interval: 1, Ease: 1.3, Repetitions: 1}, Hard, testNow)
	if hard.Ease < MinEase {
		t.Fatalf("hard answer pushed ease below floor: %v", hard.Ease)
	}
}

func TestScheduleNextEaseOrdering(t *testing.T) {
	prior := State{Interval: 6, Ease: 2.5, Repetitions: 2}
	hard := ScheduleNext(prior, Hard, testNow)
	good := ScheduleNext(prior, Good, testNow)
	easy := ScheduleNext(prior, Easy, testNow)
	if !(easy.Ease > good.Ease) {
		t.Fatalf("easy (%v) must beat good (%v)", easy.Ease, good.Ease)
	}
	if !(good.Ease > hard.Ease) {
		t.Fatalf("good (%v) must beat hard (%v)", good.Ease, hard.Ease)
	}
	// Easy gains, Good holds, per the SM-2 formula.
	if math.Abs(easy.Ease-2.6) > 1e-9 {
		t.Fatalf("easy ease: got %v", easy.Ease)
	}
	if math.Abs(good.Ease-2.36) > 1e-9 {
		t.Fatalf("good ease: got %v", good.Ease)
	}
}

func TestScheduleNextPositiveInterval(t *testing.T) {
	for _, q := range []Quality{Hard, Good, Easy} {
		got := ScheduleNext(State{Interval: 0, Ease: 1.3, Repetitions: 5}, q, testNow)
		if got.Interval < 1 {
			t.Fatalf("%v produced non-positive interval %d", q, got.Interval)
		}
	}
}

func TestScheduleNextDeterministic(t *testing.T) {
	prior := State{Interval: 6, Ease: 2.5, Repetitions: 2}
	a := ScheduleNext(prior, Good, testNow)
	b := ScheduleNext(prior, Good, testNow)
	if a != b {
		t.Fatalf("identical inputs diverged: %+v vs %+v", a, b)
	}
}

func TestScheduleNextInvalidQualityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid quality")
		}
	}()
	ScheduleNext(State{Ease: 2.5}, Quality(4), testNow)
}

func TestProgressMastered(t *testing.T) {
	p := NewProgress("spanish-core", "perro")
	if p.Ease != DefaultEase {
		t.Fatalf("new progress ease: %v", p.Ease)
	}
	p.ApplyState(State{Interval: 21, Ease: 2.5, Repetitions: 4, NextReview: testNow})
	if p.Mastered {
		t.Fatalf("21 days is not past the mastery threshold")
	}
	p.ApplyState(State{Interval: 22, Ease: 2.5, Repetitions: 5, NextReview: testNow})
	if !p.Mastered {
		t.Fatalf("interval 22 should be mastered")
	}
}

func TestProgressIsDue(t *testing.T) {
	p := NewProgress("spanish-core", "perro")
	if !p.IsDue(testNow) {
		t.Fatalf("never-scheduled entry must be due")
	}
	p.NextReview = testNow.AddDate(0, 0, 3)
	if p.IsDue(testNow) {
		t.Fatalf("future entry must not be due")
	}
	if !p.IsDue(testNow.AddDate(0, 0, 3)) {
		t.Fatalf("entry is due at its next review time")
	}
}
