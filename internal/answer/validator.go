package answer

import (
	"fmt"
	"unicode/utf8"
)

// Validator checks typed answers against expected strings. It holds no
// mutable state and is safe for concurrent use; callers pass an
// instance explicitly rather than reaching for a package singleton.
type Validator struct{}

func NewValidator() *Validator { return &Validator{} }

// Check runs the tiered match pipeline: exact → alternate → fuzzy →
// partial → incorrect. The first tier that matches wins. Check never
// fails for user input; every outcome is absorbed into the Verdict.
func (v *Validator) Check(input, expected string, opts Options) Verdict {
	opts = opts.withDefaults()

	if tooLong(input) {
		return Verdict{
			Tier:       TierIncorrect,
			Feedback:   "Answer is too long to check.",
			Suggestion: fmt.Sprintf("The expected answer has %d characters.", utf8.RuneCountInString(expected)),
		}
	}

	in := Normalize(input, opts)
	want := Normalize(expected, opts)

	// Degenerate expected answer: only an empty input can match it.
	if in == "" {
		if want == "" {
			return exactVerdict(expected)
		}
		return Verdict{
			Tier:       TierIncorrect,
			Feedback:   "No answer provided.",
			Suggestion: suggest(in, want, expected),
		}
	}

	if in == want {
		return exactVerdict(expected)
	}

	for _, alt := range opts.AlternateAnswers {
		if Normalize(alt, opts) == in {
			return Verdict{
				IsCorrect:     true,
				Tier:          TierAlternate,
				Confidence:    1.0,
				Similarity:    100,
				MatchedAnswer: alt,
				Feedback:      fmt.Sprintf("Correct — %q is an accepted alternative.", alt),
			}
		}
	}

	// Best distance across the expected answer and every alternate.
	best, bestSource, bestNorm := Distance(in, want), expected, want
	for _, alt := range opts.AlternateAnswers {
		na := Normalize(alt, opts)
		if na == "" {
			continue
		}
		if d := Distance(in, na); d < best {
			best, bestSource, bestNorm = d, alt, na
		}
	}

	sim := similarity(best, in, bestNorm)
	conf := sim / 100

	// Accept as fuzzy on a small edit distance with a reasonable
	// ratio, or on a very high ratio alone for long answers where a
	// couple of edits barely dent the similarity.
	fuzzyOK := (best <= opts.MaxEditDistance && conf >= opts.PartialThreshold) || conf >= opts.ExactThreshold
	if !opts.DisableFuzzy && fuzzyOK {
		return Verdict{
			IsCorrect:     true,
			Tier:          TierFuzzy,
			Confidence:    conf,
			Similarity:    sim,
			EditDistance:  best,
			MatchedAnswer: bestSource,
			Feedback:      "Close enough — looks like a typo.",
			Suggestion:    fmt.Sprintf("Correct spelling: %q", bestSource),
		}
	}

	if conf >= opts.PartialThreshold {
		return Verdict{
			Tier:         TierPartial,
			Confidence:   conf,
			Similarity:   sim,
			EditDistance: best,
			Feedback:     "Close, but not accepted.",
			Suggestion:   suggest(in, bestNorm, bestSource),
		}
	}

	return Verdict{
		Tier:         TierIncorrect,
		Confidence:   0,
		Similarity:   sim,
		EditDistance: best,
		Feedback:     fmt.Sprintf("Incorrect. The answer is %q.", expected),
		Suggestion:   suggest(in, bestNorm, bestSource),
	}
}

// CheckBatch applies the same options to every pair, order-preserving.
func (v *Validator) CheckBatch(pairs []Pair, opts Options) []Verdict {
	out := make([]Verdict, len(pairs))
	for i, p := range pairs {
		out[i] = v.Check(p.Input, p.Expected, opts)
	}
	return out
}

// Statistics aggregates verdicts. Accuracy is 0 for an empty slice.
func Statistics(verdicts []Verdict) Stats {
	s := Stats{TierBreakdown: map[Tier]int{}}
	var confSum float64
	for _, v := range verdicts {
		s.Total++
		if v.IsCorrect {
			s.Correct++
		} else {
			s.Incorrect++
		}
		confSum += v.Confidence
		s.TierBreakdown[v.Tier]++
	}
	if s.Total > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Total)
		s.AverageConfidence = confSum / float64(s.Total)
	}
	return s
}

func exactVerdict(expected string) Verdict {
	return Verdict{
		IsCorrect:     true,
		Tier:          TierExact,
		Confidence:    1.0,
		Similarity:    100,
		MatchedAnswer: expected,
		Feedback:      "Perfect.",
	}
}

// similarity converts an edit distance into a 0..100 percentage
// against the longer of the two normalized strings.
func similarity(d int, a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	s := 100 * (1 - float64(d)/float64(longest))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// suggest picks a corrective hint: a length nudge when the input is
// far off in size, the correct answer otherwise.
func suggest(in, want, source string) string {
	li := utf8.RuneCountInString(in)
	lw := utf8.RuneCountInString(want)
	switch {
	case li > 0 && li*2 < lw:
		return "Try a longer answer."
	case lw > 0 && li > lw*2:
		return "Try a shorter answer."
	default:
		return fmt.Sprintf("Expected: %q", source)
	}
}
