package answer

// Tier buckets a verdict by descending confidence.
type Tier string

const (
	TierExact     Tier = "exact"
	TierAlternate Tier = "alternate"
	TierFuzzy     Tier = "fuzzy"
	TierPartial   Tier = "partial"
	TierIncorrect Tier = "incorrect"
)

// Verdict is the outcome of checking one typed answer.
type Verdict struct {
	IsCorrect     bool
	Tier          Tier
	Confidence    float64 // 0..1
	Similarity    float64 // 0..100, derived from edit distance
	EditDistance  int     // meaningful for fuzzy/partial tiers
	MatchedAnswer string  // the accepted variant; empty when not accepted
	Feedback      string
	Suggestion    string
}

// Options configure one check.
// Zero values produce sensible defaults; see field comments.
type Options struct {
	CaseSensitive        bool
	AccentSensitive      bool
	PunctuationSensitive bool
	DisableFuzzy         bool     // zero false → fuzzy tier enabled
	ExactThreshold       float64  // zero → 0.9
	PartialThreshold     float64  // zero → 0.7
	MaxEditDistance      int      // zero → 2
	AlternateAnswers     []string // checked in order; first match wins
}

const (
	defaultExactThreshold   = 0.9
	defaultPartialThreshold = 0.7
	defaultMaxEditDistance  = 2
)

func (o Options) withDefaults() Options {
	if o.ExactThreshold == 0 {
		o.ExactThreshold = defaultExactThreshold
	}
	if o.PartialThreshold == 0 {
		o.PartialThreshold = defaultPartialThreshold
	}
	if o.MaxEditDistance == 0 {
		o.MaxEditDistance = defaultMaxEditDistance
	}
	return o
}

// Pair is one input/expected pair for CheckBatch.
type Pair struct {
	Input    string
	Expected string
}

// Stats aggregates a slice of verdicts.
type Stats struct {
	Total             int
	Correct           int
	Incorrect         int
	Accuracy          float64
	AverageConfidence float64
	TierBreakdown     map[Tier]int
}
