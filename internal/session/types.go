package session

import (
	"fmt"
	"strings"

	"vocadojo/internal/answer"
	"vocadojo/internal/srs"
)

// GradingMode selects the tier→quality policy.
type GradingMode string

const (
	GradingNormal GradingMode = "normal"
	GradingStrict GradingMode = "strict"
)

func NormalizeGradingMode(raw string) GradingMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(GradingStrict):
		return GradingStrict
	default:
		return GradingNormal
	}
}

// QualityMap translates a validation tier into an SM-2 quality. The
// mapping is policy, not algorithm, so callers can override it.
type QualityMap struct {
	Exact     srs.Quality
	Alternate srs.Quality
	Fuzzy     srs.Quality
	Partial   srs.Quality
	Incorrect srs.Quality
}

// DefaultQualityMap rewards a perfect answer with Easy. Partial maps
// to Again: the verdict was not accepted, so it counts as a miss.
func DefaultQualityMap() QualityMap {
	return QualityMap{
		Exact:     srs.Easy,
		Alternate: srs.Good,
		Fuzzy:     srs.Good,
		Partial:   srs.Again,
		Incorrect: srs.Again,
	}
}

// StrictQualityMap grades exact answers Good, slowing interval growth.
func StrictQualityMap() QualityMap {
	m := DefaultQualityMap()
	m.Exact = srs.Good
	return m
}

// QualityMapFor returns the map for a grading mode.
func QualityMapFor(mode GradingMode) QualityMap {
	if mode == GradingStrict {
		return StrictQualityMap()
	}
	return DefaultQualityMap()
}

func (m QualityMap) For(t answer.Tier) srs.Quality {
	switch t {
	case answer.TierExact:
		return m.Exact
	case answer.TierAlternate:
		return m.Alternate
	case answer.TierFuzzy:
		return m.Fuzzy
	case answer.TierPartial:
		return m.Partial
	default:
		return m.Incorrect
	}
}

func (m QualityMap) Validate() error {
	for _, q := range []srs.Quality{m.Exact, m.Alternate, m.Fuzzy, m.Partial, m.Incorrect} {
		if !q.Valid() {
			return fmt.Errorf("invalid quality %d in quality map", int(q))
		}
	}
	return nil
}
