package deck

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	DeckKind               = "deck"
	SupportedSchemaVersion = 1

	// ClozeBlank marks the gap in a cloze prompt.
	ClozeBlank = "___"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// CardType discriminates the card variants. Every consumer switches
// exhaustively; Validate rejects unknown values up front.
type CardType string

const (
	CardBasic   CardType = "basic"   // show prompt, expect answer
	CardReverse CardType = "reverse" // show answer, expect prompt
	CardCloze   CardType = "cloze"   // prompt with a ___ gap, expect answer
)

type Deck struct {
	Kind          string  `yaml:"kind"`
	SchemaVersion int     `yaml:"schema_version"`
	DeckID        string  `yaml:"deck_id"`
	Name          string  `yaml:"name"`
	SourceLang    string  `yaml:"source_lang"`
	TargetLang    string  `yaml:"target_lang"`
	Entries       []Entry `yaml:"entries"`

	Path string `yaml:"-"`
}

type Entry struct {
	EntryID    string   `yaml:"entry_id"`
	CardType   CardType `yaml:"card_type"`
	Prompt     string   `yaml:"prompt"`
	Answer     string   `yaml:"answer"`
	Alternates []string `yaml:"alternates"`
	Notes      string   `yaml:"notes"`
	Tags       []string `yaml:"tags"`
}

func (d Deck) Validate() error {
	if d.Kind != DeckKind {
		return fmt.Errorf("kind must be %q", DeckKind)
	}
	if d.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if d.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported deck schema_version %d (max supported %d)", d.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(d.DeckID) {
		return fmt.Errorf("invalid deck_id %q", d.DeckID)
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(d.Entries) == 0 {
		return fmt.Errorf("deck must contain at least one entry")
	}
	seen := map[string]struct{}{}
	for _, e := range d.Entries {
		if !idPattern.MatchString(e.EntryID) {
			return fmt.Errorf("invalid entry_id %q", e.EntryID)
		}
		if _, ok := seen[e.EntryID]; ok {
			return fmt.Errorf("duplicate entry_id %q", e.EntryID)
		}
		seen[e.EntryID] = struct{}{}
		if err := e.validate(); err != nil {
			return fmt.Errorf("entry %s: %w", e.EntryID, err)
		}
	}
	return nil
}

func (e Entry) validate() error {
	if e.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if e.Answer == "" {
		return fmt.Errorf("answer is required")
	}
	switch e.CardType {
	case CardBasic, CardReverse:
	case CardCloze:
		if !strings.Contains(e.Prompt, ClozeBlank) {
			return fmt.Errorf("cloze prompt must contain %q", ClozeBlank)
		}
	default:
		return fmt.Errorf("unknown card_type %q", e.CardType)
	}
	return nil
}

// PromptAndAnswer resolves what the learner sees and what they must
// type for one entry. Reverse cards flip the direction; cloze cards
// keep the gap visible in the prompt.
func PromptAndAnswer(e Entry) (prompt, expected string) {
	switch e.CardType {
	case CardReverse:
		return e.Answer, e.Prompt
	case CardCloze:
		return e.Prompt, e.Answer
	default:
		return e.Prompt, e.Answer
	}
}

// FindDeck returns the deck with the given id.
func FindDeck(decks []Deck, deckID string) (Deck, error) {
	for _, d := range decks {
		if d.DeckID == deckID {
			return d, nil
		}
	}
	return Deck{}, fmt.Errorf("deck %s not found", deckID)
}

// FindEntry returns the entry with the given id.
func FindEntry(d Deck, entryID string) (Entry, error) {
	for _, e := range d.Entries {
		if e.EntryID == entryID {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("entry %s/%s not found", d.DeckID, entryID)
}
