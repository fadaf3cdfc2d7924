package deck

import (
	"encoding/json"
	"fmt"
	"io"
)

// deckJSON is the interchange form of a deck. Field names follow the
// yaml schema so a deck round-trips between the two formats.
type deckJSON struct {
	Kind          string      `json:"kind"`
	SchemaVersion int         `json:"schema_version"`
	DeckID        string      `json:"deck_id"`
	Name          string      `json:"name"`
	SourceLang    string      `json:"source_lang,omitempty"`
	TargetLang    string      `json:"target_lang,omitempty"`
	Entries       []entryJSON `json:"entries"`
}

type entryJSON struct {
	EntryID    string   `json:"entry_id"`
	CardType   CardType `json:"card_type"`
	Prompt     string   `json:"prompt"`
	Answer     string   `json:"answer"`
	Alternates []string `json:"alternates,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ExportJSON writes the deck as indented JSON.
func ExportJSON(w io.Writer, d Deck) error {
	out := deckJSON{
		Kind:          DeckKind,
		SchemaVersion: SupportedSchemaVersion,
		DeckID:        d.DeckID,
		Name:          d.Name,
		SourceLang:    d.SourceLang,
		TargetLang:    d.TargetLang,
		Entries:       make([]entryJSON, 0, len(d.Entries)),
	}
	for _, e := range d.Entries {
		out.Entries = append(out.Entries, entryJSON(e))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ImportJSON reads a deck from JSON and validates it like the yaml
// loader would.
func ImportJSON(r io.Reader) (Deck, error) {
	var in deckJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Deck{}, fmt.Errorf("parse deck json: %w", err)
	}
	d := Deck{
		Kind:          in.Kind,
		SchemaVersion: in.SchemaVersion,
		DeckID:        in.DeckID,
		Name:          in.Name,
		SourceLang:    in.SourceLang,
		TargetLang:    in.TargetLang,
		Entries:       make([]Entry, 0, len(in.Entries)),
	}
	for _, e := range in.Entries {
		d.Entries = append(d.Entries, Entry(e))
	}
	applyDeckDefaults(&d)
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}
