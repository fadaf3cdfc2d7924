package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadDecks scans root for directories containing a deck.yaml and
// loads each one. Directories without a deck.yaml are skipped.
func (l *FSLoader) LoadDecks(root string) ([]Deck, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	decks := make([]Deck, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		deckPath := filepath.Join(root, entry.Name())
		deckYAML := filepath.Join(deckPath, "deck.yaml")
		if _, err := os.Stat(deckYAML); err != nil {
			continue
		}
		d, err := readDeck(deckYAML)
		if err != nil {
			return nil, fmt.Errorf("load deck %s: %w", deckPath, err)
		}
		d.Path = deckPath
		decks = append(decks, d)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].DeckID < decks[j].DeckID })
	return decks, nil
}

func readDeck(path string) (Deck, error) {
	var d Deck
	b, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDeckDefaults(&d)
	if err := d.Validate(); err != nil {
		return d, fmt.Errorf("validate %s: %w", path, err)
	}
	return d, nil
}

func applyDeckDefaults(d *Deck) {
	for i := range d.Entries {
		if d.Entries[i].CardType == "" {
			d.Entries[i].CardType = CardBasic
		}
	}
}
