package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	clog "github.com/charmbracelet/log"

	"vocadojo/internal/app"
	"vocadojo/internal/deck"
	"vocadojo/internal/session"
	"vocadojo/internal/state"
	"vocadojo/internal/telemetry"
	"vocadojo/internal/ui"
)

func main() {
	cfg := app.DefaultConfig()
	flag.StringVar(&cfg.DecksDir, "decks", "", "directory containing deck folders (default: <data>/decks)")
	flag.StringVar(&cfg.DataDir, "data", "", "data directory for the progress database")
	flag.StringVar(&cfg.DeckID, "deck", "", "deck id to review (default: first deck found)")
	flag.IntVar(&cfg.SessionSize, "n", cfg.SessionSize, "maximum cards per session")
	flag.StringVar(&cfg.Grading, "grading", cfg.Grading, "grading mode: normal or strict")
	flag.StringVar(&cfg.LogPath, "log", "", "append session events to this JSONL file")
	flag.BoolVar(&cfg.Debug, "debug", false, "verbose logging")
	flag.BoolVar(&cfg.Validation.CaseSensitive, "case-sensitive", false, "require matching letter case")
	flag.BoolVar(&cfg.Validation.AccentSensitive, "accent-sensitive", false, "require matching accents")
	flag.BoolVar(&cfg.Validation.DisableFuzzy, "no-fuzzy", false, "disable typo tolerance")
	stats := flag.Bool("stats", false, "print progress summary and exit")
	flag.Parse()

	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "vocadojo"})
	if cfg.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	if err := run(cfg, *stats); err != nil {
		logger.Fatal("startup failed", "err", err)
	}
}

func run(cfg app.Config, statsOnly bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "vocadojo.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	if statsOnly {
		return printSummary(ctx, store)
	}

	decks, err := deck.NewLoader().LoadDecks(cfg.DecksDir)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		return fmt.Errorf("no decks found under %s", cfg.DecksDir)
	}
	d := decks[0]
	if cfg.DeckID != "" {
		d, err = deck.FindDeck(decks, cfg.DeckID)
		if err != nil {
			return err
		}
	}

	events, err := telemetry.NewEventLog(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer events.Close()

	runner, err := session.NewRunner(session.RunnerConfig{
		Store:      store,
		QualityMap: session.QualityMapFor(cfg.GradingMode()),
		Options:    cfg.AnswerOptions(),
		Events:     events,
	})
	if err != nil {
		return err
	}

	entries, err := runner.Plan(ctx, d, cfg.SessionSize)
	if err != nil {
		return err
	}

	err = ui.Run(ui.New(ui.Options{
		Deck:    d,
		Entries: entries,
		Runner:  runner,
		Debug:   cfg.Debug,
	}))
	events.Info("session_finished", map[string]any{
		"session_id": runner.SessionID(),
		"deck_id":    d.DeckID,
	})
	return err
}

func printSummary(ctx context.Context, store *state.SQLiteStore) error {
	s, err := store.GetSummary(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("tracked   %d\n", s.TrackedEntries)
	fmt.Printf("reviews   %d\n", s.TotalReviews)
	fmt.Printf("correct   %d\n", s.CorrectCount)
	fmt.Printf("incorrect %d\n", s.IncorrectCount)
	fmt.Printf("mastered  %d\n", s.MasteredCount)
	fmt.Printf("due now   %d\n", s.DueCount)
	return nil
}
