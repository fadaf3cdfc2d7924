package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vocadojo/internal/answer"
	"vocadojo/internal/session"
)

// Config controls runtime behavior for the trainer.
type Config struct {
	DataDir     string
	DecksDir    string
	DeckID      string
	SessionSize int
	Grading     string
	LogPath     string
	Debug       bool
	Validation  ValidationConfig
}

type ValidationConfig struct {
	CaseSensitive        bool
	AccentSensitive      bool
	PunctuationSensitive bool
	DisableFuzzy         bool
}

func DefaultConfig() Config {
	return Config{
		SessionSize: 20,
		Grading:     string(session.GradingNormal),
	}
}

func (c *Config) Validate() error {
	switch c.Grading {
	case "", string(session.GradingNormal), string(session.GradingStrict):
	default:
		return fmt.Errorf("invalid grading mode %q", c.Grading)
	}
	if c.Grading == "" {
		c.Grading = string(session.GradingNormal)
	}
	if c.SessionSize <= 0 {
		c.SessionSize = 20
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "vocadojo")
	}
	if c.DecksDir == "" {
		c.DecksDir = filepath.Join(c.DataDir, "decks")
	}
	return nil
}

// AnswerOptions translates the validation toggles into checker options.
func (c Config) AnswerOptions() answer.Options {
	return answer.Options{
		CaseSensitive:        c.Validation.CaseSensitive,
		AccentSensitive:      c.Validation.AccentSensitive,
		PunctuationSensitive: c.Validation.PunctuationSensitive,
		DisableFuzzy:         c.Validation.DisableFuzzy,
	}
}

// GradingMode returns the normalized grading mode.
func (c Config) GradingMode() session.GradingMode {
	return session.NormalizeGradingMode(c.Grading)
}
