package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"vocadojo/internal/srs"
)

const timeLayout = time.RFC3339

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS review_progress (
			deck_id TEXT NOT NULL,
			entry_id TEXT NOT NULL,
			interval INTEGER NOT NULL DEFAULT 0,
			ease REAL NOT NULL DEFAULT 2.5,
			repetitions INTEGER NOT NULL DEFAULT 0,
			last_review TEXT,
			next_review TEXT,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			mastered INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY(deck_id, entry_id)
		);`,
		`CREATE TABLE IF NOT EXISTS review_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			deck_id TEXT NOT NULL,
			entry_id TEXT NOT NULL,
			tier TEXT NOT NULL,
			quality INTEGER NOT NULL,
			similarity REAL NOT NULL DEFAULT 0,
			response_ms INTEGER NOT NULL DEFAULT 0,
			reviewed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_review_log_entry ON review_log(deck_id, entry_id);`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetProgress(ctx context.Context, deckID, entryID string) (*srs.Progress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT deck_id, entry_id, interval, ease, repetitions, last_review, next_review,
			total_reviews, correct_count, incorrect_count, streak, mastered
		 FROM review_progress WHERE deck_id = ? AND entry_id = ?`, deckID, entryID)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) UpsertProgress(ctx context.Context, p srs.Progress) error {
	return retryBusy(func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO review_progress(
				deck_id, entry_id, interval, ease, repetitions, last_review, next_review,
				total_reviews, correct_count, incorrect_count, streak, mastered)
			 VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
			 ON CONFLICT(deck_id, entry_id) DO UPDATE SET
				interval = excluded.interval,
				ease = excluded.ease,
				repetitions = excluded.repetitions,
				last_review = excluded.last_review,
				next_review = excluded.next_review,
				total_reviews = excluded.total_reviews,
				correct_count = excluded.correct_count,
				incorrect_count = excluded.incorrect_count,
				streak = excluded.streak,
				mastered = excluded.mastered`,
			p.DeckID, p.EntryID, p.Interval, p.Ease, p.Repetitions,
			nullTime(p.LastReview), nullTime(p.NextReview),
			p.TotalReviews, p.CorrectCount, p.IncorrectCount, p.Streak, boolInt(p.Mastered),
		)
		return err
	})
}

// ListDue returns due progress rows for a deck ordered by session
// priority: never-reviewed first, lowest ease, earliest due date.
// RFC3339 UTC strings compare lexicographically in date order.
func (s *SQLiteStore) ListDue(ctx context.Context, deckID string, at time.Time, limit int) ([]srs.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT deck_id, entry_id, interval, ease, repetitions, last_review, next_review,
			total_reviews, correct_count, incorrect_count, streak, mastered
		 FROM review_progress
		 WHERE deck_id = ? AND (next_review IS NULL OR next_review <= ?)
		 ORDER BY (total_reviews = 0) DESC, ease ASC, next_review ASC
		 LIMIT ?`,
		deckID, at.UTC().Format(timeLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []srs.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AppendReviewLog(ctx context.Context, entry ReviewLogEntry) error {
	return retryBusy(func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO review_log(session_id, deck_id, entry_id, tier, quality, similarity, response_ms, reviewed_at)
			 VALUES(?,?,?,?,?,?,?,?)`,
			entry.SessionID, entry.DeckID, entry.EntryID, entry.Tier, entry.Quality,
			entry.Similarity, entry.ResponseMS, entry.ReviewedAt.UTC().Format(timeLayout),
		)
		return err
	})
}

func (s *SQLiteStore) GetSummary(ctx context.Context, at time.Time) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(total_reviews), 0),
			COALESCE(SUM(correct_count), 0),
			COALESCE(SUM(incorrect_count), 0),
			COALESCE(SUM(mastered), 0),
			COALESCE(SUM(next_review IS NULL OR next_review <= ?), 0)
		 FROM review_progress`,
		at.UTC().Format(timeLayout),
	).Scan(&sum.TrackedEntries, &sum.TotalReviews, &sum.CorrectCount,
		&sum.IncorrectCount, &sum.MasteredCount, &sum.DueCount)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	return retryBusy(func() error {
		for k, v := range values {
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO app_settings(key, value) VALUES(?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (srs.Progress, error) {
	var p srs.Progress
	var lastReview, nextReview sql.NullString
	var mastered int
	err := row.Scan(&p.DeckID, &p.EntryID, &p.Interval, &p.Ease, &p.Repetitions,
		&lastReview, &nextReview,
		&p.TotalReviews, &p.CorrectCount, &p.IncorrectCount, &p.Streak, &mastered)
	if err != nil {
		return srs.Progress{}, err
	}
	p.Mastered = mastered != 0
	if p.LastReview, err = parseTime(lastReview); err != nil {
		return srs.Progress{}, err
	}
	if p.NextReview, err = parseTime(nextReview); err != nil {
		return srs.Progress{}, err
	}
	return p, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s.String, err)
	}
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// retryBusy retries writes that hit a transient lock. The backoff
// lives here so the scheduling/validation core stays free of
// I/O-shaped error handling.
func retryBusy(fn func() error) error {
	delay := 10 * time.Millisecond
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(delay)
		delay *= 2
	}
	return err
}

func isBusy(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "busy") || strings.Contains(msg, "locked")
}
