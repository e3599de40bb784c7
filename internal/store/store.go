// Package store is a write-only ledger of past consensus runs, kept for
// auditing spend and inspecting results. Nothing here is ever read back
// into the translation pipeline.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		sentence TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		formality TEXT NOT NULL,
		total_cost_thousandths_cent INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS run_translations (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		model TEXT NOT NULL,
		combined BOOLEAN DEFAULT FALSE,
		text TEXT NOT NULL,
		score INTEGER DEFAULT 0,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_translations_run ON run_translations(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Run is one pipeline invocation as recorded in the ledger.
type Run struct {
	ID         string
	Sentence   string
	SourceLang string
	TargetLang string
	Formality  string
	TotalCost  uint32 // thousandths of a cent
	CreatedAt  time.Time
}

// Translation is one candidate or synthesized entry of a recorded run.
type Translation struct {
	Model     string
	Combined  bool
	Text      string
	Score     int
	LatencyMs int64
}

func (s *Store) SaveRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, sentence, source_lang, target_lang, formality, total_cost_thousandths_cent, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, normalizeText(run.Sentence), run.SourceLang, run.TargetLang, run.Formality, run.TotalCost, run.CreatedAt)
	return err
}

func (s *Store) SaveTranslation(ctx context.Context, runID string, tr Translation) error {
	id := fmt.Sprintf("%s_%s", runID, tr.Model)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_translations (id, run_id, model, combined, text, score, latency_ms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, runID, tr.Model, tr.Combined, tr.Text, tr.Score, tr.LatencyMs)
	return err
}

// ListRuns returns the most recent runs, newest first. limit <= 0 lists
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, sentence, source_lang, target_lang, formality, total_cost_thousandths_cent, created_at FROM runs ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Sentence, &r.SourceLang, &r.TargetLang, &r.Formality, &r.TotalCost, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunTranslations returns every recorded entry of one run, candidates
// first, synthesized last.
func (s *Store) GetRunTranslations(ctx context.Context, runID string) ([]Translation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, combined, text, score, latency_ms FROM run_translations WHERE run_id = ? ORDER BY combined, created_at`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var tr Translation
		var latency sql.NullInt64
		if err := rows.Scan(&tr.Model, &tr.Combined, &tr.Text, &tr.Score, &latency); err != nil {
			return nil, err
		}
		tr.LatencyMs = latency.Int64
		translations = append(translations, tr)
	}
	return translations, rows.Err()
}

// LedgerStats summarises recorded runs and spend.
type LedgerStats struct {
	TotalRuns       int
	TotalCandidates int
	TotalCost       uint64 // thousandths of a cent
}

func (s *Store) Stats(ctx context.Context) (*LedgerStats, error) {
	stats := &LedgerStats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_cost_thousandths_cent), 0) FROM runs`).Scan(
		&stats.TotalRuns, &stats.TotalCost)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM run_translations WHERE NOT combined`).Scan(&stats.TotalCandidates)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// recorded sentences compare consistently.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
