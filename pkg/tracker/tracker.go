// Package tracker records per-entity generation outcomes in SQLite so a run
// can be inspected afterwards: which entities were documented, from which
// ladder stage, and at what cost.
package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

// Tracker records and queries generation outcomes.
type Tracker interface {
	// Record stores one generation record.
	Record(ctx context.Context, rec models.GenerationRecord) error
	// Query returns the most recent records, newest first.
	Query(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	// Summary returns aggregates grouped by result source.
	Summary(ctx context.Context) ([]models.GenerationSummary, error)
	// Close releases resources.
	Close() error
}

// SQLiteTracker implements Tracker with a SQLite database.
type SQLiteTracker struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS generation_records (
	id TEXT PRIMARY KEY,
	file TEXT NOT NULL,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	source TEXT NOT NULL,
	prompt_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_records_source ON generation_records(source);
CREATE INDEX IF NOT EXISTS idx_records_file ON generation_records(file);
`

// New creates a SQLiteTracker and runs auto-migration.
func New(dbPath string) (*SQLiteTracker, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open tracker db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate tracker db: %w", err)
	}

	return &SQLiteTracker{db: db}, nil
}

// Record stores one generation record, assigning an ID and timestamp if
// missing.
func (t *SQLiteTracker) Record(ctx context.Context, rec models.GenerationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO generation_records
		(id, file, kind, name, source, prompt_tokens, output_tokens, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.File, rec.Kind, rec.Name, rec.Source,
		rec.PromptTokens, rec.OutputTokens, rec.LatencyMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

// Query returns the most recent records, newest first.
func (t *SQLiteTracker) Query(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := t.db.QueryContext(ctx,
		`SELECT id, file, kind, name, source, prompt_tokens, output_tokens, latency_ms, created_at
		 FROM generation_records ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []models.GenerationRecord
	for rows.Next() {
		var r models.GenerationRecord
		if err := rows.Scan(&r.ID, &r.File, &r.Kind, &r.Name, &r.Source,
			&r.PromptTokens, &r.OutputTokens, &r.LatencyMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary returns aggregates grouped by result source.
func (t *SQLiteTracker) Summary(ctx context.Context) ([]models.GenerationSummary, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT source, COUNT(*), SUM(prompt_tokens), SUM(output_tokens), AVG(latency_ms)
		 FROM generation_records GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("summarize records: %w", err)
	}
	defer rows.Close()

	var summaries []models.GenerationSummary
	for rows.Next() {
		var s models.GenerationSummary
		if err := rows.Scan(&s.Source, &s.Count, &s.PromptTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Close releases the database connection.
func (t *SQLiteTracker) Close() error {
	return t.db.Close()
}
