// Package metrics persists per-stage pipeline execution data to SQLite so
// token spend and degradation rates can be inspected after the fact.
package metrics

import (
	"context"
	"database/sql"
	"time"

	"food-analyzer/internal/shared"
)

// StageMetric records metadata for a single pipeline stage execution.
type StageMetric struct {
	StageName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Attempts         int
	Degraded         bool
	Timestamp        time.Time
}

// sqliteTimeLayout is the text form timestamps are stored in. SQLite's
// date functions (strftime, the range comparisons below) only understand
// this layout, so the driver must never be handed a raw time.Time.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves one metric row.
func (s *Store) Record(ctx context.Context, m StageMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if m.Attempts == 0 {
		m.Attempts = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stage_metrics
			(stage_name, model, prompt_tokens, completion_tokens, latency_ms, attempts, degraded, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.StageName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, m.Attempts, m.Degraded, ts.UTC().Format(sqliteTimeLayout),
	)
	return err
}

// RecordMeta records a metric directly from stage metadata. Stages that
// never produced token usage and never degraded are skipped.
func (s *Store) RecordMeta(ctx context.Context, meta shared.StageMeta) error {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 && !meta.Degraded {
		return nil
	}
	return s.Record(ctx, StageMetric{
		StageName:        meta.StageName,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
		Attempts:         meta.Attempts,
		Degraded:         meta.Degraded,
	})
}

// RecordStages records every stage of a finished pipeline run.
func (s *Store) RecordStages(ctx context.Context, metas []shared.StageMeta) error {
	for _, m := range metas {
		if err := s.RecordMeta(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
	TotalDegraded   int
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', timestamp) AS day,
		       COALESCE(SUM(prompt_tokens), 0),
		       COALESCE(SUM(completion_tokens), 0),
		       COUNT(*),
		       COALESCE(SUM(degraded), 0)
		FROM stage_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since.Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecution, &u.TotalDegraded); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// reports how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM stage_metrics WHERE timestamp < ?`, threshold.Format(sqliteTimeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
