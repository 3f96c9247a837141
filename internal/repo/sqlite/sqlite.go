// Package sqlite keeps the append-only history of check results and the
// durable alert state, so a cron-invoked pass can detect transitions
// against what previous runs saw.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"webmon/internal/alert"
	"webmon/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	url              TEXT NOT NULL,
	status           TEXT NOT NULL,
	status_code      INTEGER,
	response_time_ms REAL,
	error            TEXT NOT NULL DEFAULT '',
	checked_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_url_checked ON results(url, checked_at);

CREATE TABLE IF NOT EXISTS alert_state (
	url          TEXT PRIMARY KEY,
	last_status  TEXT NOT NULL,
	last_sent_at TEXT
);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// ---- HistoryStore ----

func (s *Store) Append(ctx context.Context, b *domain.MonitoringBatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO results (url, status, status_code, response_time_ms, error, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, r := range b.Results {
		var code sql.NullInt64
		if r.HTTPStatus != nil {
			code = sql.NullInt64{Int64: int64(*r.HTTPStatus), Valid: true}
		}
		var ms sql.NullFloat64
		if r.ResponseTimeMS != nil {
			ms = sql.NullFloat64{Float64: *r.ResponseTimeMS, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, q,
			r.URL, string(r.Status), code, ms, r.Reason,
			r.CheckedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert result for %s: %w", r.URL, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) LastByURL(ctx context.Context, url string) (*domain.CheckResult, error) {
	const q = `SELECT status, status_code, response_time_ms, error, checked_at
		FROM results WHERE url = ? ORDER BY checked_at DESC, id DESC LIMIT 1`

	var (
		status  string
		code    sql.NullInt64
		ms      sql.NullFloat64
		reason  string
		checked string
	)
	err := s.db.QueryRowContext(ctx, q, url).Scan(&status, &code, &ms, &reason, &checked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last result: %w", err)
	}

	r := &domain.CheckResult{URL: url, Status: domain.Status(status), Reason: reason}
	if code.Valid {
		v := int(code.Int64)
		r.HTTPStatus = &v
	}
	if ms.Valid {
		v := ms.Float64
		r.ResponseTimeMS = &v
	}
	if t, err := time.Parse(time.RFC3339Nano, checked); err == nil {
		r.CheckedAt = t
	}
	return r, nil
}

// ---- AlertStateStore ----

func (s *Store) LoadState(ctx context.Context, st *alert.State) error {
	rows, err := s.db.QueryContext(ctx, `SELECT url, last_status, last_sent_at FROM alert_state`)
	if err != nil {
		return fmt.Errorf("query alert state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec alert.Record
		var sentAt sql.NullString
		if err := rows.Scan(&rec.URL, &rec.LastStatus, &sentAt); err != nil {
			return fmt.Errorf("scan alert state: %w", err)
		}
		if sentAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, sentAt.String); err == nil {
				rec.LastSentAt = t
			}
		}
		st.Restore(rec)
	}
	return rows.Err()
}

func (s *Store) SaveState(ctx context.Context, st *alert.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO alert_state (url, last_status, last_sent_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET last_status=excluded.last_status, last_sent_at=excluded.last_sent_at`
	for _, rec := range st.Records() {
		var sentAt sql.NullString
		if !rec.LastSentAt.IsZero() {
			sentAt = sql.NullString{String: rec.LastSentAt.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, q, rec.URL, string(rec.LastStatus), sentAt); err != nil {
			return fmt.Errorf("upsert alert state for %s: %w", rec.URL, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
