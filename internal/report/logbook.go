package report

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Logbook records completed runs in a SQLite database so operators can
// see what was processed, when, and with what findings.
type Logbook struct {
	db *sql.DB
}

// Run is one logbook row.
type Run struct {
	ID               string
	WorkPackage      string
	InputFile        string
	Rows             int
	MissingReference int
	MissingRevision  int
	OrderViolations  int
	Duration         time.Duration
	CreatedAt        time.Time
}

const logbookSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	work_package      TEXT NOT NULL,
	input_file        TEXT NOT NULL,
	rows              INTEGER NOT NULL,
	missing_reference INTEGER NOT NULL,
	missing_revision  INTEGER NOT NULL,
	order_violations  INTEGER NOT NULL,
	duration_ms       INTEGER NOT NULL,
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// OpenLogbook opens (and if needed initializes) the logbook database.
func OpenLogbook(path string) (*Logbook, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open logbook: %w", err)
	}
	if _, err := db.Exec(logbookSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize logbook schema: %w", err)
	}
	return &Logbook{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Logbook) Close() error {
	return l.db.Close()
}

// Append records a completed run and returns its generated run id.
func (l *Logbook) Append(stats Stats, inputFile string, duration time.Duration) (string, error) {
	now := time.Now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()

	_, err := l.db.Exec(`
		INSERT INTO runs (id, work_package, input_file, rows,
		                  missing_reference, missing_revision,
		                  order_violations, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, stats.WorkPackage, inputFile, stats.Rows,
		stats.MissingReference, stats.MissingRevision,
		stats.OrderViolations, duration.Milliseconds(),
		// Fixed-width fraction keeps lexicographic order chronological.
		now.Format("2006-01-02T15:04:05.000000000Z07:00"),
	)
	if err != nil {
		return "", fmt.Errorf("append logbook run: %w", err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (l *Logbook) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(`
		SELECT id, work_package, input_file, rows,
		       missing_reference, missing_revision,
		       order_violations, duration_ms, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query logbook: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.WorkPackage, &r.InputFile, &r.Rows,
			&r.MissingReference, &r.MissingRevision,
			&r.OrderViolations, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan logbook run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read logbook rows: %w", err)
	}
	return runs, nil
}
