// Package journal keeps a local SQLite log of interaction reports and their outcomes.
// It is observability only, nothing in the reporting path depends on it.
package journal

import (
	"context"
	"database/sql/driver"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/shelfscope/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// status values of journal entries
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Entry is a single journal record
type Entry struct {
	ID         int64                  `db:"id" json:"id"`
	ItemID     string                 `db:"item_id" json:"book_id"`
	Type       domain.InteractionType `db:"interaction_type" json:"interaction_type"`
	Metadata   metadataSQL            `db:"metadata" json:"metadata"`
	Status     string                 `db:"status" json:"status"`
	Error      string                 `db:"error" json:"error,omitempty"`
	DurationMS int64                  `db:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}

// Journal stores interaction results
type Journal struct {
	db *sqlx.DB
}

// Open opens the database, applies pragmas and creates schema
func Open(ctx context.Context, cfg Config) (*Journal, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:shelfscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record stores the result of a report. Lock errors are retried with backoff, anything else fails at once.
func (j *Journal) Record(ctx context.Context, res domain.InteractionResult) error {
	entry := Entry{
		ItemID:     res.ItemID,
		Type:       res.Type,
		Metadata:   metadataSQL(res.Metadata),
		Status:     StatusSent,
		DurationMS: res.Duration.Milliseconds(),
		CreatedAt:  res.At.UTC(),
	}
	if res.Err != nil {
		entry.Status = StatusFailed
		entry.Error = res.Err.Error()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO interactions (item_id, interaction_type, metadata, status, error, duration_ms, created_at)
		VALUES (:item_id, :interaction_type, :metadata, :status, :error, :duration_ms, :created_at)
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		if _, err := j.db.NamedExecContext(ctx, query, entry); err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: err}
		}
		return nil
	}, &criticalError{})
	if err != nil {
		return fmt.Errorf("record interaction %s for %s: %w", res.Type, res.ItemID, err)
	}
	return nil
}

// Recent returns the latest entries, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	res := []Entry{}
	err := j.db.SelectContext(ctx, &res, `SELECT id, item_id, interaction_type, metadata, status, error, duration_ms, created_at
		FROM interactions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent interactions: %w", err)
	}
	return res, nil
}

// Counts returns number of entries per interaction type and status
func (j *Journal) Counts(ctx context.Context) (map[domain.InteractionType]map[string]int, error) {
	var rows []struct {
		Type   domain.InteractionType `db:"interaction_type"`
		Status string                 `db:"status"`
		Count  int                    `db:"cnt"`
	}
	err := j.db.SelectContext(ctx, &rows, `SELECT interaction_type, status, COUNT(*) AS cnt
		FROM interactions GROUP BY interaction_type, status`)
	if err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}
	res := make(map[domain.InteractionType]map[string]int)
	for _, r := range rows {
		if res[r.Type] == nil {
			res[r.Type] = map[string]int{}
		}
		res[r.Type][r.Status] = r.Count
	}
	return res, nil
}

// Ping verifies the database connection
func (j *Journal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	if e.err == nil {
		return "critical error"
	}
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is matches any criticalError, used as repeater termination error
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// metadataSQL is a JSON object of interaction metadata for SQL operations
type metadataSQL map[string]any

// Value implements driver.Valuer for database storage
func (m metadataSQL) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *metadataSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*m = metadataSQL{}
		return nil
	}
	res := map[string]any{}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal metadata: %w", err)
	}
	*m = res
	return nil
}
