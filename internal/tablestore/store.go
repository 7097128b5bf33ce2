package tablestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/config"
)

// ErrNotFound is returned when no table has the requested name.
var ErrNotFound = errors.New("tablestore: table not found")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 25 * time.Millisecond
)

// Store manages named alignment documents backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Entry is one stored document.
type Entry struct {
	ID        string
	Name      string
	Document  texmorph.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is a listing row.
type Summary struct {
	ID        string
	Name      string
	Slots     int
	UpdatedAt time.Time
}

// Open initializes or connects to the table library and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: cfg.Store.Path, lock: flock.New(cfg.LockPath())}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save validates doc and stores it under name, replacing any document
// already stored there. The entry keeps its ID and creation time on update.
func (s *Store) Save(ctx context.Context, name string, doc texmorph.Document) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("tablestore: name is required")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}
	data, err := texmorph.MarshalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("save %q: %w", name, err)
	}

	var entry *Entry
	err = s.withWriteLock(ctx, func() error {
		now := time.Now().UTC()
		stamp := now.Format(time.RFC3339Nano)

		existing, err := s.Get(ctx, name)
		switch {
		case errors.Is(err, ErrNotFound):
			id := uuid.New().String()
			if _, err := s.execWithRetry(ctx,
				`INSERT INTO tables (id, name, document, slots, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
				id, name, string(data), len(doc.Tags), stamp, stamp,
			); err != nil {
				return fmt.Errorf("insert %q: %w", name, err)
			}
			entry = &Entry{ID: id, Name: name, Document: doc, CreatedAt: now, UpdatedAt: now}
			return nil
		case err != nil:
			return err
		}

		if _, err := s.execWithRetry(ctx,
			`UPDATE tables SET document = ?, slots = ?, updated_at = ? WHERE id = ?`,
			string(data), len(doc.Tags), stamp, existing.ID,
		); err != nil {
			return fmt.Errorf("update %q: %w", name, err)
		}
		existing.Document = doc
		existing.UpdatedAt = now
		entry = existing
		return nil
	})
	return entry, err
}

// Get loads the document stored under name.
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM tables WHERE name = ?`,
		strings.TrimSpace(name),
	)
	var (
		e                  Entry
		data               string
		created, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.Name, &data, &created, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("get %q: %w", name, err)
	}
	doc, err := texmorph.UnmarshalDocument([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	e.Document = doc
	e.CreatedAt = parseTime(created)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// List returns every stored table ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slots, updated_at FROM tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Slots, &updated); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		sum.UpdatedAt = parseTime(updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the table stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.withWriteLock(ctx, func() error {
		res, err := s.execWithRetry(ctx, `DELETE FROM tables WHERE name = ?`, strings.TrimSpace(name))
		if err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil
	})
}

func (s *Store) withWriteLock(ctx context.Context, fn func() error) error {
	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("tablestore: could not acquire write lock")
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}
