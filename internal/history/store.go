// Package history persists chat transcripts. The whole chat list is kept as
// one JSON document under StorageKey, in SQLite when available and in
// process memory otherwise.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	// Register the modernc sqlite driver under the name "sqlite"
	_ "modernc.org/sqlite"
)

const StorageKey = "quanty-chats"

// Store reads and writes the raw JSON chat list.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// SQLiteStore is a key/value table in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" in tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil, fmt.Errorf("history: parent directory %q does not exist", dir)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping %q: %w", path, err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: load %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("history: save %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FallbackStore uses primary and switches to secondary for any call the
// primary fails. A key whose last write landed in secondary is read from
// secondary until the primary accepts a write for it again.
type FallbackStore struct {
	primary   Store
	secondary Store

	mu       sync.Mutex
	degraded map[string]bool
}

func NewFallbackStore(primary, secondary Store) *FallbackStore {
	return &FallbackStore{
		primary:   primary,
		secondary: secondary,
		degraded:  make(map[string]bool),
	}
}

func (f *FallbackStore) isDegraded(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded[key]
}

func (f *FallbackStore) setDegraded(key string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v {
		f.degraded[key] = true
	} else {
		delete(f.degraded, key)
	}
}

func (f *FallbackStore) Load(ctx context.Context, key string) ([]byte, error) {
	if f.isDegraded(key) {
		return f.secondary.Load(ctx, key)
	}
	v, err := f.primary.Load(ctx, key)
	if err == nil && v != nil {
		return v, nil
	}
	if err != nil {
		slog.Warn("Primary chat store failed, reading fallback", "error", err)
	}
	return f.secondary.Load(ctx, key)
}

func (f *FallbackStore) Save(ctx context.Context, key string, value []byte) error {
	if err := f.primary.Save(ctx, key, value); err != nil {
		slog.Warn("Primary chat store failed, writing fallback", "key", key, "error", err)
		if err := f.secondary.Save(ctx, key, value); err != nil {
			return err
		}
		f.setDegraded(key, true)
		return nil
	}
	f.setDegraded(key, false)
	return nil
}
