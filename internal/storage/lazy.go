package storage

import (
	"context"
	"log/slog"
	"sync"
)

// Lazy memoizes a single database open so every caller shares one
// initialization instead of racing table creation and migrations. A failed
// open leaves nothing cached, so the next call retries from scratch rather
// than reusing a half-initialized handle.
type Lazy struct {
	path string
	log  *slog.Logger

	mu sync.Mutex
	db *DB
}

// NewLazy returns a handle that opens the database at path on first use.
func NewLazy(path string, log *slog.Logger) *Lazy {
	return &Lazy{path: path, log: log}
}

// Get returns the shared database, opening it if needed.
func (l *Lazy) Get(ctx context.Context) (*DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}
	db, err := Open(ctx, l.path, l.log)
	if err != nil {
		return nil, err
	}
	l.db = db
	return db, nil
}

// Close closes the database if it was opened.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
