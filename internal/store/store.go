// Package store persists an AddressBook between sessions.
package store

import (
	"errors"
	"fmt"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/config"
)

// Sentinel errors for caller-checkable conditions.
var (
	// ErrCorrupt means the stored data could not be decoded. Load still
	// returns an empty, usable book alongside it, as a *CorruptError.
	ErrCorrupt        = errors.New("store: corrupt address book")
	ErrUnknownBackend = errors.New("store: unknown backend")
)

// CorruptError reports stored data that could not be decoded. Before
// returning it, Load moves the unreadable data to Backup so that the next
// Save cannot overwrite it.
type CorruptError struct {
	Source string // File path or database the data came from.
	Backup string // Where the unreadable data now lives.
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("store: corrupt address book %s (moved to %s): %v", e.Source, e.Backup, e.Err)
}

// Unwrap lets errors.Is match ErrCorrupt and the underlying decode error.
func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}

// Store loads and saves a whole AddressBook.
type Store interface {
	// Load returns the stored book, or an empty book when nothing is stored yet.
	Load() (*book.AddressBook, error)
	// Save replaces the stored book with b.
	Save(b *book.AddressBook) error
	Close() error
}

// Compile-time checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Open returns the Store selected by cfg.Backend.
func Open(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewFileStore(cfg.Path, FormatJSON), nil
	case config.BackendYAML:
		return NewFileStore(cfg.Path, FormatYAML), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
