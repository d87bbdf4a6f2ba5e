package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/book"
)

// Format is the encoding used by a FileStore.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileStore persists the address book as a single JSON or YAML file.
type FileStore struct {
	path   string
	format Format
}

// NewFileStore creates a FileStore that reads and writes path in format.
func NewFileStore(path string, format Format) *FileStore {
	return &FileStore{path: path, format: format}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the address book. A missing file yields an empty book. An
// unreadable document is moved aside and yields an empty book and a
// *CorruptError.
func (s *FileStore) Load() (*book.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), nil
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var doc document
	if err := s.unmarshal(data, &doc); err != nil {
		return s.quarantine(fmt.Errorf("parsing: %w", err))
	}

	b, err := decode(doc)
	if err != nil {
		return s.quarantine(err)
	}
	return b, nil
}

// quarantine renames the unreadable file to <path>.corrupt-<unix seconds> and
// returns an empty book with a *CorruptError. If the rename fails no book is
// returned, so callers cannot overwrite the original.
func (s *FileStore) quarantine(cause error) (*book.AddressBook, error) {
	backup := fmt.Sprintf("%s.corrupt-%d", s.Path(), time.Now().Unix())
	if err := os.Rename(s.Path(), backup); err != nil {
		return nil, fmt.Errorf("store: moving corrupt %s aside: %w", s.Path(), errors.Join(err, cause))
	}
	return book.New(), &CorruptError{Source: s.Path(), Backup: backup, Err: cause}
}

// Save writes the address book to a temporary file next to the target and
// renames it into place, so a failed write never truncates the previous copy.
func (s *FileStore) Save(b *book.AddressBook) error {
	data, err := s.marshal(encode(b))
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store: replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) marshal(doc document) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (s *FileStore) unmarshal(data []byte, doc *document) error {
	if s.format == FormatYAML {
		return yaml.Unmarshal(data, doc)
	}
	return json.Unmarshal(data, doc)
}
