package stocks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store loads and saves the full ledger.
type Store interface {
	// Load returns the persisted ledger. The ledger is never nil: when the state
	// is missing it is empty and the error is nil, when the state is unreadable
	// it is empty and the error wraps ErrPersistenceCorrupt. The error is a
	// diagnostic for the caller to surface, not a failure.
	Load() (*Ledger, error)
	// Save overwrites the persisted state with a full snapshot of l.
	Save(l *Ledger) error
}

// FileStore persists the ledger as a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a Store backed by the JSON file at path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load implements Store.
func (s *FileStore) Load() (*Ledger, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return NewLedger(), fmt.Errorf("%w: could not open ledger file %q: %v", ErrPersistenceCorrupt, s.Path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return NewLedger(), fmt.Errorf("could not decode ledger file %q: %w", s.Path, err)
	}
	return ledger, nil
}

// Save implements Store.
//
// The snapshot is written to a temporary file next to the target, then renamed
// over it.
func (s *FileStore) Save(l *Ledger) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", s.Path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", s.Path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing ledger file %q: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing ledger file %q: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("error replacing ledger file %q: %w", s.Path, err)
	}
	return nil
}
