// Package catalog owns the book records of the library: parsing and
// serializing the catalog file, availability reads and writes, and the
// book/member ID validators.
//
// The catalog file holds one record per line, fields joined by ", ",
// with no trailing newline. Every mutation rewrites the whole file
// through a temp-file-and-rename so readers only ever observe the old
// or the new full state.
package catalog

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/internal/textfile"
)

// Store reads and mutates the catalog file. Mutations are serialized
// through a single exclusive lock; reads always hit the file, there is
// no in-memory cache to go stale.
type Store struct {
	path string
	mu   sync.Mutex
	log  *zap.SugaredLogger
}

// NewStore creates a catalog store backed by the file at path.
func NewStore(path string, log *zap.SugaredLogger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full catalog in file order. An unreadable file yields
// a wrapped ErrStoreUnavailable; malformed lines are reported as plain
// parse errors.
func (s *Store) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "reading catalog %s: %v", s.path, err)
	}

	var records []Record
	for i, line := range textfile.SplitLines(string(data)) {
		rec, err := parseRecord(line, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadOrEmpty is the fail-open read used by report and recommendation
// paths: an unreadable catalog degrades to an empty one. The failure
// still lands in the log so a broken file does not masquerade as an
// empty library.
func (s *Store) LoadOrEmpty() []Record {
	records, err := s.Load()
	if err != nil {
		s.log.Warnw("catalog unreadable, treating as empty",
			"path", s.path,
			"error", err)
		return nil
	}
	return records
}

// Size returns the number of catalog slots.
func (s *Store) Size() (int, error) {
	records, err := s.Load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// AvailabilityOf returns the holder field for the given book ID:
// Available ("0") or the holding member's ID. The ID must be in range.
func (s *Store) AvailabilityOf(bookID int) (string, error) {
	records, err := s.Load()
	if err != nil {
		return "", err
	}
	if bookID < 1 || bookID > len(records) {
		return "", errorOutOfRange(bookID, len(records))
	}
	return records[bookID-1].HeldBy, nil
}

// SetAvailability rewrites the catalog with the one record's holder
// field changed. holder is Available ("0") on return, or the member ID
// on checkout. The rewrite is atomic: a failed write leaves the prior
// file contents in place.
func (s *Store) SetAvailability(bookID int, holder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load()
	if err != nil {
		return err
	}
	if bookID < 1 || bookID > len(records) {
		return errorOutOfRange(bookID, len(records))
	}

	records[bookID-1].HeldBy = holder

	if err := s.rewrite(records); err != nil {
		return err
	}

	s.log.Debugw("catalog availability updated",
		"book_id", bookID,
		"holder", holder)
	return nil
}

// rewrite serializes all records and replaces the catalog file.
// Callers must hold s.mu.
func (s *Store) rewrite(records []Record) error {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = formatRecord(rec)
	}
	return textfile.AtomicWrite(s.path, strings.Join(lines, "\n"))
}

func errorOutOfRange(bookID, size int) error {
	return errors.Wrapf(errors.ErrInvalidBookID, "book ID %d out of range [1, %d]", bookID, size)
}
