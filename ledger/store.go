// Package ledger owns the loan log of the library: the chronological
// record of every checkout and return. Checkout appends an open entry;
// return closes the first open entry for the book. The invariant that
// at most one entry per book is open at a time is maintained by the
// circulation layer, which refuses to check out a book already on loan.
package ledger

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/internal/dateutil"
	"github.com/oakview/circulate/internal/textfile"
)

// Store reads and mutates the ledger file. Mutations are serialized
// through a single exclusive lock; reads always hit the file.
type Store struct {
	path string
	mu   sync.Mutex
	log  *zap.SugaredLogger
}

// NewStore creates a ledger store backed by the file at path.
func NewStore(path string, log *zap.SugaredLogger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all entries in file order, oldest first. An unreadable
// file yields a wrapped ErrStoreUnavailable.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "reading ledger %s: %v", s.path, err)
	}

	var entries []Entry
	for i, line := range textfile.SplitLines(string(data)) {
		entry, err := parseEntry(line, i+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadOrEmpty is the fail-open read used by report and recommendation
// paths: an unreadable ledger degrades to an empty one, with the
// failure logged rather than silently swallowed.
func (s *Store) LoadOrEmpty() []Entry {
	entries, err := s.Load()
	if err != nil {
		s.log.Warnw("ledger unreadable, treating as empty",
			"path", s.path,
			"error", err)
		return nil
	}
	return entries
}

// AppendOpenEntry appends a new open loan entry for the given book and
// member with checkout date 'today'. This is a pure append: prior
// entries are untouched.
func (s *Store) AppendOpenEntry(bookID int, memberID string, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := formatEntry(Entry{
		BookID:       bookID,
		MemberID:     memberID,
		CheckoutDate: dateutil.FormatDMY(today),
		ReturnDate:   Open,
	})

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(errors.ErrPersistence, "opening ledger %s for append: %v", s.path, err)
	}
	defer f.Close()

	// The ledger carries no trailing newline, so every appended entry
	// starts with one — except the very first entry in an empty file.
	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(errors.ErrPersistence, "stat ledger %s: %v", s.path, err)
	}
	if info.Size() > 0 {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		return errors.Wrapf(errors.ErrPersistence, "appending to ledger %s: %v", s.path, err)
	}

	s.log.Debugw("loan entry appended",
		"book_id", bookID,
		"member_id", memberID)
	return nil
}

// CloseOpenEntry sets the return date of the first open entry for the
// given book to 'today' and rewrites the ledger. When no open entry
// exists the ledger is rewritten unchanged; that is a no-op write, not
// an error.
func (s *Store) CloseOpenEntry(bookID int, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Load()
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].BookID == bookID && entries[i].IsOpen() {
			entries[i].ReturnDate = dateutil.FormatDMY(today)
			s.log.Debugw("loan entry closed",
				"book_id", bookID,
				"member_id", entries[i].MemberID)
			break
		}
	}

	return s.rewrite(entries)
}

// OverdueEntries returns every open entry checked out strictly more
// than thresholdDays calendar days before today. Day counts compare
// calendar dates; time of day is irrelevant.
func (s *Store) OverdueEntries(today time.Time, thresholdDays int) ([]Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	var overdue []Entry
	for _, entry := range entries {
		if !entry.IsOpen() {
			continue
		}
		checkout, err := dateutil.ParseDMY(entry.CheckoutDate)
		if err != nil {
			return nil, errors.Wrapf(err, "ledger entry for book %d", entry.BookID)
		}
		if dateutil.DaysBetween(checkout, today) > thresholdDays {
			overdue = append(overdue, entry)
		}
	}
	return overdue, nil
}

// rewrite serializes all entries and replaces the ledger file.
// Callers must hold s.mu.
func (s *Store) rewrite(entries []Entry) error {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = formatEntry(entry)
	}
	return textfile.AtomicWrite(s.path, strings.Join(lines, "\n"))
}
