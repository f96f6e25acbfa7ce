// Package report is the read-only overdue evaluator: it joins open,
// past-threshold ledger entries against the catalog to produce rows a
// librarian can act on. Nothing here mutates either store.
package report

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakview/circulate/catalog"
	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/internal/dateutil"
	"github.com/oakview/circulate/ledger"
)

// Row is one overdue loan joined with its catalog record. DaysOverdue
// is the day count past the threshold, strictly positive.
type Row struct {
	BookID       int
	Title        string
	MemberID     string
	CheckoutDate string
	DaysOverdue  int
}

// Filter narrows the overdue report. Zero values mean no filtering.
type Filter struct {
	// MemberID keeps only loans held by this member.
	MemberID string
	// TitleSubstring keeps only books whose title contains this text,
	// case-insensitively.
	TitleSubstring string
}

// Evaluator computes overdue reports from the two stores.
type Evaluator struct {
	catalog       *catalog.Store
	ledger        *ledger.Store
	thresholdDays int
	log           *zap.SugaredLogger
}

// NewEvaluator wires an evaluator over the two stores. thresholdDays
// is the loan period; a loan is overdue strictly after that many
// calendar days.
func NewEvaluator(cat *catalog.Store, led *ledger.Store, thresholdDays int, log *zap.SugaredLogger) *Evaluator {
	return &Evaluator{catalog: cat, ledger: led, thresholdDays: thresholdDays, log: log}
}

// Overdue returns the overdue rows as of today, oldest loan first
// (ledger order), narrowed by the filter.
func (e *Evaluator) Overdue(today time.Time, filter Filter) ([]Row, error) {
	entries, err := e.ledger.OverdueEntries(today, e.thresholdDays)
	if err != nil {
		if errors.IsStoreUnavailable(err) {
			// Fail-open read contract: a missing ledger reports no
			// overdue loans. The warning is already logged upstream.
			return nil, nil
		}
		return nil, err
	}

	records := e.catalog.LoadOrEmpty()
	needle := strings.ToLower(filter.TitleSubstring)

	var rows []Row
	for _, entry := range entries {
		if filter.MemberID != "" && entry.MemberID != filter.MemberID {
			continue
		}

		if entry.BookID < 1 || entry.BookID > len(records) {
			e.log.Warnw("overdue ledger entry references unknown book, skipping",
				"book_id", entry.BookID,
				"catalog_size", len(records))
			continue
		}
		title := records[entry.BookID-1].Title

		if needle != "" && !strings.Contains(strings.ToLower(title), needle) {
			continue
		}

		days, err := e.daysOverdue(entry, today)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{
			BookID:       entry.BookID,
			Title:        title,
			MemberID:     entry.MemberID,
			CheckoutDate: entry.CheckoutDate,
			DaysOverdue:  days,
		})
	}
	return rows, nil
}

// OverdueByMember returns the overdue rows held by one member. The
// member ID must be well-formed.
func (e *Evaluator) OverdueByMember(memberID string, today time.Time) ([]Row, error) {
	if !catalog.ValidateMemberID(memberID) {
		return nil, errors.Wrapf(errors.ErrInvalidMemberID, "member ID %q", memberID)
	}
	return e.Overdue(today, Filter{MemberID: memberID})
}

// OverdueByBook returns the overdue row for one book, or nil if that
// book is not overdue.
func (e *Evaluator) OverdueByBook(bookID int, today time.Time) (*Row, error) {
	rows, err := e.Overdue(today, Filter{})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].BookID == bookID {
			return &rows[i], nil
		}
	}
	return nil, nil
}

func (e *Evaluator) daysOverdue(entry ledger.Entry, today time.Time) (int, error) {
	checkout, err := dateutil.ParseDMY(entry.CheckoutDate)
	if err != nil {
		return 0, errors.Wrapf(err, "ledger entry for book %d", entry.BookID)
	}
	return dateutil.DaysBetween(checkout, today) - e.thresholdDays, nil
}
