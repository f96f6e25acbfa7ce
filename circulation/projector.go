// Package circulation implements the checkout and return transitions
// that keep the catalog's availability field consistent with the loan
// ledger. Each book is a two-state machine: AVAILABLE (holder "0", no
// open ledger entry) or ON_LOAN (holder is the member ID of exactly
// one open entry).
package circulation

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/oakview/circulate/catalog"
	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/ledger"
)

// Projector applies checkout and return transitions against the
// catalog and ledger stores.
type Projector struct {
	catalog *catalog.Store
	ledger  *ledger.Store
	log     *zap.SugaredLogger
}

// NewProjector wires a projector over the two stores.
func NewProjector(cat *catalog.Store, led *ledger.Store, log *zap.SugaredLogger) *Projector {
	return &Projector{catalog: cat, ledger: led, log: log}
}

// Checkout lends the book to the member, dated today.
//
// Validation order matters and is part of the contract: member ID
// format first (ErrInvalidMemberID), then book ID (ErrInvalidBookID),
// then availability (ErrBookUnavailable). On success the ledger entry
// is appended before the catalog holder is updated; a crash between
// the two leaves an open entry for a book still marked available,
// which the next checkout attempt surfaces as ErrBookUnavailable only
// after the catalog is repaired. This gap is inherent to the
// two-file model and is why both writes sit behind the store locks.
func (p *Projector) Checkout(bookID, memberID string, today time.Time) error {
	if !catalog.ValidateMemberID(memberID) {
		return errors.Wrapf(errors.ErrInvalidMemberID, "member ID %q", memberID)
	}
	if !p.catalog.ValidateBookID(bookID) {
		return errors.Wrapf(errors.ErrInvalidBookID, "book ID %q", bookID)
	}

	id := mustBookID(bookID)

	holder, err := p.catalog.AvailabilityOf(id)
	if err != nil {
		return err
	}
	if holder != catalog.Available {
		return errors.Wrapf(errors.ErrBookUnavailable, "book %d is held by member %s", id, holder)
	}

	if err := p.ledger.AppendOpenEntry(id, memberID, today); err != nil {
		return err
	}
	if err := p.catalog.SetAvailability(id, memberID); err != nil {
		return err
	}

	p.log.Infow("book checked out",
		"book_id", id,
		"member_id", memberID)
	return nil
}

// Return takes the book back, dated today. Returning a book that is
// already available yields ErrAlreadyAvailable and leaves the ledger
// untouched; callers treat it as an idempotent no-op signal.
func (p *Projector) Return(bookID string, today time.Time) error {
	if !p.catalog.ValidateBookID(bookID) {
		return errors.Wrapf(errors.ErrInvalidBookID, "book ID %q", bookID)
	}

	id := mustBookID(bookID)

	holder, err := p.catalog.AvailabilityOf(id)
	if err != nil {
		return err
	}
	if holder == catalog.Available {
		return errors.Wrapf(errors.ErrAlreadyAvailable, "book %d", id)
	}

	if err := p.ledger.CloseOpenEntry(id, today); err != nil {
		return err
	}
	if err := p.catalog.SetAvailability(id, catalog.Available); err != nil {
		return err
	}

	p.log.Infow("book returned",
		"book_id", id,
		"member_id", holder)
	return nil
}

// mustBookID converts a book ID that already passed ValidateBookID.
func mustBookID(id string) int {
	n, _ := strconv.Atoi(id)
	return n
}
