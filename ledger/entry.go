package ledger

import (
	"strconv"
	"strings"

	"github.com/oakview/circulate/errors"
)

// Open is the sentinel return-date value for a loan that has not been
// returned yet.
const Open = "-"

// Entry is one checkout event. The ledger file is ordered oldest to
// newest, one entry per line.
type Entry struct {
	BookID   int
	MemberID string

	// CheckoutDate and ReturnDate keep the raw dd/mm/yyyy text from
	// the file (ReturnDate is Open while the loan is outstanding), so
	// rewriting the ledger reproduces it byte for byte.
	CheckoutDate string
	ReturnDate   string
}

// IsOpen reports whether the loan is still outstanding.
func (e Entry) IsOpen() bool {
	return e.ReturnDate == Open
}

// parseEntry parses one ledger line:
// book_id, member_id, checkout_date, return_date.
func parseEntry(line string, position int) (Entry, error) {
	fields := strings.Split(line, ", ")
	if len(fields) != 4 {
		return Entry{}, errors.Newf("ledger line %d: want 4 fields, got %d", position, len(fields))
	}

	bookID, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, errors.Wrapf(err, "ledger line %d: malformed book ID %q", position, fields[0])
	}

	return Entry{
		BookID:       bookID,
		MemberID:     fields[1],
		CheckoutDate: fields[2],
		ReturnDate:   fields[3],
	}, nil
}

// formatEntry renders an entry back into its file line.
func formatEntry(e Entry) string {
	return strings.Join([]string{
		strconv.Itoa(e.BookID),
		e.MemberID,
		e.CheckoutDate,
		e.ReturnDate,
	}, ", ")
}
