package catalog

import (
	"strconv"
	"strings"

	"github.com/oakview/circulate/errors"
)

// Available is the sentinel holder value for a book that is not on loan.
const Available = "0"

// Record is one catalog slot. The book ID is the record's 1-based
// position in the catalog file.
type Record struct {
	ID     int
	Genre  string
	Title  string
	Author string

	// PurchaseDate is kept as the raw dd/mm/yyyy text from the file so
	// that rewriting the catalog reproduces it byte for byte; the
	// historical data mixes padded and unpadded day/month fields.
	PurchaseDate string

	// HeldBy is Available ("0") or the holding member's ID.
	HeldBy string

	// rawID is the book ID text as stored in the file, or "" when the
	// line relies on its position alone. Preserved for round-tripping.
	rawID string
}

// OnLoan reports whether the record is currently held by a member.
func (r Record) OnLoan() bool {
	return r.HeldBy != Available
}

// parseRecord parses one catalog line. Lines carry either five fields
// (genre, title, author, purchase date, holder) or six with a leading
// book ID that must match the line's position.
func parseRecord(line string, position int) (Record, error) {
	fields := strings.Split(line, ", ")

	rec := Record{ID: position}
	switch len(fields) {
	case 5:
		rec.Genre = fields[0]
		rec.Title = fields[1]
		rec.Author = fields[2]
		rec.PurchaseDate = fields[3]
		rec.HeldBy = fields[4]
	case 6:
		rec.rawID = fields[0]
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return Record{}, errors.Wrapf(err, "catalog line %d: malformed book ID %q", position, fields[0])
		}
		if id != position {
			return Record{}, errors.Newf("catalog line %d: stored book ID %d does not match position", position, id)
		}
		rec.Genre = fields[1]
		rec.Title = fields[2]
		rec.Author = fields[3]
		rec.PurchaseDate = fields[4]
		rec.HeldBy = fields[5]
	default:
		return Record{}, errors.Newf("catalog line %d: want 5 or 6 fields, got %d", position, len(fields))
	}

	return rec, nil
}

// formatRecord renders a record back into its file line, including the
// stored book ID only if the source line carried one.
func formatRecord(r Record) string {
	fields := make([]string, 0, 6)
	if r.rawID != "" {
		fields = append(fields, r.rawID)
	}
	fields = append(fields, r.Genre, r.Title, r.Author, r.PurchaseDate, r.HeldBy)
	return strings.Join(fields, ", ")
}
