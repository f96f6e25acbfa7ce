// Package recommend scores and ranks catalog titles for a member.
//
// The score of a book starts at 1 plus its total historical loan
// count, then is multiplied up for matching the member's favourite
// genre and for being newly purchased, or zeroed when the member has
// already read it. Books sharing a title are collapsed into one row
// whose score absorbs the duplicates'. The result is the top titles by
// descending score.
package recommend

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakview/circulate/catalog"
	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/internal/dateutil"
	"github.com/oakview/circulate/ledger"
)

// Options tunes one recommendation request.
type Options struct {
	// Count is the maximum number of titles to return.
	Count int

	// NewnessDays is the purchase-date window within which a book
	// counts as new.
	NewnessDays int

	// NewnessWeight multiplies the score of new books; GenreWeight
	// multiplies the score of favourite-genre books. A book that is
	// both gets multiplied by their sum, not their product.
	NewnessWeight float64
	GenreWeight   float64

	// Genre overrides the member's inferred favourite genre when
	// non-empty. An override absent from the catalog simply matches
	// nothing; it is not an error.
	Genre string

	// IncludeRead keeps books the member has already borrowed in the
	// ranking. When false they are scored zero but still occupy their
	// slot until deduplication.
	IncludeRead bool
}

// Ranking is the result: parallel slices of scores and titles in
// descending score order.
type Ranking struct {
	Scores []float64
	Titles []string
}

// Engine computes recommendations from the two stores, reading only.
type Engine struct {
	catalog *catalog.Store
	ledger  *ledger.Store
	log     *zap.SugaredLogger
}

// NewEngine wires an engine over the two stores.
func NewEngine(cat *catalog.Store, led *ledger.Store, log *zap.SugaredLogger) *Engine {
	return &Engine{catalog: cat, ledger: led, log: log}
}

// Recommend ranks titles for the member as of today.
//
// A member with no loan history (and no genre override) falls back to
// the popularity-and-newness ranking over the whole catalog: the genre
// and already-read rules are skipped because there is no history to
// apply them to.
func (e *Engine) Recommend(memberID string, today time.Time, opts Options) (Ranking, error) {
	if !catalog.ValidateMemberID(memberID) {
		return Ranking{}, errors.Wrapf(errors.ErrInvalidMemberID, "member ID %q", memberID)
	}

	records := e.catalog.LoadOrEmpty()
	entries := e.ledger.LoadOrEmpty()

	scores := e.popularity(records, entries)

	favouriteGenre := opts.Genre
	haveHistory := true
	if favouriteGenre == "" {
		inferred, err := e.favouriteGenre(memberID, records, entries)
		switch {
		case errors.Is(err, errors.ErrNoLoanHistory):
			haveHistory = false
		case err != nil:
			return Ranking{}, err
		default:
			favouriteGenre = inferred
		}
	}

	for i, rec := range records {
		isNew := e.isNew(rec, today, opts.NewnessDays)

		if !haveHistory {
			// Popularity-and-newness fallback.
			if isNew {
				scores[i] *= opts.NewnessWeight
			}
			continue
		}

		matchesGenre := strings.EqualFold(rec.Genre, favouriteGenre)

		switch {
		case !opts.IncludeRead && wasRead(entries, memberID, rec.ID):
			scores[i] = 0
		case matchesGenre && isNew:
			scores[i] *= opts.GenreWeight + opts.NewnessWeight
		case matchesGenre:
			scores[i] *= opts.GenreWeight
		case isNew:
			scores[i] *= opts.NewnessWeight
		}
	}

	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}

	scores, titles = dedupTitles(scores, titles)
	sortRanking(scores, titles)

	if opts.Count >= 0 && opts.Count < len(titles) {
		scores = scores[:opts.Count]
		titles = titles[:opts.Count]
	}

	return Ranking{Scores: scores, Titles: titles}, nil
}

// FavouriteGenre infers the member's favourite genre from their loan
// history. Returns ErrNoLoanHistory for a member with no entries.
func (e *Engine) FavouriteGenre(memberID string) (string, error) {
	if !catalog.ValidateMemberID(memberID) {
		return "", errors.Wrapf(errors.ErrInvalidMemberID, "member ID %q", memberID)
	}
	return e.favouriteGenre(memberID, e.catalog.LoadOrEmpty(), e.ledger.LoadOrEmpty())
}

// popularity returns the base score per catalog slot: 1 plus the
// book's total loan count. The floor of 1 keeps never-borrowed books
// rankable once weights are applied.
func (e *Engine) popularity(records []catalog.Record, entries []ledger.Entry) []float64 {
	scores := make([]float64, len(records))
	for i := range scores {
		scores[i] = 1
	}
	for _, entry := range entries {
		if entry.BookID < 1 || entry.BookID > len(records) {
			e.log.Warnw("ledger entry references unknown book, skipping",
				"book_id", entry.BookID,
				"catalog_size", len(records))
			continue
		}
		scores[entry.BookID-1]++
	}
	return scores
}

// favouriteGenre finds the most frequent genre among the member's
// loans, scanning newest to oldest. Ties resolve toward the genre seen
// earliest in that scan, i.e. the member's most recent borrowing.
func (e *Engine) favouriteGenre(memberID string, records []catalog.Record, entries []ledger.Entry) (string, error) {
	var genres []string
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].MemberID != memberID {
			continue
		}
		bookID := entries[i].BookID
		if bookID < 1 || bookID > len(records) {
			e.log.Warnw("ledger entry references unknown book, skipping",
				"book_id", bookID,
				"catalog_size", len(records))
			continue
		}
		genres = append(genres, records[bookID-1].Genre)
	}

	if len(genres) == 0 {
		return "", errors.Wrapf(errors.ErrNoLoanHistory, "member %s", memberID)
	}

	counts := make(map[string]int, len(genres))
	for _, g := range genres {
		counts[g]++
	}

	best := genres[0]
	for _, g := range genres {
		if counts[g] > counts[best] {
			best = g
		}
	}
	return best, nil
}

// isNew reports whether the book was purchased within the newness
// window ending today. An unparseable purchase date counts as not new.
func (e *Engine) isNew(rec catalog.Record, today time.Time, newnessDays int) bool {
	purchased, err := dateutil.ParseDMY(rec.PurchaseDate)
	if err != nil {
		e.log.Warnw("malformed purchase date, treating book as not new",
			"book_id", rec.ID,
			"purchase_date", rec.PurchaseDate)
		return false
	}
	return dateutil.DaysBetween(purchased, today) <= newnessDays
}

// wasRead reports whether the member has any ledger entry, open or
// closed, for the book.
func wasRead(entries []ledger.Entry, memberID string, bookID int) bool {
	for _, entry := range entries {
		if entry.MemberID == memberID && entry.BookID == bookID {
			return true
		}
	}
	return false
}

// dedupTitles collapses books sharing an identical title: the
// first-occurring title absorbs the scores of every later duplicate,
// and the duplicates are dropped from the result entirely.
func dedupTitles(scores []float64, titles []string) ([]float64, []string) {
	firstIndex := make(map[string]int, len(titles))
	keep := make([]bool, len(titles))

	for i, title := range titles {
		first, seen := firstIndex[title]
		if !seen {
			firstIndex[title] = i
			keep[i] = true
			continue
		}
		scores[first] += scores[i]
	}

	outScores := make([]float64, 0, len(titles))
	outTitles := make([]string, 0, len(titles))
	for i := range titles {
		if keep[i] {
			outScores = append(outScores, scores[i])
			outTitles = append(outTitles, titles[i])
		}
	}
	return outScores, outTitles
}

// sortRanking orders both slices by descending score, breaking ties by
// descending title. The title tie-break mirrors the historical
// composite-key sort and keeps the ordering deterministic.
func sortRanking(scores []float64, titles []string) {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return titles[i] > titles[j]
	})

	sortedScores := make([]float64, len(scores))
	sortedTitles := make([]string, len(titles))
	for pos, i := range idx {
		sortedScores[pos] = scores[i]
		sortedTitles[pos] = titles[i]
	}
	copy(scores, sortedScores)
	copy(titles, sortedTitles)
}
