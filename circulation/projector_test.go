package circulation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakview/circulate/catalog"
	"github.com/oakview/circulate/errors"
	"github.com/oakview/circulate/ledger"
)

type fixture struct {
	projector *Projector
	catalog   *catalog.Store
	ledger    *ledger.Store
}

// newFixture writes catalog and ledger files in a temp dir and wires a
// projector over them.
func newFixture(t *testing.T, catalogLines, ledgerLines []string) fixture {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(catalogPath, []byte(strings.Join(catalogLines, "\n")), 0o644))
	ledgerPath := filepath.Join(dir, "logfile.txt")
	require.NoError(t, os.WriteFile(ledgerPath, []byte(strings.Join(ledgerLines, "\n")), 0o644))

	log := zap.NewNop().Sugar()
	cat := catalog.NewStore(catalogPath, log)
	led := ledger.NewStore(ledgerPath, log)
	return fixture{
		projector: NewProjector(cat, led, log),
		catalog:   cat,
		ledger:    led,
	}
}

func defaultCatalog() []string {
	return []string{
		"1, Sci-Fi, Dune, Frank Herbert, 13/1/2020, 0",
		"2, Fantasy, The Hobbit, J.R.R. Tolkien, 7/9/2018, 0",
		"3, Crime, Knives Out, Rian Johnson, 05/06/2021, mglk",
	}
}

var testToday = time.Date(2021, time.November, 22, 14, 0, 0, 0, time.UTC)

func TestCheckout(t *testing.T) {
	f := newFixture(t, defaultCatalog(), []string{"3, mglk, 1/9/2021, -"})

	require.NoError(t, f.projector.Checkout("1", "coai", testToday))

	// Catalog now shows the holder.
	holder, err := f.catalog.AvailabilityOf(1)
	require.NoError(t, err)
	assert.Equal(t, "coai", holder)

	// Exactly one new open entry was appended.
	entries, err := f.ledger.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.Entry{
		BookID:       1,
		MemberID:     "coai",
		CheckoutDate: "22/11/2021",
		ReturnDate:   ledger.Open,
	}, entries[1])
}

func TestCheckoutUnavailable(t *testing.T) {
	f := newFixture(t, defaultCatalog(), []string{"3, mglk, 1/9/2021, -"})

	// Book 3 is already on loan to mglk.
	err := f.projector.Checkout("3", "coai", testToday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBookUnavailable))

	// A second checkout of a freshly lent book fails the same way.
	require.NoError(t, f.projector.Checkout("1", "coai", testToday))
	err = f.projector.Checkout("1", "wxyz", testToday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBookUnavailable))

	// The failed attempts appended nothing.
	entries, err := f.ledger.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCheckoutValidationOrder(t *testing.T) {
	f := newFixture(t, defaultCatalog(), nil)

	// Member ID is checked before book ID.
	err := f.projector.Checkout("100", "12mn", testToday)
	assert.True(t, errors.Is(err, errors.ErrInvalidMemberID))

	err = f.projector.Checkout("100", "coai", testToday)
	assert.True(t, errors.Is(err, errors.ErrInvalidBookID))

	err = f.projector.Checkout("1o", "coai", testToday)
	assert.True(t, errors.Is(err, errors.ErrInvalidBookID))
}

func TestReturn(t *testing.T) {
	f := newFixture(t, defaultCatalog(), []string{
		"3, coai, 1/1/2021, 5/1/2021",
		"3, mglk, 1/9/2021, -",
	})

	require.NoError(t, f.projector.Return("3", testToday))

	holder, err := f.catalog.AvailabilityOf(3)
	require.NoError(t, err)
	assert.Equal(t, catalog.Available, holder)

	// The earliest open entry for the book was closed; the already
	// returned one is untouched.
	entries, err := f.ledger.Load()
	require.NoError(t, err)
	assert.Equal(t, "5/1/2021", entries[0].ReturnDate)
	assert.Equal(t, "22/11/2021", entries[1].ReturnDate)
}

func TestReturnAlreadyAvailable(t *testing.T) {
	ledgerLines := []string{"3, mglk, 1/9/2021, -"}
	f := newFixture(t, defaultCatalog(), ledgerLines)

	err := f.projector.Return("1", testToday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyAvailable))

	// No-op on the ledger.
	entries, err := f.ledger.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.Open, entries[0].ReturnDate)
}

func TestReturnInvalidBookID(t *testing.T) {
	f := newFixture(t, defaultCatalog(), nil)

	err := f.projector.Return("abc", testToday)
	assert.True(t, errors.Is(err, errors.ErrInvalidBookID))
}

func TestCheckoutReturnCycle(t *testing.T) {
	f := newFixture(t, defaultCatalog(), nil)

	require.NoError(t, f.projector.Checkout("2", "coai", testToday))
	require.NoError(t, f.projector.Return("2", testToday.AddDate(0, 0, 7)))
	require.NoError(t, f.projector.Checkout("2", "wxyz", testToday.AddDate(0, 0, 10)))

	holder, err := f.catalog.AvailabilityOf(2)
	require.NoError(t, err)
	assert.Equal(t, "wxyz", holder)

	entries, err := f.ledger.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsOpen())
	assert.True(t, entries[1].IsOpen())
}
