package report

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

var testToday = time.Date(2021, time.November, 22, 0, 0, 0, 0, time.UTC)

// newEvaluator writes the two files in a temp dir and wires an
// evaluator with the standard 60-day threshold.
func newEvaluator(t *testing.T, catalogLines, ledgerLines []string) *Evaluator {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(catalogPath, []byte(strings.Join(catalogLines, "\n")), 0o644))
	ledgerPath := filepath.Join(dir, "logfile.txt")
	require.NoError(t, os.WriteFile(ledgerPath, []byte(strings.Join(ledgerLines, "\n")), 0o644))

	log := zap.NewNop().Sugar()
	return NewEvaluator(
		catalog.NewStore(catalogPath, log),
		ledger.NewStore(ledgerPath, log),
		60,
		log,
	)
}

func reportFixture(t *testing.T) *Evaluator {
	return newEvaluator(t,
		[]string{
			"1, Sci-Fi, Dune, Frank Herbert, 13/1/2020, coai",
			"2, Fantasy, The Lord of the Rings, J.R.R. Tolkien, 1/3/2019, mglk",
			"3, Fantasy, The Hobbit, J.R.R. Tolkien, 7/9/2018, coai",
		},
		[]string{
			"1, coai, 1/9/2021, -",   // 82 days out: overdue by 22
			"2, mglk, 22/9/2021, -",  // 61 days out: overdue by 1
			"3, coai, 1/11/2021, -",  // 21 days out: not overdue
		},
	)
}

func TestOverdue(t *testing.T) {
	rows, err := reportFixture(t).Overdue(testToday, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		BookID:       1,
		Title:        "Dune",
		MemberID:     "coai",
		CheckoutDate: "1/9/2021",
		DaysOverdue:  22,
	}, rows[0])

	assert.Equal(t, 2, rows[1].BookID)
	assert.Equal(t, "The Lord of the Rings", rows[1].Title)
	assert.Equal(t, 1, rows[1].DaysOverdue)
}

func TestOverdueFilters(t *testing.T) {
	evaluator := reportFixture(t)

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{
			name:    "by member",
			filter:  Filter{MemberID: "coai"},
			wantIDs: []int{1},
		},
		{
			name:    "by title substring case-insensitive",
			filter:  Filter{TitleSubstring: "rings"},
			wantIDs: []int{2},
		},
		{
			name:    "member and title together",
			filter:  Filter{MemberID: "mglk", TitleSubstring: "dune"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := evaluator.Overdue(testToday, tt.filter)
			require.NoError(t, err)
			var ids []int
			for _, row := range rows {
				ids = append(ids, row.BookID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestOverdueByMember(t *testing.T) {
	evaluator := reportFixture(t)

	rows, err := evaluator.OverdueByMember("mglk", testToday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].BookID)

	_, err = evaluator.OverdueByMember("12mn", testToday)
	assert.True(t, errors.Is(err, errors.ErrInvalidMemberID))
}

func TestOverdueByBook(t *testing.T) {
	evaluator := reportFixture(t)

	row, err := evaluator.OverdueByBook(1, testToday)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 22, row.DaysOverdue)

	// Book 3 is on loan but not past the threshold.
	row, err = evaluator.OverdueByBook(3, testToday)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestOverdueMissingLedger(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(catalogPath, []byte("1, Sci-Fi, Dune, Frank Herbert, 13/1/2020, 0"), 0o644))

	log := zap.NewNop().Sugar()
	evaluator := NewEvaluator(
		catalog.NewStore(catalogPath, log),
		ledger.NewStore(filepath.Join(dir, "missing.txt"), log),
		60,
		log,
	)

	// Fail-open: a missing ledger reports no overdue loans.
	rows, err := evaluator.Overdue(testToday, Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOverdueUnknownBookSkipped(t *testing.T) {
	evaluator := newEvaluator(t,
		[]string{"1, Sci-Fi, Dune, Frank Herbert, 13/1/2020, coai"},
		[]string{
			"1, coai, 1/9/2021, -",
			"9, mglk, 1/9/2021, -", // no catalog record
		},
	)

	rows, err := evaluator.Overdue(testToday, Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].BookID)
}
