package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func searchFixture(t *testing.T) *Store {
	t.Helper()
	return newTestStore(t,
		"1, Sci-Fi, Dune, Frank Herbert, 13/1/2020, 0",
		"2, Fantasy, The Lord of the Rings, J.R.R. Tolkien, 1/3/2019, coai",
		"3, Fantasy, The Hobbit, J.R.R. Tolkien, 7/9/2018, 0",
		"4, Sci-Fi, Dune, Frank Herbert, 2/2/2021, 0",
	)
}

func TestSearchByTitle(t *testing.T) {
	store := searchFixture(t)

	tests := []struct {
		name      string
		substring string
		wantIDs   []int
	}{
		{
			name:      "case-insensitive substring",
			substring: "dUnE",
			wantIDs:   []int{1, 4},
		},
		{
			name:      "common word",
			substring: "the",
			wantIDs:   []int{2, 3},
		},
		{
			name:      "empty matches everything",
			substring: "",
			wantIDs:   []int{1, 2, 3, 4},
		},
		{
			name:      "no hits",
			substring: "234",
			wantIDs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []int
			for _, rec := range store.SearchByTitle(tt.substring) {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearchByID(t *testing.T) {
	store := searchFixture(t)

	rec, err := store.SearchByID(3)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", rec.Title)

	_, err = store.SearchByID(25)
	require.Error(t, err)
}

func TestGenres(t *testing.T) {
	store := searchFixture(t)
	assert.Equal(t, []string{"Sci-Fi", "Fantasy"}, store.Genres())
}

func TestGenresEmptyCatalog(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop().Sugar())
	assert.Empty(t, store.Genres())
}

func TestHasTitle(t *testing.T) {
	store := searchFixture(t)

	assert.True(t, store.HasTitle("the lord of the rings"))
	assert.True(t, store.HasTitle("Dune"))
	assert.False(t, store.HasTitle("horrid henry"))
	// Containment is not enough; the whole title must match.
	assert.False(t, store.HasTitle("Lord of the Rings"))
}
