package catalog

import "strings"

// SearchByTitle returns every record whose title contains the given
// substring, case-insensitively. An empty substring matches the whole
// catalog. Search is fail-open: an unreadable catalog yields no hits.
func (s *Store) SearchByTitle(substring string) []Record {
	needle := strings.ToLower(substring)

	var matches []Record
	for _, rec := range s.LoadOrEmpty() {
		if strings.Contains(strings.ToLower(rec.Title), needle) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// SearchByID returns the record with the given book ID.
func (s *Store) SearchByID(bookID int) (Record, error) {
	records, err := s.Load()
	if err != nil {
		return Record{}, err
	}
	if bookID < 1 || bookID > len(records) {
		return Record{}, errorOutOfRange(bookID, len(records))
	}
	return records[bookID-1], nil
}

// Genres returns each distinct genre the library owns, in catalog
// order of first appearance.
func (s *Store) Genres() []string {
	var genres []string
	seen := make(map[string]bool)
	for _, rec := range s.LoadOrEmpty() {
		if !seen[rec.Genre] {
			seen[rec.Genre] = true
			genres = append(genres, rec.Genre)
		}
	}
	return genres
}

// HasTitle reports whether any catalog record has exactly this title,
// ignoring case.
func (s *Store) HasTitle(title string) bool {
	for _, rec := range s.LoadOrEmpty() {
		if strings.EqualFold(rec.Title, title) {
			return true
		}
	}
	return false
}
