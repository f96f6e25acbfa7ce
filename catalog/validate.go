package catalog

import "strconv"

// ValidateMemberID reports whether id is a well-formed member ID:
// exactly four characters, all lowercase ASCII letters.
func ValidateMemberID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 'a' || id[i] > 'z' {
			return false
		}
	}
	return true
}

// ValidateBookID reports whether id is a well-formed book ID for this
// catalog: digit-only (no sign characters) and within [1, size]. An
// unreadable catalog has size zero, so nothing validates against it.
func (s *Store) ValidateBookID(id string) bool {
	n, ok := parseBookID(id)
	if !ok {
		return false
	}
	size, err := s.Size()
	if err != nil {
		s.log.Warnw("catalog unreadable during book ID validation",
			"path", s.path,
			"error", err)
		return false
	}
	return n >= 1 && n <= size
}

// parseBookID parses a digit-only positive integer. Unlike
// strconv.Atoi it rejects sign characters and whitespace.
func parseBookID(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}
