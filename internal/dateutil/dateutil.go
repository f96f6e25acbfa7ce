// Package dateutil handles the dd/mm/yyyy calendar dates used by the
// catalog and ledger files. Day counts are calendar-date arithmetic:
// time of day never matters.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oakview/circulate/errors"
)

// ParseDMY parses a dd/mm/yyyy date. Day and month may omit leading
// zeros; the historical files contain both forms.
func ParseDMY(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, errors.Newf("malformed date %q: want dd/mm/yyyy", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "malformed day in date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "malformed month in date %q", s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "malformed year in date %q", s)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values (32/01 becomes 01/02);
	// reject anything that did not survive the round trip.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, errors.Newf("invalid calendar date %q", s)
	}
	return t, nil
}

// FormatDMY renders a date as zero-padded dd/mm/yyyy, the form used
// for all newly written dates.
func FormatDMY(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), t.Month(), t.Year())
}

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from 'from' to
// 'to'. Both are truncated to their calendar dates first.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}
