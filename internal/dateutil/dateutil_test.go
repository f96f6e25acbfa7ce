package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMY(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "zero padded",
			input: "05/01/2020",
			want:  time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "unpadded day and month",
			input: "13/1/2020",
			want:  time.Date(2020, time.January, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "too few fields",
			input:   "13/2020",
			wantErr: true,
		},
		{
			name:    "non-numeric day",
			input:   "aa/01/2020",
			wantErr: true,
		},
		{
			name:    "day out of range",
			input:   "32/01/2020",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "01/13/2020",
			wantErr: true,
		},
		{
			name:    "not a leap day",
			input:   "29/02/2021",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDMY(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDMY(t *testing.T) {
	d := time.Date(2021, time.March, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "04/03/2021", FormatDMY(d))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2021, time.November, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2021, time.November, 2, 0, 1, 0, 0, time.UTC)

	// Calendar dates differ by one day even though barely two minutes
	// of wall time elapsed.
	assert.Equal(t, 1, DaysBetween(from, to))
	assert.Equal(t, -1, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))

	a := time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 61, DaysBetween(a, b))
}
