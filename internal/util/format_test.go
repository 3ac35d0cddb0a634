package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "", want: ""},
		{in: "2026-10-19", want: "2026-10-19"},
		{in: "Oct 19, 2026", want: "2026-10-19"},
		{in: "10/19/2026", want: "2026-10-19"},
		{in: "19 Oct 2026", want: "2026-10-19"},
		{in: "next monday", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateInput(tt.in)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", FormatDateHuman(now.Add(-time.Hour), now))
	assert.Equal(t, "Yesterday", FormatDateHuman(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Tomorrow", FormatDateHuman(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "3 days ago", FormatDateHuman(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "Jan 02", FormatDateHuman(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Jan 02 '24", FormatDateHuman(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "—", FormatDateHuman(time.Time{}, now))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "Pickup ...", TruncateString("Pickup of old furniture", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "1,250 pts", FormatPoints(1250))
	assert.Equal(t, "3rd", FormatOrdinal(3))
}
