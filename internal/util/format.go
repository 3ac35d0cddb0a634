package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "—"
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, date); err != nil {
			return date
		}
	}
	return t.Format("Jan 02, 2006")
}

// FormatTime formats a timestamp as a calendar date, or "—" when unset.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a day relative to now.
// "Today", "Yesterday", "Tomorrow", "3 days ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	today := StartOfDay(now)
	day := StartOfDay(t.In(now.Location()))
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days == -1:
		return "Tomorrow"
	case days > 1 && days < 7, days < -1 && days > -7:
		return humanize.RelTime(day, today, "ago", "from now")
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatUpdated renders how long ago a resource was refreshed.
func FormatUpdated(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatPoints renders a points total with thousands separators.
func FormatPoints(n int) string {
	return humanize.Comma(int64(n)) + " pts"
}

// FormatOrdinal renders a leaderboard rank (1st, 2nd, ...).
func FormatOrdinal(n int) string {
	return humanize.Ordinal(n)
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var dateInputLayouts = []string{
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"01/02/2006",
	"2 Jan 2006",
}

// ParseDay parses flexible user input into a calendar day in loc.
func ParseDay(input string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format")
}

// ParseDateInput parses flexible user input and normalizes to ISO (YYYY-MM-DD).
// Empty input is allowed and returns "".
func ParseDateInput(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	t, err := ParseDay(input, time.Local)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
