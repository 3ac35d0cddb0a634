package validate

import (
	"slices"
	"strings"
	"time"

	"greenpath/internal/util"
)

// Pickup date messages.
const (
	MsgDateRequired = "Please select a date for pickup"
	MsgDateFormat   = "Please enter the date as YYYY-MM-DD"
	MsgDatePast     = "Pickup date cannot be in the past"
	MsgDateSunday   = "Pickup is not available on Sundays"
)

// PickupDate requires a parseable day that is today or later and is not a
// Sunday. Days are compared in the location of now().
func PickupDate[T any](field string, get func(T) string, now func() time.Time) Rule[T] {
	if now == nil {
		now = time.Now
	}
	return func(v T) Errors {
		raw := strings.TrimSpace(get(v))
		if raw == "" {
			return Errors{field: MsgDateRequired}
		}
		clock := now()
		day, err := util.ParseDay(raw, clock.Location())
		if err != nil {
			return Errors{field: MsgDateFormat}
		}
		if day.Before(util.StartOfDay(clock)) {
			return Errors{field: MsgDatePast}
		}
		if day.Weekday() == time.Sunday {
			return Errors{field: MsgDateSunday}
		}
		return nil
	}
}

// Choice requires the field value to be one of options. Empty values are
// left to the field's own required check.
func Choice[T any](field string, get func(T) string, options []string, msg string) Rule[T] {
	return func(v T) Errors {
		val := get(v)
		if val == "" || slices.Contains(options, val) {
			return nil
		}
		return Errors{field: msg}
	}
}
