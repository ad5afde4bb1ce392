package core

import (
	"time"
)

// MonthKey identifies one calendar month as a YYYY-MM string. The zero-padded
// month makes lexicographic order chronological.
type MonthKey string

// ParseMonthKey validates a raw YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", ErrInvalidMonthKey
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the key for the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// Time returns midnight UTC on the first day of the month. Invalid keys
// collapse to the zero time.
func (k MonthKey) Time() time.Time {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Label renders the display label for trend charts, e.g. "Jan 2024".
func (k MonthKey) Label() string {
	t := k.Time()
	if t.IsZero() {
		return string(k)
	}
	return t.Format("Jan 2006")
}

// DatePrefix returns the prefix shared by all YYYY-MM-DD dates in the month.
func (k MonthKey) DatePrefix() string {
	return string(k) + "-"
}

// Next returns the following month's key.
func (k MonthKey) Next() MonthKey {
	return MonthKeyOf(k.Time().AddDate(0, 1, 0))
}

// Window returns the n consecutive month keys ending at end, oldest first.
// This is the trend window shape: Window("2024-06", 6) starts at "2024-01".
func Window(end MonthKey, n int) []MonthKey {
	if n <= 0 {
		return nil
	}
	endTime := end.Time()
	keys := make([]MonthKey, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, MonthKeyOf(endTime.AddDate(0, -i, 0)))
	}
	return keys
}
