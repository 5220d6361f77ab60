// Package month provides the year-month value type used to bucket
// transactions and expense limits, plus the strict date parsers enforced at
// the CLI boundary.
package month

import (
	"time"

	"github.com/tally-dev/tally/internal/model"
)

// Key is the canonical layout for a year-month, e.g. "2024-01".
const Key = "2006-01"

// DateKey is the canonical layout for a calendar date, e.g. "2024-01-05".
const DateKey = "2006-01-02"

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Parse parses a strict "YYYY-MM" key: four-digit year, two-digit month
// 01-12. time.Parse alone is too lenient (it accepts single-digit months),
// so the shape is checked first.
func Parse(s string) (Month, error) {
	if !wellFormed(s, len(Key)) {
		return Month{}, model.Invalidf("month", "must match YYYY-MM, got %q", s)
	}
	t, err := time.Parse(Key, s)
	if err != nil {
		return Month{}, model.Invalidf("month", "must match YYYY-MM, got %q", s)
	}
	return Of(t), nil
}

// ParseDate parses a strict "YYYY-MM-DD" calendar date. The day must be
// valid for its month and year.
func ParseDate(s string) (time.Time, error) {
	if !wellFormed(s, len(DateKey)) {
		return time.Time{}, model.Invalidf("date", "must match YYYY-MM-DD, got %q", s)
	}
	t, err := time.Parse(DateKey, s)
	if err != nil {
		return time.Time{}, model.Invalidf("date", "must match YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

// String formats the canonical "YYYY-MM" key.
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(Key)
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Compare orders months chronologically, which for canonical keys matches
// lexicographic order.
func (m Month) Compare(o Month) int {
	if m.Year != o.Year {
		if m.Year < o.Year {
			return -1
		}
		return 1
	}
	if m.Month != o.Month {
		if m.Month < o.Month {
			return -1
		}
		return 1
	}
	return 0
}

// wellFormed checks the digit/dash shape of a key: digits everywhere except
// dashes at positions 4 (and 7 for dates).
func wellFormed(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
