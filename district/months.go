package district

import (
	"fmt"
	"sort"
	"time"
)

// MonthKey formats a point in time as the "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// LastNMonths returns the n trailing month keys ending at the current
// month, newest first. Month arithmetic is anchored to the first of the
// month so short months never skip or repeat a key.
func LastNMonths(n int) []string {
	return LastNMonthsFrom(time.Now(), n)
}

// LastNMonthsFrom is LastNMonths anchored at an explicit time.
func LastNMonthsFrom(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, MonthKey(first.AddDate(0, -i, 0)))
	}
	return keys
}

// SortNewestFirst orders records by month descending, in place.
// The upstream API also delivers newest-first, but that ordering is an
// undocumented collaborator habit; callers re-sort at the boundary
// instead of trusting it.
func SortNewestFirst(records []PerformanceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month > records[j].Month
	})
}

// Chronological returns an oldest-first copy, the order charts render in.
// The input is left untouched.
func Chronological(records []PerformanceRecord) []PerformanceRecord {
	out := make([]PerformanceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}
