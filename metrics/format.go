/*
Package metrics provides display formatting and trend derivation for
MGNREGA performance numbers.

PURPOSE:
  Converts raw metric values into the strings citizens actually read:
  Indian-number-system abbreviations (Crore/Lakh/thousand), Rupee amounts,
  fixed-decimal percentages, and readable month labels. Also derives
  trend direction and percentage change between two reporting periods.

KEY CONCEPTS IN THIS FILE (format.go):
  - Nullable inputs: values come from sparse upstream data, so every
    formatter takes *float64. nil means "no data" and renders as "-".
    Zero is real data and renders as "0"; the two are never conflated.
  - Fixed-point rounding: abbreviations use decimal.StringFixed so
    12,345,678 is always "1.23 Cr", independent of float representation.

DESIGN PRINCIPLES:
  1. Formatters never fail. Bad input degrades to a placeholder string;
     a formatting problem must never surface as a crash to the end user.
  2. Pure functions, no state, no locale machinery beyond Indian grouping.

SEE ALSO:
  - trend.go: Trend direction and percentage change
  - labels.go: Bilingual (Hindi/English) dashboard vocabulary
*/
package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Indian number system thresholds.
const (
	crore    = 1e7
	lakh     = 1e5
	thousand = 1e3
)

// missingValue is rendered whenever a metric has no data.
const missingValue = "-"

// Num wraps a concrete value for the nullable formatter signatures.
func Num(v float64) *float64 { return &v }

// FormatIndianNumber renders a value using Crore/Lakh/thousand
// abbreviations. nil renders as "-"; zero is a legitimate value and
// renders as "0".
//
//	FormatIndianNumber(Num(12345678)) == "1.23 Cr"
//	FormatIndianNumber(Num(150000))   == "1.50 L"
//	FormatIndianNumber(Num(2500))     == "2.50 K"
//	FormatIndianNumber(Num(0))        == "0"
//	FormatIndianNumber(nil)           == "-"
func FormatIndianNumber(v *float64) string {
	if v == nil {
		return missingValue
	}

	abs := *v
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= crore:
		return scaled(*v, crore) + " Cr"
	case abs >= lakh:
		return scaled(*v, lakh) + " L"
	case abs >= thousand:
		return scaled(*v, thousand) + " K"
	}

	return groupIndian(*v)
}

// FormatCurrency renders a Rupee amount with the same abbreviation and
// nil-vs-zero rules as FormatIndianNumber.
func FormatCurrency(v *float64) string {
	if v == nil {
		return missingValue
	}
	return "₹" + FormatIndianNumber(v)
}

// FormatPercentage renders a fixed-decimal percentage. decimals < 0 is
// treated as the conventional single decimal place.
func FormatPercentage(v *float64, decimals int) string {
	if v == nil {
		return missingValue
	}
	if decimals < 0 {
		decimals = 1
	}
	return decimal.NewFromFloat(*v).StringFixed(int32(decimals)) + "%"
}

// FormatMonth converts a "YYYY-MM" month key into "Jan 2006" form.
// Malformed keys and out-of-range months render as "-" rather than
// panicking on bad upstream data.
func FormatMonth(monthKey string) string {
	year, month, ok := splitMonthKey(monthKey)
	if !ok {
		return missingValue
	}
	return fmt.Sprintf("%s %d", monthNamesEN[month-1], year)
}

// FormatMonthHindi is FormatMonth with the Hindi month name.
func FormatMonthHindi(monthKey string) string {
	year, month, ok := splitMonthKey(monthKey)
	if !ok {
		return missingValue
	}
	return fmt.Sprintf("%s %d", monthNamesHI[month-1], year)
}

// splitMonthKey parses "YYYY-MM" and validates the month range.
func splitMonthKey(monthKey string) (year, month int, ok bool) {
	parts := strings.SplitN(monthKey, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// scaled divides by the unit and formats with exactly two decimals.
func scaled(v, unit float64) string {
	return decimal.NewFromFloat(v).Div(decimal.NewFromFloat(unit)).StringFixed(2)
}

// groupIndian formats a small value with Indian digit grouping: the last
// three digits form one group, every two digits after that another
// (12,34,567). Values below the thousand threshold only ever need the
// plain form, but grouping is kept correct for any integer.
func groupIndian(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}

	if neg {
		s = "-" + s
	}
	return s
}
