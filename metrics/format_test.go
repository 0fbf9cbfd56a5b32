package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gramseva/district-pulse/metrics"
)

// =============================================================================
// INDIAN NUMBER FORMATTING
// =============================================================================

func TestFormatIndianNumber_Abbreviations(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  string
	}{
		{"crore", 12345678, "1.23 Cr"},
		{"crore exact", 10000000, "1.00 Cr"},
		{"lakh", 150000, "1.50 L"},
		{"lakh exact", 100000, "1.00 L"},
		{"thousand", 2500, "2.50 K"},
		{"thousand exact", 1000, "1.00 K"},
		{"below thousand", 999, "999"},
		{"small", 42, "42"},
		{"negative lakh", -250000, "-2.50 L"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.FormatIndianNumber(metrics.Num(tc.value)))
		})
	}
}

func TestFormatIndianNumber_ZeroIsNotMissing(t *testing.T) {
	// Zero is real data; only a nil value means "no data".
	assert.Equal(t, "0", metrics.FormatIndianNumber(metrics.Num(0)))
	assert.Equal(t, "-", metrics.FormatIndianNumber(nil))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹1.00 L", metrics.FormatCurrency(metrics.Num(100000)))
	assert.Equal(t, "₹0", metrics.FormatCurrency(metrics.Num(0)))
	assert.Equal(t, "-", metrics.FormatCurrency(nil))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "72.5%", metrics.FormatPercentage(metrics.Num(72.52), 1))
	assert.Equal(t, "73%", metrics.FormatPercentage(metrics.Num(72.5), 0))
	assert.Equal(t, "0.0%", metrics.FormatPercentage(metrics.Num(0), 1))
	assert.Equal(t, "-", metrics.FormatPercentage(nil, 1))
}

// =============================================================================
// MONTH LABELS
// =============================================================================

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "Mar 2025", metrics.FormatMonth("2025-03"))
	assert.Equal(t, "Dec 2024", metrics.FormatMonth("2024-12"))
}

func TestFormatMonth_DefensiveOnBadInput(t *testing.T) {
	// Out-of-range or garbage month keys must degrade, not panic.
	assert.Equal(t, "-", metrics.FormatMonth("2025-13"))
	assert.Equal(t, "-", metrics.FormatMonth("2025-00"))
	assert.Equal(t, "-", metrics.FormatMonth("2025"))
	assert.Equal(t, "-", metrics.FormatMonth(""))
	assert.Equal(t, "-", metrics.FormatMonth("not-a-month"))
}

func TestFormatMonthHindi(t *testing.T) {
	assert.Equal(t, "मार्च 2025", metrics.FormatMonthHindi("2025-03"))
	assert.Equal(t, "-", metrics.FormatMonthHindi("2025-42"))
}
