package district_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/district-pulse/district"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func personDaysRecord(code, month string, personDays float64) district.PerformanceRecord {
	return district.PerformanceRecord{
		DistrictCode:        code,
		Month:               month,
		PersonDaysGenerated: personDays,
	}
}

func personDaysMetric() district.Metric {
	for _, m := range district.DefaultMetrics() {
		if m.Key == "person_days_generated" {
			return m
		}
	}
	panic("person_days_generated metric missing")
}

// =============================================================================
// SELECTION BOUNDS
// =============================================================================

func TestSelection_AddBeyondFourIsNoOp(t *testing.T) {
	// GIVEN: A selection already at the four-district bound
	sel := district.NewSelection()
	for _, code := range []string{"0901", "0902", "0903", "0904"} {
		assert.True(t, sel.Add(code))
	}

	// WHEN: Adding a fifth district
	changed := sel.Add("0905")

	// THEN: The selection is silently unchanged
	assert.False(t, changed)
	assert.Equal(t, []string{"0901", "0902", "0903", "0904"}, sel.Codes())
}

func TestSelection_DuplicateAddIsNoOp(t *testing.T) {
	sel := district.NewSelection()
	assert.True(t, sel.Add("0949"))
	assert.False(t, sel.Add("0949"))
	assert.Equal(t, 1, sel.Len())
}

func TestSelection_RemoveEvictsBundleEntry(t *testing.T) {
	// GIVEN: Districts A and B selected with cached series
	sel := district.NewSelection()
	sel.Add("0949")
	sel.Add("0975")
	sel.SetBundle(district.ComparisonBundle{
		"0949": {personDaysRecord("0949", "2025-08", 100)},
		"0975": {personDaysRecord("0975", "2025-08", 200)},
	})

	// WHEN: Removing A
	sel.Remove("0949")

	// THEN: Only B remains in both the selection and the bundle
	assert.Equal(t, []string{"0975"}, sel.Codes())
	_, ok := sel.Bundle()["0949"]
	assert.False(t, ok, "removed district must not leave an orphaned bundle entry")
	_, ok = sel.Bundle()["0975"]
	assert.True(t, ok)
}

func TestSelection_SetBundleDropsUnselectedCodes(t *testing.T) {
	sel := district.NewSelection()
	sel.Add("0949")

	sel.SetBundle(district.ComparisonBundle{
		"0949": {personDaysRecord("0949", "2025-08", 100)},
		"0999": {personDaysRecord("0999", "2025-08", 999)},
	})

	_, ok := sel.Bundle()["0999"]
	assert.False(t, ok, "bundle must stay restricted to the selected codes")
}

// =============================================================================
// MAXIMUM AND TIE DETECTION
// =============================================================================

func TestBuildComparison_TiesFlagAllMatches(t *testing.T) {
	// GIVEN: Three districts whose latest person-days are 500, 500, 300
	sel := district.NewSelection()
	sel.Add("0901")
	sel.Add("0902")
	sel.Add("0903")
	sel.SetBundle(district.ComparisonBundle{
		"0901": {personDaysRecord("0901", "2025-08", 500)},
		"0902": {personDaysRecord("0902", "2025-08", 500)},
		"0903": {personDaysRecord("0903", "2025-08", 300)},
	})

	// WHEN: Building the comparison for person-days
	rows := district.BuildComparison(sel, []district.Metric{personDaysMetric()})
	require.Len(t, rows, 1)
	cells := rows[0].Cells
	require.Len(t, cells, 3)

	// THEN: Both 500s carry the badge, the 300 does not
	assert.True(t, cells[0].Highest)
	assert.True(t, cells[1].Highest)
	assert.False(t, cells[2].Highest)
}

func TestBuildComparison_MissingDataDecoupled(t *testing.T) {
	// A district with no series counts as 0 for the max computation but
	// still displays "-", never "0".
	sel := district.NewSelection()
	sel.Add("0901")
	sel.Add("0902")
	sel.SetBundle(district.ComparisonBundle{
		"0901": {personDaysRecord("0901", "2025-08", 500)},
	})

	rows := district.BuildComparison(sel, []district.Metric{personDaysMetric()})
	require.Len(t, rows, 1)
	cells := rows[0].Cells
	require.Len(t, cells, 2)

	assert.True(t, cells[0].HasData)
	assert.True(t, cells[0].Highest)

	assert.False(t, cells[1].HasData)
	assert.Equal(t, "-", cells[1].Display)
	assert.Equal(t, 0.0, cells[1].Value)
	assert.False(t, cells[1].Highest)
}

func TestBuildComparison_AllZeroFlagsNobody(t *testing.T) {
	sel := district.NewSelection()
	sel.Add("0901")
	sel.Add("0902")
	sel.SetBundle(district.ComparisonBundle{
		"0901": {personDaysRecord("0901", "2025-08", 0)},
		"0902": {personDaysRecord("0902", "2025-08", 0)},
	})

	rows := district.BuildComparison(sel, []district.Metric{personDaysMetric()})
	for _, cell := range rows[0].Cells {
		assert.False(t, cell.Highest, "a maximum of zero earns no badge")
	}
}

func TestBuildComparison_UsesLatestRecord(t *testing.T) {
	// The first element of the newest-first series is "latest".
	sel := district.NewSelection()
	sel.Add("0901")
	sel.SetBundle(district.ComparisonBundle{
		"0901": {
			personDaysRecord("0901", "2025-08", 700),
			personDaysRecord("0901", "2025-07", 100),
		},
	})

	rows := district.BuildComparison(sel, []district.Metric{personDaysMetric()})
	assert.Equal(t, 700.0, rows[0].Cells[0].Value)
}

func TestDefaultMetrics_FormattersAttached(t *testing.T) {
	ms := district.DefaultMetrics()
	require.Len(t, ms, 5)

	rec := district.PerformanceRecord{
		TotalHouseholdsIssuedJobcards: 150000,
		PersonDaysGenerated:           12345678,
		TotalExpenditure:              100000,
		TotalWorksCompleted:           2500,
		WorkCompletionRate:            72.5,
	}

	want := []string{"1.50 L", "1.23 Cr", "₹1.00 L", "2.50 K", "72.5%"}
	for i, m := range ms {
		v := m.Extract(rec)
		assert.Equal(t, want[i], m.Format(&v), m.Key)
	}
}
