package district

import "github.com/gramseva/district-pulse/metrics"

// MaxCompareDistricts bounds the side-by-side comparison. Adding beyond
// the bound is a silent no-op, not an error.
const MaxCompareDistricts = 4

// =============================================================================
// SELECTION - Bounded, de-duplicated set of districts under comparison
// =============================================================================

// Selection tracks which districts the user is comparing and caches
// their fetched series. Single-owner view state: no locking.
type Selection struct {
	codes  []string
	bundle ComparisonBundle
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{bundle: ComparisonBundle{}}
}

// Add appends a district code. Duplicates and additions beyond
// MaxCompareDistricts are ignored; the return reports whether the
// selection changed.
func (s *Selection) Add(code string) bool {
	if code == "" || len(s.codes) >= MaxCompareDistricts {
		return false
	}
	for _, c := range s.codes {
		if c == code {
			return false
		}
	}
	s.codes = append(s.codes, code)
	return true
}

// Remove drops a district from the selection and evicts its cached
// bundle entry, so a removed district never leaves an orphan series.
func (s *Selection) Remove(code string) {
	for i, c := range s.codes {
		if c == code {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			break
		}
	}
	delete(s.bundle, code)
}

// Codes returns the selected district codes in selection order.
func (s *Selection) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len reports how many districts are selected.
func (s *Selection) Len() int { return len(s.codes) }

// SetBundle replaces the cached series, keeping only entries for codes
// still selected.
func (s *Selection) SetBundle(bundle ComparisonBundle) {
	s.bundle = ComparisonBundle{}
	for _, code := range s.codes {
		if records, ok := bundle[code]; ok {
			s.bundle[code] = records
		}
	}
}

// Bundle returns the cached comparison series.
func (s *Selection) Bundle() ComparisonBundle { return s.bundle }

// Latest returns the newest record for a code, or nil when the bundle
// has no data for it.
func (s *Selection) Latest(code string) *PerformanceRecord {
	records := s.bundle[code]
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

// =============================================================================
// METRICS - The fixed comparison rows and their formatters
// =============================================================================

// Metric is one comparison row: how to pull the value out of a record
// and how to render it.
type Metric struct {
	Key     string
	Label   metrics.Label
	Extract func(PerformanceRecord) float64
	Format  func(*float64) string
}

// DefaultMetrics is the comparison table's fixed metric list.
func DefaultMetrics() []Metric {
	pct1 := func(v *float64) string { return metrics.FormatPercentage(v, 1) }
	return []Metric{
		{
			Key:     "total_households_issued_jobcards",
			Label:   metrics.Labels["households"],
			Extract: func(r PerformanceRecord) float64 { return r.TotalHouseholdsIssuedJobcards },
			Format:  metrics.FormatIndianNumber,
		},
		{
			Key:     "person_days_generated",
			Label:   metrics.Labels["personDays"],
			Extract: func(r PerformanceRecord) float64 { return r.PersonDaysGenerated },
			Format:  metrics.FormatIndianNumber,
		},
		{
			Key:     "total_expenditure",
			Label:   metrics.Labels["expenditure"],
			Extract: func(r PerformanceRecord) float64 { return r.TotalExpenditure },
			Format:  metrics.FormatCurrency,
		},
		{
			Key:     "total_works_completed",
			Label:   metrics.Labels["works"],
			Extract: func(r PerformanceRecord) float64 { return r.TotalWorksCompleted },
			Format:  metrics.FormatIndianNumber,
		},
		{
			Key:     "work_completion_rate",
			Label:   metrics.Labels["completion"],
			Extract: func(r PerformanceRecord) float64 { return r.WorkCompletionRate },
			Format:  pct1,
		},
	}
}

// =============================================================================
// COMPARISON TABLE
// =============================================================================

// ComparisonCell is one district's latest value for one metric.
// Value holds 0 when the district has no data; Display decouples from
// that placeholder and shows "-" instead, so max-computation never
// corrupts what the user sees.
type ComparisonCell struct {
	DistrictCode string
	Value        float64
	Display      string
	HasData      bool
	Highest      bool
}

// ComparisonRow is one metric across every selected district.
type ComparisonRow struct {
	Metric Metric
	Cells  []ComparisonCell
}

// BuildComparison computes the comparison table: each district's latest
// value per metric, with every cell matching the per-metric maximum
// flagged Highest. Ties flag all matching districts; a maximum of zero
// flags nobody.
func BuildComparison(sel *Selection, metricList []Metric) []ComparisonRow {
	codes := sel.Codes()
	rows := make([]ComparisonRow, 0, len(metricList))

	for _, m := range metricList {
		row := ComparisonRow{Metric: m, Cells: make([]ComparisonCell, 0, len(codes))}

		max := 0.0
		for _, code := range codes {
			cell := ComparisonCell{DistrictCode: code, Display: "-"}
			if latest := sel.Latest(code); latest != nil {
				cell.HasData = true
				cell.Value = m.Extract(*latest)
				cell.Display = m.Format(&cell.Value)
			}
			if cell.Value > max {
				max = cell.Value
			}
			row.Cells = append(row.Cells, cell)
		}

		if max > 0 {
			for i := range row.Cells {
				if row.Cells[i].Value == max {
					row.Cells[i].Highest = true
				}
			}
		}

		rows = append(rows, row)
	}
	return rows
}
