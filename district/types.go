/*
Package district holds the domain model for MGNREGA district performance
data and the pure logic derived from it: state-wide aggregation,
multi-district comparison, and month-key ordering.

PURPOSE:
  One district reports one PerformanceRecord per month. The dashboard
  consumes these as newest-first time series, per-district SummaryRows,
  and bounded comparison bundles. Everything here is plain data and
  stateless computation; persistence and transport live elsewhere.

KEY CONCEPTS:
  - District:          Immutable reference data keyed by district_code.
  - PerformanceRecord: One district-month of program metrics.
  - SummaryRow:        Latest-month roll-up per district (derived, not
                       persisted; recomputed on each load).
  - ComparisonBundle:  district_code -> newest-first record series for a
                       user-selected subset of at most four districts.

INVARIANTS:
  - district_code uniquely identifies a district in every collection.
  - person_days_generated is the denominator for every participation
    share and is always division-guarded.
  - Month keys are "YYYY-MM", so lexical order is chronological order.

SEE ALSO:
  - aggregate.go: State-wide totals from summary rows
  - compare.go:   Bounded selection and per-metric maxima
  - months.go:    Month-key generation and ordering
*/
package district

import "time"

// District is backend-ingested reference data, read-only here.
type District struct {
	ID           int64  `json:"id"`
	StateCode    string `json:"state_code"`
	StateName    string `json:"state_name"`
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
}

// PerformanceRecord is one district-month of reported metrics.
// Expenditure is in Lakhs; work_completion_rate is a percentage.
type PerformanceRecord struct {
	ID           int64  `json:"id"`
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
	Month        string `json:"month"` // YYYY-MM
	Year         int    `json:"year"`

	TotalHouseholdsIssuedJobcards float64 `json:"total_households_issued_jobcards"`
	HouseholdsCompleted100Days    float64 `json:"households_completed_100days"`
	TotalWorksTakenup             float64 `json:"total_works_takenup"`
	TotalWorksCompleted           float64 `json:"total_works_completed"`
	TotalExpenditure              float64 `json:"total_expenditure"`
	PersonDaysGenerated           float64 `json:"person_days_generated"`
	AvgDaysPerHousehold           float64 `json:"avg_days_per_household"`
	WorkCompletionRate            float64 `json:"work_completion_rate"`
	SCPersonDays                  float64 `json:"sc_persondays"`
	STPersonDays                  float64 `json:"st_persondays"`
	WomenPersonDays               float64 `json:"women_persondays"`

	FetchedAt time.Time `json:"fetched_at"`
}

// ParticipationShare is a demographic slice of total person-days,
// as a percentage. Zero-safe: no person-days means a zero share.
func (r PerformanceRecord) ParticipationShare(persondays float64) float64 {
	if r.PersonDaysGenerated == 0 {
		return 0
	}
	return persondays / r.PersonDaysGenerated * 100
}

// WomenShare is the women-worked share of generated person-days.
func (r PerformanceRecord) WomenShare() float64 {
	return r.ParticipationShare(r.WomenPersonDays)
}

// SCShare is the Scheduled Caste share of generated person-days.
func (r PerformanceRecord) SCShare() float64 {
	return r.ParticipationShare(r.SCPersonDays)
}

// STShare is the Scheduled Tribe share of generated person-days.
func (r PerformanceRecord) STShare() float64 {
	return r.ParticipationShare(r.STPersonDays)
}

// SummaryRow is the latest-month roll-up for one district.
// TotalHouseholds exists only on summaries; it is not a
// PerformanceRecord field.
type SummaryRow struct {
	DistrictCode          string  `json:"district_code"`
	DistrictName          string  `json:"district_name"`
	LatestMonth           string  `json:"latest_month"`
	TotalPersonDays       float64 `json:"total_person_days"`
	TotalExpenditure      float64 `json:"total_expenditure"`
	AvgWorkCompletionRate float64 `json:"avg_work_completion_rate"`
	TotalHouseholds       float64 `json:"total_households"`
}

// ComparisonBundle maps district codes to their newest-first series.
type ComparisonBundle map[string][]PerformanceRecord
