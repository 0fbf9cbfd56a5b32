package district

import "github.com/shopspring/decimal"

// StateTotals is the state-wide roll-up shown on the dashboard home:
// additive folds over every district's summary row plus the mean
// work-completion rate.
type StateTotals struct {
	TotalHouseholds   float64 `json:"total_households"`
	TotalPersonDays   float64 `json:"total_person_days"`
	TotalExpenditure  float64 `json:"total_expenditure"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
}

// Aggregate combines per-district summary rows into state-wide totals.
// Expenditure is money (Lakhs), so it is summed in fixed-point rather
// than accumulating float error across 75 districts. Empty input yields
// the zero value; there is no division by zero to trip over.
func Aggregate(rows []SummaryRow) StateTotals {
	if len(rows) == 0 {
		return StateTotals{}
	}

	var totals StateTotals
	expenditure := decimal.Zero
	rateSum := 0.0

	for _, row := range rows {
		totals.TotalHouseholds += row.TotalHouseholds
		totals.TotalPersonDays += row.TotalPersonDays
		expenditure = expenditure.Add(decimal.NewFromFloat(row.TotalExpenditure))
		rateSum += row.AvgWorkCompletionRate
	}

	totals.TotalExpenditure, _ = expenditure.Float64()
	totals.AvgCompletionRate = rateSum / float64(len(rows))
	return totals
}
