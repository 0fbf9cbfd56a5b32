package dashboard

import (
	"github.com/gramseva/district-pulse/district"
	"github.com/gramseva/district-pulse/metrics"
)

// MetricTrend is one stat card's movement since the previous month.
// Change is nil when either month is missing or zero.
type MetricTrend struct {
	Direction metrics.Trend
	Change    *float64
}

// Trends covers the four tracked detail-page metrics.
type Trends struct {
	Households  MetricTrend
	PersonDays  MetricTrend
	Expenditure MetricTrend
	Works       MetricTrend
}

// Detail is the loaded district detail view: reference info, the
// newest-first history, and month-over-month trends when at least two
// months exist.
type Detail struct {
	District district.District
	History  []district.PerformanceRecord

	// Trends is nil with fewer than two months of data; the view
	// renders without indicators rather than failing.
	Trends *Trends
}

// NewDetail assembles a Detail from fetched parts. History is assumed
// newest-first (the client enforces it).
func NewDetail(d district.District, history []district.PerformanceRecord) *Detail {
	detail := &Detail{District: d, History: history}

	if len(history) >= 2 {
		latest, previous := history[0], history[1]
		detail.Trends = &Trends{
			Households:  trendOf(latest.TotalHouseholdsIssuedJobcards, previous.TotalHouseholdsIssuedJobcards),
			PersonDays:  trendOf(latest.PersonDaysGenerated, previous.PersonDaysGenerated),
			Expenditure: trendOf(latest.TotalExpenditure, previous.TotalExpenditure),
			Works:       trendOf(latest.TotalWorksCompleted, previous.TotalWorksCompleted),
		}
	}

	return detail
}

// Latest returns the newest record, or nil with no history.
func (d *Detail) Latest() *district.PerformanceRecord {
	if len(d.History) == 0 {
		return nil
	}
	return &d.History[0]
}

// ChartSeries returns the history oldest-first, the order charts render.
func (d *Detail) ChartSeries() []district.PerformanceRecord {
	return district.Chronological(d.History)
}

func trendOf(current, previous float64) MetricTrend {
	return MetricTrend{
		Direction: metrics.GetTrend(&current, &previous),
		Change:    metrics.GetPercentageChange(&current, &previous),
	}
}
