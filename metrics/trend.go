package metrics

// Trend classifies the direction of movement between two reporting
// periods for a single metric.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// GetTrend compares the current and previous period values.
//
// A nil or zero value on either side yields neutral. Treating a
// legitimate zero the same as missing data means a genuine
// zero-to-positive jump shows no arrow; that behavior is intentional
// (a metric that is flatly zero should not generate trend noise) and is
// pinned by tests rather than silently changed.
func GetTrend(current, previous *float64) Trend {
	if current == nil || previous == nil || *current == 0 || *previous == 0 {
		return TrendNeutral
	}
	if *current > *previous {
		return TrendUp
	}
	if *current < *previous {
		return TrendDown
	}
	return TrendNeutral
}

// GetPercentageChange returns (current-previous)/previous*100, or nil
// when either input is nil or zero. The explicit previous==0 check is
// redundant with the zero check but kept as a division guard in its own
// right.
func GetPercentageChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *current == 0 || *previous == 0 {
		return nil
	}
	if *previous == 0 {
		return nil
	}
	change := (*current - *previous) / *previous * 100
	return &change
}

// Rating buckets a completion-rate percentage for at-a-glance display.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingAverage   Rating = "average"
	RatingPoor      Rating = "poor"
	RatingUnknown   Rating = "unknown"
)

// PerformanceRating maps a percentage onto the public rating scale.
// nil or zero is unknown, mirroring the zero-as-missing trend policy.
func PerformanceRating(pct *float64) Rating {
	if pct == nil || *pct == 0 {
		return RatingUnknown
	}
	switch {
	case *pct >= 80:
		return RatingExcellent
	case *pct >= 60:
		return RatingGood
	case *pct >= 40:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// Color returns the dashboard accent color for a rating.
func (r Rating) Color() string {
	switch r {
	case RatingExcellent:
		return "#28A745"
	case RatingGood:
		return "#17A2B8"
	case RatingAverage:
		return "#FFC107"
	case RatingPoor:
		return "#DC3545"
	default:
		return "#6C757D"
	}
}
