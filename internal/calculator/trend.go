package calculator

// Trend classifies the direction of a metric between two periods.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendBand is the percent change beyond which a trend is no longer stable.
const trendBand = 5.0

// ChangePercent returns the percent change from previous to current.
// A zero previous value yields 0 rather than a division blowup.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// ClassifyTrend maps a percent change onto a trend: more than +5% is up,
// less than -5% is down, anything between is stable.
func ClassifyTrend(changePercent float64) Trend {
	switch {
	case changePercent > trendBand:
		return TrendUp
	case changePercent < -trendBand:
		return TrendDown
	default:
		return TrendStable
	}
}

// TrendOf compares the last value of a series against the one before it.
// Series shorter than 2 are stable.
func TrendOf(series []float64) Trend {
	if len(series) < 2 {
		return TrendStable
	}
	current := series[len(series)-1]
	previous := series[len(series)-2]
	return ClassifyTrend(ChangePercent(current, previous))
}

// Mean returns the arithmetic mean of the series, 0 when empty.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
