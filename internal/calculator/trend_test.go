package calculator

import "testing"

func TestChangePercent(t *testing.T) {
	tests := []struct {
		current, previous, want float64
	}{
		{110, 100, 10},
		{90, 100, -10},
		{100, 0, 0}, // zero previous means no change, not infinity
		{0, 100, -100},
	}
	for _, tt := range tests {
		if got := ChangePercent(tt.current, tt.previous); got != tt.want {
			t.Errorf("ChangePercent(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		change float64
		want   Trend
	}{
		{10, TrendUp},
		{-10, TrendDown},
		{2, TrendStable},
		{-2, TrendStable},
		{5, TrendStable},  // band is exclusive
		{-5, TrendStable},
		{5.1, TrendUp},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.change); got != tt.want {
			t.Errorf("ClassifyTrend(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   Trend
	}{
		{"empty", nil, TrendStable},
		{"single", []float64{5}, TrendStable},
		{"rising", []float64{100, 110}, TrendUp},
		{"falling", []float64{100, 90}, TrendDown},
		{"flat", []float64{100, 102}, TrendStable},
	}
	for _, tt := range tests {
		if got := TrendOf(tt.series); got != tt.want {
			t.Errorf("%s: TrendOf() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
