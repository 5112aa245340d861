package utils

import (
	"math"
	"testing"
)

func TestCalculateKPI(t *testing.T) {
	ae := NewAnalyticsEngine()

	tests := []struct {
		name       string
		current    float64
		previous   float64
		target     float64
		wantTrend  string
		wantStatus string
	}{
		{"growth against met target", 120, 100, 110, "up", "good"},
		{"decline without target", 80, 100, 0, "down", "warning"},
		{"flat without target", 100, 100, 0, "stable", "stable"},
		{"far below target", 30, 20, 100, "up", "critical"},
		{"near target", 75, 70, 100, "up", "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpi := ae.CalculateKPI(tt.current, tt.previous, tt.target)
			if kpi.Trend != tt.wantTrend {
				t.Errorf("trend = %q, want %q", kpi.Trend, tt.wantTrend)
			}
			if kpi.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", kpi.Status, tt.wantStatus)
			}
		})
	}
}

func TestCalculateKPIChangePercent(t *testing.T) {
	ae := NewAnalyticsEngine()
	kpi := ae.CalculateKPI(150, 100, 0)
	if math.Abs(kpi.ChangePercent-50) > 1e-9 {
		t.Errorf("change percent = %v, want 50", kpi.ChangePercent)
	}

	// Zero previous value must not divide by zero.
	kpi = ae.CalculateKPI(150, 0, 0)
	if kpi.ChangePercent != 0 {
		t.Errorf("change percent with zero base = %v, want 0", kpi.ChangePercent)
	}
}

func TestCalculateStatistics(t *testing.T) {
	ae := NewAnalyticsEngine()

	s := ae.CalculateStatistics([]float64{4, 1, 3, 2, 5})
	if s == nil {
		t.Fatal("nil summary")
	}
	if s.Count != 5 || s.Sum != 15 || s.Mean != 3 {
		t.Errorf("count/sum/mean = %d/%v/%v", s.Count, s.Sum, s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("median = %v, want 3", s.Median)
	}
	if s.Min != 1 || s.Max != 5 || s.Range != 4 {
		t.Errorf("min/max/range = %v/%v/%v", s.Min, s.Max, s.Range)
	}
	if math.Abs(s.Variance-2) > 1e-9 {
		t.Errorf("variance = %v, want 2", s.Variance)
	}
	if s.IQR != s.Q3-s.Q1 {
		t.Errorf("IQR = %v, want %v", s.IQR, s.Q3-s.Q1)
	}
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	ae := NewAnalyticsEngine()
	if s := ae.CalculateStatistics(nil); s != nil {
		t.Errorf("expected nil for empty input, got %+v", s)
	}
}
