package utils

import (
	"math"
	"sort"
)

// AnalyticsEngine provides the statistical functions behind the
// dashboard rollups
type AnalyticsEngine struct{}

func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{}
}

// KPIMetrics represents key performance indicators
type KPIMetrics struct {
	CurrentValue   float64 `json:"current_value"`
	PreviousValue  float64 `json:"previous_value"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"change_percent"`
	Trend          string  `json:"trend"`  // up, down, stable
	Status         string  `json:"status"` // good, warning, critical
	Target         float64 `json:"target,omitempty"`
	TargetProgress float64 `json:"target_progress,omitempty"`
}

// StatisticalSummary provides statistical analysis
type StatisticalSummary struct {
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
}

// CalculateKPI calculates KPI metrics with trend analysis
func (ae *AnalyticsEngine) CalculateKPI(currentValue, previousValue, target float64) *KPIMetrics {
	kpi := &KPIMetrics{
		CurrentValue:  currentValue,
		PreviousValue: previousValue,
		Target:        target,
	}

	kpi.Change = currentValue - previousValue
	if previousValue != 0 {
		kpi.ChangePercent = (kpi.Change / previousValue) * 100
	}

	if kpi.Change > 0 {
		kpi.Trend = "up"
	} else if kpi.Change < 0 {
		kpi.Trend = "down"
	} else {
		kpi.Trend = "stable"
	}

	if target != 0 {
		kpi.TargetProgress = (currentValue / target) * 100
		if kpi.TargetProgress >= 100 {
			kpi.Status = "good"
		} else if kpi.TargetProgress >= 70 {
			kpi.Status = "warning"
		} else {
			kpi.Status = "critical"
		}
	} else {
		if kpi.Trend == "up" {
			kpi.Status = "good"
		} else if kpi.Trend == "down" {
			kpi.Status = "warning"
		} else {
			kpi.Status = "stable"
		}
	}

	return kpi
}

// CalculateStatistics calculates a statistical summary of values
func (ae *AnalyticsEngine) CalculateStatistics(values []float64) *StatisticalSummary {
	if len(values) == 0 {
		return nil
	}

	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	summary := &StatisticalSummary{Count: len(values)}

	for _, v := range values {
		summary.Sum += v
	}
	summary.Mean = summary.Sum / float64(summary.Count)

	summary.Min = sortedValues[0]
	summary.Max = sortedValues[len(sortedValues)-1]
	summary.Range = summary.Max - summary.Min

	summary.Median = ae.calculatePercentile(sortedValues, 50)

	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - summary.Mean
		sumSquaredDiff += diff * diff
	}
	summary.Variance = sumSquaredDiff / float64(summary.Count)
	summary.StdDev = math.Sqrt(summary.Variance)

	summary.Q1 = ae.calculatePercentile(sortedValues, 25)
	summary.Q3 = ae.calculatePercentile(sortedValues, 75)
	summary.IQR = summary.Q3 - summary.Q1

	return summary
}

// calculatePercentile expects sorted values; interpolates between ranks
func (ae *AnalyticsEngine) calculatePercentile(sorted []float64, percentile float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (percentile / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
