package tradeoff

import (
	"math"
	"testing"
)

func allSliders(v float64) FactorSliders {
	return FactorSliders{First: v, Second: v, Third: v}
}

func TestWeightedScoreAllSlidersFull(t *testing.T) {
	prefs := Preferences{
		Economic:      allSliders(100),
		Quality:       allSliders(100),
		Environmental: allSliders(100),
	}
	scores := CategoryScores{Economic: 80, Quality: 65, Environmental: 90}

	got := WeightedScore(scores, prefs)
	want := 80.0 + 65.0 + 90.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("WeightedScore = %v, want %v", got, want)
	}
}

func TestWeightedScoreZeroCategoryContributesNothing(t *testing.T) {
	prefs := Preferences{
		Economic:      allSliders(100),
		Quality:       allSliders(0),
		Environmental: allSliders(100),
	}
	with := WeightedScore(CategoryScores{Economic: 50, Quality: 99, Environmental: 50}, prefs)
	without := WeightedScore(CategoryScores{Economic: 50, Quality: 1, Environmental: 50}, prefs)
	if with != without {
		t.Errorf("quality score leaked into composite: %v != %v", with, without)
	}
}

func TestWeightedScoreNormalized(t *testing.T) {
	prefs := Preferences{
		Economic:      allSliders(100),
		Quality:       allSliders(100),
		Environmental: allSliders(100),
		Normalize:     true,
	}
	got := WeightedScore(CategoryScores{Economic: 60, Quality: 60, Environmental: 60}, prefs)
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("normalized composite = %v, want 60", got)
	}
}

func TestWeightedScoreMixedSliders(t *testing.T) {
	prefs := Preferences{
		Economic:      FactorSliders{First: 90, Second: 60, Third: 30}, // mean 60 -> 0.6
		Quality:       allSliders(50),                                  // 0.5
		Environmental: allSliders(0),
	}
	got := WeightedScore(CategoryScores{Economic: 100, Quality: 80, Environmental: 70}, prefs)
	want := 100*0.6 + 80*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("WeightedScore = %v, want %v", got, want)
	}
}

func TestWeightedScoreNaNPropagates(t *testing.T) {
	prefs := Preferences{Economic: allSliders(100)}
	got := WeightedScore(CategoryScores{Economic: math.NaN()}, prefs)
	if !math.IsNaN(got) {
		t.Errorf("expected NaN composite, got %v", got)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestOptimizeConstraintBoundaryInclusive(t *testing.T) {
	econScores := []float64{78, 82, 75, 90, 70, 81, 69.9}
	suppliers := make([]SupplierScores, len(econScores))
	for i, s := range econScores {
		suppliers[i] = SupplierScores{
			SupplierID: "sup-" + string(rune('a'+i)),
			Scores:     CategoryScores{Economic: s, Quality: 50, Environmental: 50},
		}
	}
	prefs := Preferences{Economic: allSliders(100), Quality: allSliders(100), Environmental: allSliders(100)}

	got := Optimize(suppliers, prefs, Constraints{MinEconomicScore: floatPtr(70)})
	if len(got) != 6 {
		t.Fatalf("got %d suppliers, want 6", len(got))
	}
	for _, r := range got {
		if r.Scores.Economic < 70 {
			t.Errorf("supplier %s with economic score %v passed minEconomicScore 70", r.SupplierID, r.Scores.Economic)
		}
	}
}

func TestOptimizeSortsDescending(t *testing.T) {
	suppliers := []SupplierScores{
		{SupplierID: "sup-low", Scores: CategoryScores{Economic: 70}},
		{SupplierID: "sup-high", Scores: CategoryScores{Economic: 90}},
	}
	prefs := Preferences{Economic: allSliders(100)}

	got := Optimize(suppliers, prefs, Constraints{})
	if got[0].SupplierID != "sup-high" || got[1].SupplierID != "sup-low" {
		t.Errorf("order = [%s %s], want [sup-high sup-low]", got[0].SupplierID, got[1].SupplierID)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Composite < got[i].Composite {
			t.Errorf("composites not descending at %d: %v < %v", i, got[i-1].Composite, got[i].Composite)
		}
	}
}

func TestOptimizeStableOnTies(t *testing.T) {
	suppliers := []SupplierScores{
		{SupplierID: "sup-first", Scores: CategoryScores{Economic: 80}},
		{SupplierID: "sup-second", Scores: CategoryScores{Economic: 80}},
	}
	got := Optimize(suppliers, Preferences{Economic: allSliders(100)}, Constraints{})
	if got[0].SupplierID != "sup-first" {
		t.Errorf("tie broke input order: got %s first", got[0].SupplierID)
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	suppliers := []SupplierScores{
		{SupplierID: "b", Scores: CategoryScores{Economic: 10}},
		{SupplierID: "a", Scores: CategoryScores{Economic: 90}},
	}
	Optimize(suppliers, Preferences{Economic: allSliders(100)}, Constraints{})
	if suppliers[0].SupplierID != "b" {
		t.Error("input slice was reordered")
	}
}

func TestOptimizeGradientDescentWeightsSumToOne(t *testing.T) {
	suppliers := []SupplierScores{
		{SupplierID: "sup-1", Scores: CategoryScores{Economic: 90, Quality: 50, Environmental: 40}},
		{SupplierID: "sup-2", Scores: CategoryScores{Economic: 85, Quality: 60, Environmental: 30}},
		{SupplierID: "sup-3", Scores: CategoryScores{Economic: 30, Quality: 90, Environmental: 80}},
		{SupplierID: "sup-4", Scores: CategoryScores{Economic: 20, Quality: 40, Environmental: 95}},
		{SupplierID: "sup-5", Scores: CategoryScores{Economic: 60, Quality: 60, Environmental: 60}},
	}
	ranked, weights := OptimizeGradientDescent(suppliers, Constraints{})
	if len(ranked) != len(suppliers) {
		t.Fatalf("got %d ranked, want %d", len(ranked), len(suppliers))
	}
	sum := weights.Economic + weights.Quality + weights.Environmental
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("tuned weights sum to %v, want 1", sum)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Composite < ranked[i].Composite {
			t.Errorf("composites not descending at %d", i)
		}
	}
}

func TestOptimizeGradientDescentRespectsConstraints(t *testing.T) {
	suppliers := []SupplierScores{
		{SupplierID: "sup-ok", Scores: CategoryScores{Economic: 80, Quality: 80, Environmental: 80}},
		{SupplierID: "sup-bad", Scores: CategoryScores{Economic: 80, Quality: 40, Environmental: 80}},
	}
	ranked, _ := OptimizeGradientDescent(suppliers, Constraints{MinQualityScore: floatPtr(70)})
	if len(ranked) != 1 || ranked[0].SupplierID != "sup-ok" {
		t.Errorf("constraint filter failed: %+v", ranked)
	}
}

func TestOptimizeGradientDescentEmptyInput(t *testing.T) {
	ranked, weights := OptimizeGradientDescent(nil, Constraints{})
	if len(ranked) != 0 {
		t.Errorf("expected empty result, got %d", len(ranked))
	}
	if weights.Economic != 0.4 || weights.Quality != 0.3 || weights.Environmental != 0.3 {
		t.Errorf("weights moved with no data: %+v", weights)
	}
}
