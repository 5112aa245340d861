// Package tradeoff ranks suppliers by a weighted composite of their
// economic, quality and environmental category scores.
package tradeoff

import (
	"sort"
)

// FactorSliders holds the three per-factor importance sliders of one
// category, each in [0,100]. The category weight is their mean divided
// by 100.
type FactorSliders struct {
	First  float64 `json:"first"`
	Second float64 `json:"second"`
	Third  float64 `json:"third"`
}

func (f FactorSliders) weight() float64 {
	return (f.First + f.Second + f.Third) / 3 / 100
}

// Preferences carries the nine sliders grouped by category.
//
// Normalize controls the composite formula. When false the three
// category weights are used as-is, so all sliders at 100 yields the
// plain sum of the three category scores. When true the weights are
// rescaled to sum to 1 and the composite is a true weighted average.
type Preferences struct {
	Economic      FactorSliders `json:"economic"`
	Quality       FactorSliders `json:"quality"`
	Environmental FactorSliders `json:"environmental"`
	Normalize     bool          `json:"normalize,omitempty"`
}

// Weights resolves the slider groups into the three category weights,
// applying normalization when requested.
func (p Preferences) Weights() (econ, qual, env float64) {
	econ = p.Economic.weight()
	qual = p.Quality.weight()
	env = p.Environmental.weight()
	if p.Normalize {
		total := econ + qual + env
		if total > 0 {
			econ /= total
			qual /= total
			env /= total
		}
	}
	return econ, qual, env
}

// CategoryScores is the pre-normalized 0..100 score per category for
// one supplier. The engine consumes these as given and never recomputes
// them from raw sub-factors.
type CategoryScores struct {
	Economic      float64 `json:"economic"`
	Quality       float64 `json:"quality"`
	Environmental float64 `json:"environmental"`
}

// SupplierScores pairs a supplier ID with its category scores.
type SupplierScores struct {
	SupplierID string         `json:"supplierId"`
	Name       string         `json:"name,omitempty"`
	Scores     CategoryScores `json:"scores"`
}

// Constraints are optional hard minimums per category. A nil field
// means no filter for that category; boundaries are inclusive.
type Constraints struct {
	MinEconomicScore      *float64 `json:"minEconomicScore,omitempty"`
	MinQualityScore       *float64 `json:"minQualityScore,omitempty"`
	MinEnvironmentalScore *float64 `json:"minEnvironmentalScore,omitempty"`
}

func (c Constraints) admits(s CategoryScores) bool {
	if c.MinEconomicScore != nil && s.Economic < *c.MinEconomicScore {
		return false
	}
	if c.MinQualityScore != nil && s.Quality < *c.MinQualityScore {
		return false
	}
	if c.MinEnvironmentalScore != nil && s.Environmental < *c.MinEnvironmentalScore {
		return false
	}
	return true
}

// WeightedScore computes the composite for one supplier. Non-numeric
// inputs are not guarded; NaN propagates into the result.
func WeightedScore(s CategoryScores, prefs Preferences) float64 {
	econ, qual, env := prefs.Weights()
	return s.Economic*econ + s.Quality*qual + s.Environmental*env
}

// Ranked is one entry of an Optimize result.
type Ranked struct {
	SupplierScores
	Composite float64 `json:"composite"`
}

// Optimize drops every supplier below a set constraint, then sorts the
// survivors descending by composite score. The sort is stable, so ties
// keep their input order. The input slice is not modified.
func Optimize(suppliers []SupplierScores, prefs Preferences, constraints Constraints) []Ranked {
	out := make([]Ranked, 0, len(suppliers))
	for _, s := range suppliers {
		if !constraints.admits(s.Scores) {
			continue
		}
		out = append(out, Ranked{SupplierScores: s, Composite: WeightedScore(s.Scores, prefs)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Composite > out[j].Composite })
	return out
}

// OptimizeGradientDescent tunes three category weights toward the
// strongest performers before ranking. Starting from 0.4/0.3/0.3, each
// iteration nudges the weights toward the mean category profile of the
// top 20% of suppliers under the current weights, then renormalizes.
// The returned ranking uses the tuned weights with the same constraint
// filter as Optimize.
func OptimizeGradientDescent(suppliers []SupplierScores, constraints Constraints) ([]Ranked, CategoryScores) {
	const (
		learningRate = 0.01
		iterations   = 10
	)
	wEcon, wQual, wEnv := 0.4, 0.3, 0.3

	eligible := make([]SupplierScores, 0, len(suppliers))
	for _, s := range suppliers {
		if constraints.admits(s.Scores) {
			eligible = append(eligible, s)
		}
	}

	if len(eligible) > 0 {
		for iter := 0; iter < iterations; iter++ {
			ranked := make([]Ranked, len(eligible))
			for i, s := range eligible {
				composite := s.Scores.Economic*wEcon + s.Scores.Quality*wQual + s.Scores.Environmental*wEnv
				ranked[i] = Ranked{SupplierScores: s, Composite: composite}
			}
			sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Composite > ranked[j].Composite })

			top := len(ranked) / 5
			if top == 0 {
				top = 1
			}
			var meanEcon, meanQual, meanEnv float64
			for _, r := range ranked[:top] {
				meanEcon += r.Scores.Economic
				meanQual += r.Scores.Quality
				meanEnv += r.Scores.Environmental
			}
			meanEcon /= float64(top)
			meanQual /= float64(top)
			meanEnv /= float64(top)

			// Pull each weight toward the profile of the leaders,
			// expressed on the same 0..1 scale as the weights.
			wEcon += learningRate * (meanEcon/100 - wEcon)
			wQual += learningRate * (meanQual/100 - wQual)
			wEnv += learningRate * (meanEnv/100 - wEnv)

			total := wEcon + wQual + wEnv
			if total > 0 {
				wEcon /= total
				wQual /= total
				wEnv /= total
			}
		}
	}

	out := make([]Ranked, len(eligible))
	for i, s := range eligible {
		out[i] = Ranked{
			SupplierScores: s,
			Composite:      s.Scores.Economic*wEcon + s.Scores.Quality*wQual + s.Scores.Environmental*wEnv,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Composite > out[j].Composite })

	weights := CategoryScores{Economic: wEcon, Quality: wQual, Environmental: wEnv}
	return out, weights
}
