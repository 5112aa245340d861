package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fontaine-sante/scos/models"
	"github.com/fontaine-sante/scos/tradeoff"
)

type tradeoffReq struct {
	Preferences tradeoff.Preferences `json:"preferences"`
	Constraints tradeoff.Constraints `json:"constraints"`
	// Method selects the ranking strategy: "weighted" (default) or
	// "gradient-descent".
	Method      string   `json:"method"`
	SupplierIDs []string `json:"supplierIds"`
}

// OptimizeTradeoff ranks suppliers by composite score. Suppliers
// without an assessment are skipped; they have no scores to rank on.
func (a *API) OptimizeTradeoff(w http.ResponseWriter, r *http.Request) {
	var req tradeoffReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	q := a.db(r).Model(&models.Supplier{}).Where("assessment IS NOT NULL")
	if len(req.SupplierIDs) > 0 {
		q = q.Where("id IN ?", req.SupplierIDs)
	}
	var suppliers []models.Supplier
	if err := q.Find(&suppliers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	scored := make([]tradeoff.SupplierScores, 0, len(suppliers))
	for _, s := range suppliers {
		if s.Assessment == nil {
			continue
		}
		scored = append(scored, tradeoff.SupplierScores{
			SupplierID: s.ID,
			Name:       s.Name,
			Scores: tradeoff.CategoryScores{
				Economic:      s.Assessment.Economic.Score,
				Quality:       s.Assessment.Quality.Score,
				Environmental: s.Assessment.Environmental.Score,
			},
		})
	}

	switch req.Method {
	case "", "weighted":
		ranked := tradeoff.Optimize(scored, req.Preferences, req.Constraints)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"method":    "weighted",
			"suppliers": ranked,
		})
	case "gradient-descent":
		ranked, weights := tradeoff.OptimizeGradientDescent(scored, req.Constraints)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"method":    "gradient-descent",
			"weights":   weights,
			"suppliers": ranked,
		})
	default:
		respondError(w, http.StatusBadRequest, "unknown method: "+req.Method)
	}
}
