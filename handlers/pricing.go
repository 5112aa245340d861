package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/filestore"
	"github.com/fontaine-sante/scos/logger"
	"github.com/fontaine-sante/scos/models"
)

const pricingCachePrefix = "/api/v1/pricing"

func (a *API) mirrorPricing() {
	var pricing []models.SupplierMaterialPricing
	if err := a.DB.Find(&pricing).Error; err != nil {
		logger.Get().Warn("pricing mirror refresh failed", zap.Error(err))
		return
	}
	if err := a.Store.Save(filestore.PricingFile, pricing); err != nil {
		logger.Get().Warn("pricing mirror write failed", zap.Error(err))
	}
}

// GetPricing lists pricing records, optionally filtered by supplierId
// and/or materialId query parameters.
func (a *API) GetPricing(w http.ResponseWriter, r *http.Request) {
	supplierID := r.URL.Query().Get("supplierId")
	materialID := r.URL.Query().Get("materialId")

	q := a.db(r).Model(&models.SupplierMaterialPricing{})
	if supplierID != "" {
		q = q.Where("supplier_id = ?", supplierID)
	}
	if materialID != "" {
		q = q.Where("material_id = ?", materialID)
	}

	var pricing []models.SupplierMaterialPricing
	if err := q.Find(&pricing).Error; err != nil {
		var mirrored []models.SupplierMaterialPricing
		if ok, loadErr := a.Store.Load(filestore.PricingFile, &mirrored); loadErr == nil && ok && supplierID == "" && materialID == "" {
			logger.Get().Warn("serving pricing from mirror", zap.Error(err))
			respondJSON(w, http.StatusOK, mirrored)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, pricing)
}

func (a *API) GetPricingRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var p models.SupplierMaterialPricing
	if err := a.db(r).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "pricing record not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// ?quantity=N reports the discounted unit price at that volume.
	if qty := r.URL.Query().Get("quantity"); qty != "" {
		quantity, err := strconv.ParseFloat(qty, 64)
		if err != nil || quantity < 0 {
			respondError(w, http.StatusBadRequest, "invalid quantity")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"pricing":            p,
			"quantity":           quantity,
			"effectiveUnitPrice": p.EffectiveUnitPrice(quantity),
		})
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type pricingReq struct {
	SupplierID      string                 `json:"supplierId"`
	MaterialID      string                 `json:"materialId"`
	UnitPrice       float64                `json:"unitPrice"`
	Currency        string                 `json:"currency"`
	MinOrderQty     float64                `json:"minOrderQuantity"`
	LeadTimeDays    int                    `json:"leadTime"`
	TransportCost   float64                `json:"transportCost"`
	VolumeDiscounts models.VolumeDiscounts `json:"volumeDiscounts"`
	IsPreferred     bool                   `json:"isPreferred"`
	Notes           string                 `json:"notes"`
}

func (a *API) CreatePricing(w http.ResponseWriter, r *http.Request) {
	var req pricingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.SupplierID == "" || req.MaterialID == "" {
		respondError(w, http.StatusBadRequest, "supplierId and materialId are required")
		return
	}
	if req.UnitPrice < 0 {
		respondError(w, http.StatusBadRequest, "unitPrice cannot be negative")
		return
	}

	var supplier models.Supplier
	if err := a.db(r).First(&supplier, "id = ?", req.SupplierID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "supplier does not exist")
		return
	}
	var material models.RawMaterial
	if err := a.db(r).First(&material, "id = ?", req.MaterialID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "material does not exist")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	p := models.SupplierMaterialPricing{
		SupplierID:      req.SupplierID,
		MaterialID:      req.MaterialID,
		UnitPrice:       req.UnitPrice,
		Currency:        currency,
		MinOrderQty:     req.MinOrderQty,
		LeadTimeDays:    req.LeadTimeDays,
		TransportCost:   req.TransportCost,
		VolumeDiscounts: req.VolumeDiscounts,
		IsPreferred:     req.IsPreferred,
		Notes:           req.Notes,
		PriceHistory: models.PriceHistory{
			{Date: models.JSONTimeNow(), Price: req.UnitPrice},
		},
	}
	if err := a.db(r).Create(&p).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.invalidate(pricingCachePrefix)
	a.mirrorPricing()
	respondJSON(w, http.StatusCreated, p)
}

type pricingPatch struct {
	UnitPrice       *float64                `json:"unitPrice"`
	Currency        *string                 `json:"currency"`
	MinOrderQty     *float64                `json:"minOrderQuantity"`
	LeadTimeDays    *int                    `json:"leadTime"`
	TransportCost   *float64                `json:"transportCost"`
	VolumeDiscounts *models.VolumeDiscounts `json:"volumeDiscounts"`
	IsPreferred     *bool                   `json:"isPreferred"`
	Notes           *string                 `json:"notes"`
}

func (a *API) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch pricingPatch
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patch body: "+err.Error())
		return
	}

	var p models.SupplierMaterialPricing
	if err := a.db(r).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "pricing record not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if patch.UnitPrice != nil {
		if *patch.UnitPrice < 0 {
			respondError(w, http.StatusBadRequest, "unitPrice cannot be negative")
			return
		}
		if *patch.UnitPrice != p.UnitPrice {
			p.PriceHistory = append(p.PriceHistory, models.PricePoint{
				Date:  models.JSONTimeNow(),
				Price: *patch.UnitPrice,
			})
		}
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.MinOrderQty != nil {
		p.MinOrderQty = *patch.MinOrderQty
	}
	if patch.LeadTimeDays != nil {
		p.LeadTimeDays = *patch.LeadTimeDays
	}
	if patch.TransportCost != nil {
		p.TransportCost = *patch.TransportCost
	}
	if patch.VolumeDiscounts != nil {
		p.VolumeDiscounts = *patch.VolumeDiscounts
	}
	if patch.IsPreferred != nil {
		p.IsPreferred = *patch.IsPreferred
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}

	if err := a.db(r).Save(&p).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.invalidate(pricingCachePrefix)
	a.mirrorPricing()
	respondJSON(w, http.StatusOK, p)
}

func (a *API) DeletePricing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := a.db(r).Delete(&models.SupplierMaterialPricing{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "pricing record not found")
		return
	}
	a.invalidate(pricingCachePrefix)
	a.mirrorPricing()
	w.WriteHeader(http.StatusNoContent)
}
