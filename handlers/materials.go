package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/filestore"
	"github.com/fontaine-sante/scos/logger"
	"github.com/fontaine-sante/scos/models"
)

const materialsCachePrefix = "/api/v1/materials"

// orderedLinks keeps the derived supplier list in the order it was
// written.
func orderedLinks(db *gorm.DB) *gorm.DB {
	return db.Order("material_suppliers.position")
}

func (a *API) loadMaterials(ctx context.Context) ([]models.RawMaterial, error) {
	var materials []models.RawMaterial
	if err := a.DB.WithContext(ctx).Preload("SupplierLinks", orderedLinks).Find(&materials).Error; err != nil {
		return nil, err
	}
	for i := range materials {
		materials[i].ResolveSuppliers()
	}
	return materials, nil
}

// mirrorMaterials refreshes the JSON fallback after a write. Mirror
// failures are logged, never surfaced to the client.
func (a *API) mirrorMaterials() {
	materials, err := a.loadMaterials(context.Background())
	if err != nil {
		logger.Get().Warn("material mirror refresh failed", zap.Error(err))
		return
	}
	if err := a.Store.Save(filestore.MaterialsFile, materials); err != nil {
		logger.Get().Warn("material mirror write failed", zap.Error(err))
	}
}

func (a *API) GetMaterials(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		materials, err := a.loadMaterials(r.Context())
		if err != nil {
			// Database down: serve the JSON mirror if we have one.
			var mirrored []models.RawMaterial
			if ok, loadErr := a.Store.Load(filestore.MaterialsFile, &mirrored); loadErr == nil && ok {
				logger.Get().Warn("serving materials from mirror", zap.Error(err))
				return mirrored, nil
			}
			return nil, err
		}
		return materials, nil
	})
}

func (a *API) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var m models.RawMaterial
	if err := a.db(r).Preload("SupplierLinks", orderedLinks).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "material not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	m.ResolveSuppliers()
	respondJSON(w, http.StatusOK, m)
}

type materialReq struct {
	Name              string                           `json:"name"`
	Type              string                           `json:"type"`
	Description       string                           `json:"description"`
	Quantity          float64                          `json:"quantity"`
	Unit              string                           `json:"unit"`
	Quality           models.MaterialQuality           `json:"quality"`
	EnvironmentalData models.MaterialEnvironmentalData `json:"environmentalData"`
	EconomicData      models.MaterialEconomicData      `json:"economicData"`
	Suppliers         []string                         `json:"suppliers"`
}

func (a *API) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, "name and type are required")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}

	m := models.RawMaterial{
		Name:              req.Name,
		Type:              req.Type,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		Quality:           req.Quality,
		EnvironmentalData: req.EnvironmentalData,
		EconomicData:      req.EconomicData,
	}
	m.EconomicData.TotalCostPerUnit = m.EconomicData.ComputeTotalCostPerUnit()

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return replaceMaterialSuppliers(tx, m.ID, req.Suppliers)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.Suppliers = append([]string{}, req.Suppliers...)
	a.invalidate(materialsCachePrefix)
	a.mirrorMaterials()
	respondJSON(w, http.StatusCreated, m)
}

// materialPatch carries a partial update. Pointer fields distinguish
// "absent" from "set to zero"; unknown fields are rejected.
type materialPatch struct {
	Name              *string                           `json:"name"`
	Type              *string                           `json:"type"`
	Description       *string                           `json:"description"`
	Quantity          *float64                          `json:"quantity"`
	Unit              *string                           `json:"unit"`
	Quality           *models.MaterialQuality           `json:"quality"`
	EnvironmentalData *models.MaterialEnvironmentalData `json:"environmentalData"`
	EconomicData      *models.MaterialEconomicData      `json:"economicData"`
	Suppliers         *[]string                         `json:"suppliers"`
}

// UpdateMaterial handles PUT /materials?id=<id> with a partial body.
// A suppliers field replaces the association list wholesale; this is
// the fallback write path of the associate flow.
func (a *API) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch materialPatch
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patch body: "+err.Error())
		return
	}

	var m models.RawMaterial
	if err := a.db(r).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "material not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Type != nil {
		m.Type = *patch.Type
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			respondError(w, http.StatusBadRequest, "quantity cannot be negative")
			return
		}
		m.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	if patch.Quality != nil {
		m.Quality = *patch.Quality
	}
	if patch.EnvironmentalData != nil {
		m.EnvironmentalData = *patch.EnvironmentalData
	}
	if patch.EconomicData != nil {
		m.EconomicData = *patch.EconomicData
		m.EconomicData.TotalCostPerUnit = m.EconomicData.ComputeTotalCostPerUnit()
	}

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if patch.Suppliers != nil {
			return replaceMaterialSuppliers(tx, m.ID, *patch.Suppliers)
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := a.db(r).Preload("SupplierLinks", orderedLinks).First(&m, "id = ?", m.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	m.ResolveSuppliers()

	a.invalidate(materialsCachePrefix)
	a.mirrorMaterials()
	respondJSON(w, http.StatusOK, m)
}

// DeleteMaterial soft-deletes the material and hard-deletes its links,
// so no supplier or warehouse keeps a dangling reference.
func (a *API) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}
	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.RawMaterial{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&models.MaterialSupplier{}, "material_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WarehouseMaterial{}, "material_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "material not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	a.invalidate(materialsCachePrefix)
	a.mirrorMaterials()
	w.WriteHeader(http.StatusNoContent)
}

type associateReq struct {
	MaterialID  string   `json:"materialId"`
	SupplierIDs []string `json:"supplierIds"`
}

// AssociateSuppliers replaces a material's supplier set with the given
// list. Replace semantics: callers pass the full desired set, and both
// this path and the PUT fallback converge on the same join rows.
func (a *API) AssociateSuppliers(w http.ResponseWriter, r *http.Request) {
	var req associateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MaterialID == "" {
		respondError(w, http.StatusBadRequest, "materialId is required")
		return
	}

	var m models.RawMaterial
	if err := a.db(r).First(&m, "id = ?", req.MaterialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "material not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		return replaceMaterialSuppliers(tx, req.MaterialID, req.SupplierIDs)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := a.db(r).Preload("SupplierLinks", orderedLinks).First(&m, "id = ?", req.MaterialID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	m.ResolveSuppliers()

	a.invalidate(materialsCachePrefix, suppliersCachePrefix)
	a.mirrorMaterials()
	respondJSON(w, http.StatusOK, map[string]interface{}{"material": m})
}

// replaceMaterialSuppliers rewrites the join rows for one material.
// Unknown supplier IDs are rejected before anything is dropped.
func replaceMaterialSuppliers(tx *gorm.DB, materialID string, supplierIDs []string) error {
	if len(supplierIDs) > 0 {
		var count int64
		if err := tx.Model(&models.Supplier{}).Where("id IN ?", supplierIDs).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(uniqueIDs(supplierIDs)) {
			return errors.New("one or more supplier ids do not exist")
		}
	}
	if err := tx.Unscoped().Delete(&models.MaterialSupplier{}, "material_id = ?", materialID).Error; err != nil {
		return err
	}
	for i, sid := range uniqueIDs(supplierIDs) {
		link := models.MaterialSupplier{MaterialID: materialID, SupplierID: sid, Position: i}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
