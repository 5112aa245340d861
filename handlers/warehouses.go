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
	"github.com/fontaine-sante/scos/reconcile"
)

const warehousesCachePrefix = "/api/v1/warehouses"

func (a *API) loadWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := a.DB.WithContext(ctx).Preload("SupplierLinks").Preload("MaterialLinks").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	for i := range warehouses {
		warehouses[i].ResolveLinks()
	}
	return warehouses, nil
}

func (a *API) mirrorWarehouses() {
	warehouses, err := a.loadWarehouses(context.Background())
	if err != nil {
		logger.Get().Warn("warehouse mirror refresh failed", zap.Error(err))
		return
	}
	if err := a.Store.Save(filestore.WarehousesFile, warehouses); err != nil {
		logger.Get().Warn("warehouse mirror write failed", zap.Error(err))
	}
}

func (a *API) GetWarehouses(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		warehouses, err := a.loadWarehouses(r.Context())
		if err != nil {
			var mirrored []models.Warehouse
			if ok, loadErr := a.Store.Load(filestore.WarehousesFile, &mirrored); loadErr == nil && ok {
				logger.Get().Warn("serving warehouses from mirror", zap.Error(err))
				return mirrored, nil
			}
			return nil, err
		}
		return warehouses, nil
	})
}

func (a *API) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var wh models.Warehouse
	if err := a.db(r).Preload("SupplierLinks").Preload("MaterialLinks").First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "warehouse not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	wh.ResolveLinks()
	respondJSON(w, http.StatusOK, wh)
}

type warehouseReq struct {
	Name            string                   `json:"name"`
	Type            string                   `json:"type"`
	Location        models.Location          `json:"location"`
	Capacity        models.WarehouseCapacity `json:"capacity"`
	TransitTimes    models.TransitTimes      `json:"transitTimes"`
	OperationalCost float64                  `json:"operationalCost"`
	Suppliers       []string                 `json:"suppliers"`
	Materials       []string                 `json:"materials"`
}

func (a *API) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req warehouseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Type == "" {
		req.Type = models.WarehouseTypeStorage
	}

	wh := models.Warehouse{
		Name:            req.Name,
		Type:            req.Type,
		Location:        req.Location,
		Capacity:        req.Capacity,
		TransitTimes:    req.TransitTimes,
		OperationalCost: req.OperationalCost,
	}
	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&wh).Error; err != nil {
			return err
		}
		return replaceWarehouseLinks(tx, wh.ID, req.Suppliers, req.Materials)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	wh.Suppliers = append([]string{}, req.Suppliers...)
	wh.Materials = append([]string{}, req.Materials...)
	a.invalidate(warehousesCachePrefix)
	a.mirrorWarehouses()
	respondJSON(w, http.StatusCreated, wh)
}

type warehousePatch struct {
	Name            *string                   `json:"name"`
	Type            *string                   `json:"type"`
	Location        *models.Location          `json:"location"`
	Capacity        *models.WarehouseCapacity `json:"capacity"`
	TransitTimes    *models.TransitTimes      `json:"transitTimes"`
	OperationalCost *float64                  `json:"operationalCost"`
	Suppliers       *[]string                 `json:"suppliers"`
	Materials       *[]string                 `json:"materials"`
}

func (a *API) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch warehousePatch
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patch body: "+err.Error())
		return
	}

	var wh models.Warehouse
	if err := a.db(r).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "warehouse not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if patch.Name != nil {
		wh.Name = *patch.Name
	}
	if patch.Type != nil {
		wh.Type = *patch.Type
	}
	if patch.Location != nil {
		wh.Location = *patch.Location
	}
	if patch.Capacity != nil {
		wh.Capacity = *patch.Capacity
	}
	if patch.TransitTimes != nil {
		wh.TransitTimes = *patch.TransitTimes
	}
	if patch.OperationalCost != nil {
		wh.OperationalCost = *patch.OperationalCost
	}

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&wh).Error; err != nil {
			return err
		}
		if patch.Suppliers != nil || patch.Materials != nil {
			suppliers, materials, err := warehouseLinkIDs(tx, wh.ID)
			if err != nil {
				return err
			}
			if patch.Suppliers != nil {
				suppliers = *patch.Suppliers
			}
			if patch.Materials != nil {
				materials = *patch.Materials
			}
			return replaceWarehouseLinks(tx, wh.ID, suppliers, materials)
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := a.db(r).Preload("SupplierLinks").Preload("MaterialLinks").First(&wh, "id = ?", wh.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	wh.ResolveLinks()

	a.invalidate(warehousesCachePrefix)
	a.mirrorWarehouses()
	respondJSON(w, http.StatusOK, wh)
}

func (a *API) DeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Warehouse{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Unscoped().Delete(&models.WarehouseSupplier{}, "warehouse_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.WarehouseMaterial{}, "warehouse_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "warehouse not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	a.invalidate(warehousesCachePrefix)
	a.mirrorWarehouses()
	w.WriteHeader(http.StatusNoContent)
}

// SyncWarehouse grows the warehouse's links to cover every supplier and
// material currently known. Links to since-deleted entities are left in
// place; the sync never removes anything. Without an id it targets the
// oldest warehouse on record.
func (a *API) SyncWarehouse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var wh models.Warehouse
	q := a.db(r).Preload("SupplierLinks").Preload("MaterialLinks")
	if id == "" {
		q = q.Order("created_at")
	} else {
		q = q.Where("id = ?", id)
	}
	if err := q.First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "warehouse not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	wh.ResolveLinks()

	var knownSuppliers, knownMaterials []string
	if err := a.db(r).Model(&models.Supplier{}).Pluck("id", &knownSuppliers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := a.db(r).Model(&models.RawMaterial{}).Pluck("id", &knownMaterials).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	plan := reconcile.PlanWarehouseSync(wh.ID, wh.Suppliers, wh.Materials, knownSuppliers, knownMaterials)
	if !plan.NeedsUpdate() {
		respondJSON(w, http.StatusOK, map[string]interface{}{"updated": false, "warehouse": wh})
		return
	}

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		for _, sid := range plan.Suppliers.Added {
			link := models.WarehouseSupplier{WarehouseID: wh.ID, SupplierID: sid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		for _, mid := range plan.Materials.Added {
			link := models.WarehouseMaterial{WarehouseID: wh.ID, MaterialID: mid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Get().Info("warehouse links synced",
		zap.String("warehouseId", wh.ID),
		zap.Strings("addedSuppliers", plan.Suppliers.Added),
		zap.Strings("addedMaterials", plan.Materials.Added))

	if err := a.db(r).Preload("SupplierLinks").Preload("MaterialLinks").First(&wh, "id = ?", wh.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	wh.ResolveLinks()

	a.invalidate(warehousesCachePrefix)
	a.mirrorWarehouses()
	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": true, "warehouse": wh})
}

func warehouseLinkIDs(tx *gorm.DB, warehouseID string) (suppliers, materials []string, err error) {
	if err = tx.Model(&models.WarehouseSupplier{}).Where("warehouse_id = ?", warehouseID).
		Pluck("supplier_id", &suppliers).Error; err != nil {
		return nil, nil, err
	}
	if err = tx.Model(&models.WarehouseMaterial{}).Where("warehouse_id = ?", warehouseID).
		Pluck("material_id", &materials).Error; err != nil {
		return nil, nil, err
	}
	return suppliers, materials, nil
}

func replaceWarehouseLinks(tx *gorm.DB, warehouseID string, suppliers, materials []string) error {
	if err := tx.Unscoped().Delete(&models.WarehouseSupplier{}, "warehouse_id = ?", warehouseID).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Delete(&models.WarehouseMaterial{}, "warehouse_id = ?", warehouseID).Error; err != nil {
		return err
	}
	for _, sid := range uniqueIDs(suppliers) {
		link := models.WarehouseSupplier{WarehouseID: warehouseID, SupplierID: sid}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	for _, mid := range uniqueIDs(materials) {
		link := models.WarehouseMaterial{WarehouseID: warehouseID, MaterialID: mid}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
