package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/filestore"
	"github.com/fontaine-sante/scos/logger"
	"github.com/fontaine-sante/scos/models"
)

const suppliersCachePrefix = "/api/v1/suppliers"

func (a *API) loadSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := a.DB.WithContext(ctx).Preload("MaterialLinks").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	for i := range suppliers {
		suppliers[i].ResolveMaterials()
	}
	return suppliers, nil
}

func (a *API) mirrorSuppliers() {
	suppliers, err := a.loadSuppliers(context.Background())
	if err != nil {
		logger.Get().Warn("supplier mirror refresh failed", zap.Error(err))
		return
	}
	if err := a.Store.Save(filestore.SuppliersFile, suppliers); err != nil {
		logger.Get().Warn("supplier mirror write failed", zap.Error(err))
	}
}

func (a *API) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		suppliers, err := a.loadSuppliers(r.Context())
		if err != nil {
			var mirrored []models.Supplier
			if ok, loadErr := a.Store.Load(filestore.SuppliersFile, &mirrored); loadErr == nil && ok {
				logger.Get().Warn("serving suppliers from mirror", zap.Error(err))
				return mirrored, nil
			}
			return nil, err
		}
		return suppliers, nil
	})
}

func (a *API) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var s models.Supplier
	if err := a.db(r).Preload("MaterialLinks").First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "supplier not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.ResolveMaterials()
	respondJSON(w, http.StatusOK, s)
}

type supplierReq struct {
	Name                  string                           `json:"name"`
	Location              models.Location                  `json:"location"`
	Certifications        []string                         `json:"certifications"`
	TransportMode         string                           `json:"transportMode"`
	Distance              *float64                         `json:"distance"`
	TransportationDetails string                           `json:"transportationDetails"`
	ProductionCapacity    string                           `json:"productionCapacity"`
	LeadTime              int                              `json:"leadTime"`
	PerformanceHistory    string                           `json:"performanceHistory"`
	OperatingHours        string                           `json:"operatingHours"`
	RiskScore             float64                          `json:"riskScore"`
	ContactInfo           models.ContactInfo               `json:"contactInfo"`
	EconomicData          models.SupplierEconomicData      `json:"economicData"`
	EnvironmentalData     models.SupplierEnvironmentalData `json:"environmentalData"`
	Assessment            *models.SupplierAssessment       `json:"assessment"`
	Materials             []string                         `json:"materials"`
}

func (a *API) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	s := models.Supplier{
		Name:                  req.Name,
		Location:              req.Location,
		Certifications:        pq.StringArray(req.Certifications),
		TransportMode:         req.TransportMode,
		Distance:              req.Distance,
		TransportationDetails: req.TransportationDetails,
		ProductionCapacity:    req.ProductionCapacity,
		LeadTime:              req.LeadTime,
		OperatingHours:        req.OperatingHours,
		PerformanceHistory:    req.PerformanceHistory,
		RiskScore:             req.RiskScore,
		ContactInfo:           req.ContactInfo,
		EconomicData:          req.EconomicData,
		EnvironmentalData:     req.EnvironmentalData,
		Assessment:            req.Assessment,
	}

	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		// A supplier's material list is the inverse view of the same
		// join table the material side writes.
		for i, mid := range uniqueIDs(req.Materials) {
			link := models.MaterialSupplier{MaterialID: mid, SupplierID: s.ID, Position: i}
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

	s.Materials = append([]string{}, req.Materials...)
	a.invalidate(suppliersCachePrefix, materialsCachePrefix)
	a.mirrorSuppliers()
	respondJSON(w, http.StatusCreated, s)
}

type supplierPatch struct {
	Name                  *string                           `json:"name"`
	Location              *models.Location                  `json:"location"`
	Certifications        *[]string                         `json:"certifications"`
	TransportMode         *string                           `json:"transportMode"`
	Distance              *float64                          `json:"distance"`
	TransportationDetails *string                           `json:"transportationDetails"`
	ProductionCapacity    *string                           `json:"productionCapacity"`
	LeadTime              *int                              `json:"leadTime"`
	PerformanceHistory    *string                           `json:"performanceHistory"`
	OperatingHours        *string                           `json:"operatingHours"`
	RiskScore             *float64                          `json:"riskScore"`
	ContactInfo           *models.ContactInfo               `json:"contactInfo"`
	EconomicData          *models.SupplierEconomicData      `json:"economicData"`
	EnvironmentalData     *models.SupplierEnvironmentalData `json:"environmentalData"`
	Assessment            *models.SupplierAssessment        `json:"assessment"`
}

func (a *API) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch supplierPatch
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patch body: "+err.Error())
		return
	}

	var s models.Supplier
	if err := a.db(r).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "supplier not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Location != nil {
		s.Location = *patch.Location
	}
	if patch.Certifications != nil {
		s.Certifications = pq.StringArray(*patch.Certifications)
	}
	if patch.TransportMode != nil {
		s.TransportMode = *patch.TransportMode
	}
	if patch.Distance != nil {
		s.Distance = patch.Distance
	}
	if patch.TransportationDetails != nil {
		s.TransportationDetails = *patch.TransportationDetails
	}
	if patch.ProductionCapacity != nil {
		s.ProductionCapacity = *patch.ProductionCapacity
	}
	if patch.LeadTime != nil {
		s.LeadTime = *patch.LeadTime
	}
	if patch.OperatingHours != nil {
		s.OperatingHours = *patch.OperatingHours
	}
	if patch.PerformanceHistory != nil {
		s.PerformanceHistory = *patch.PerformanceHistory
	}
	if patch.RiskScore != nil {
		s.RiskScore = *patch.RiskScore
	}
	if patch.ContactInfo != nil {
		s.ContactInfo = *patch.ContactInfo
	}
	if patch.EconomicData != nil {
		s.EconomicData = *patch.EconomicData
	}
	if patch.EnvironmentalData != nil {
		s.EnvironmentalData = *patch.EnvironmentalData
	}
	if patch.Assessment != nil {
		s.Assessment = patch.Assessment
	}

	if err := a.db(r).Save(&s).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.ResolveMaterials()
	a.invalidate(suppliersCachePrefix)
	a.mirrorSuppliers()
	respondJSON(w, http.StatusOK, s)
}

func (a *API) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}
	err := a.db(r).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Supplier{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Unscoped().Delete(&models.MaterialSupplier{}, "supplier_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.WarehouseSupplier{}, "supplier_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "supplier not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	a.invalidate(suppliersCachePrefix, materialsCachePrefix)
	a.mirrorSuppliers()
	a.mirrorMaterials()
	w.WriteHeader(http.StatusNoContent)
}
