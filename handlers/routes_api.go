package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/models"
	"github.com/fontaine-sante/scos/utils"
)

const routesCachePrefix = "/api/v1/routes"

func (a *API) GetRoutes(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		var routes []models.Route
		if err := a.db(r).Find(&routes).Error; err != nil {
			return nil, err
		}
		return routes, nil
	})
}

func (a *API) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var route models.Route
	if err := a.db(r).First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "route not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, route)
}

type routeReq struct {
	SupplierID  string                `json:"supplierId"`
	WarehouseID string                `json:"warehouseId"`
	Transport   models.RouteTransport `json:"transport"`
}

// CreateRoute links a supplier to a warehouse. Distance, CO2 and
// transit time are computed from the endpoint coordinates when the
// caller leaves them zero.
func (a *API) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.SupplierID == "" || req.WarehouseID == "" {
		respondError(w, http.StatusBadRequest, "supplierId and warehouseId are required")
		return
	}

	var supplier models.Supplier
	if err := a.db(r).First(&supplier, "id = ?", req.SupplierID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "supplier does not exist")
		return
	}
	var warehouse models.Warehouse
	if err := a.db(r).First(&warehouse, "id = ?", req.WarehouseID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "warehouse does not exist")
		return
	}

	transport := req.Transport
	if transport.Mode == "" {
		transport.Mode = utils.NormalizeTransportMode(supplier.TransportMode)
	}
	if transport.Distance == 0 {
		transport.Distance = utils.DistanceKm(
			supplier.Location.Coordinates.Lat, supplier.Location.Coordinates.Lng,
			warehouse.Location.Coordinates.Lat, warehouse.Location.Coordinates.Lng)
	}
	if transport.CO2Emission == 0 {
		transport.CO2Emission = utils.EstimateCO2(transport.Distance, transport.Mode)
	}
	if transport.TimeTaken.Value == 0 {
		transport.TimeTaken.Value = utils.EstimateTravelHours(transport.Distance, transport.Mode)
		transport.TimeTaken.Unit = "hours"
	}

	route := models.Route{
		SupplierID:  req.SupplierID,
		WarehouseID: req.WarehouseID,
		Transport:   transport,
	}
	if err := a.db(r).Create(&route).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.invalidate(routesCachePrefix)
	respondJSON(w, http.StatusCreated, route)
}

type routePatch struct {
	Transport *models.RouteTransport `json:"transport"`
}

func (a *API) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch routePatch
	if err := dec.Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid patch body: "+err.Error())
		return
	}

	var route models.Route
	if err := a.db(r).First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "route not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if patch.Transport != nil {
		route.Transport = *patch.Transport
	}
	if err := a.db(r).Save(&route).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.invalidate(routesCachePrefix)
	respondJSON(w, http.StatusOK, route)
}

func (a *API) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := a.db(r).Delete(&models.Route{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "route not found")
		return
	}
	a.invalidate(routesCachePrefix)
	w.WriteHeader(http.StatusNoContent)
}
