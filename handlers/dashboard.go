package handlers

import (
	"net/http"
	"time"

	"github.com/fontaine-sante/scos/models"
	"github.com/fontaine-sante/scos/utils"
)

const dashboardCachePrefix = "/api/v1/dashboard"

// DashboardOverview returns the entity counts and headline KPIs the
// landing page renders.
func (a *API) DashboardOverview(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		var materialCount, supplierCount, warehouseCount, pricingCount, routeCount int64
		counts := []struct {
			model interface{}
			dst   *int64
		}{
			{&models.RawMaterial{}, &materialCount},
			{&models.Supplier{}, &supplierCount},
			{&models.Warehouse{}, &warehouseCount},
			{&models.SupplierMaterialPricing{}, &pricingCount},
			{&models.Route{}, &routeCount},
		}
		for _, c := range counts {
			if err := a.db(r).Model(c.model).Count(c.dst).Error; err != nil {
				return nil, err
			}
		}

		materials, err := a.loadMaterials(r.Context())
		if err != nil {
			return nil, err
		}

		ae := utils.NewAnalyticsEngine()

		var totalQuantity float64
		costs := make([]float64, 0, len(materials))
		carbon := make([]float64, 0, len(materials))
		for _, m := range materials {
			totalQuantity += m.Quantity
			costs = append(costs, m.EconomicData.TotalCostPerUnit)
			carbon = append(carbon, m.EnvironmentalData.CarbonFootprint)
		}

		// Month-over-month material count as the headline KPI.
		monthAgo := time.Now().AddDate(0, -1, 0)
		var previousCount int64
		if err := a.db(r).Model(&models.RawMaterial{}).Where("created_at < ?", monthAgo).Count(&previousCount).Error; err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"counts": map[string]int64{
				"materials":  materialCount,
				"suppliers":  supplierCount,
				"warehouses": warehouseCount,
				"pricing":    pricingCount,
				"routes":     routeCount,
			},
			"totalQuantity": totalQuantity,
			"materialKPI":   ae.CalculateKPI(float64(materialCount), float64(previousCount), 0),
			"costPerUnit":   ae.CalculateStatistics(costs),
			"carbon":        ae.CalculateStatistics(carbon),
			"cacheStats":    a.Cache.Stats(),
		}, nil
	})
}

// CostAnalysis breaks material cost down by component and by material
// type for the cost page's charts.
func (a *API) CostAnalysis(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		materials, err := a.loadMaterials(r.Context())
		if err != nil {
			return nil, err
		}

		type costRow struct {
			MaterialID         string  `json:"materialId"`
			Name               string  `json:"name"`
			Type               string  `json:"type"`
			UnitCost           float64 `json:"unitCost"`
			TransportationCost float64 `json:"transportationCost"`
			StorageCost        float64 `json:"storageCost"`
			TotalCostPerUnit   float64 `json:"totalCostPerUnit"`
			TotalCost          float64 `json:"totalCost"`
		}

		rows := make([]costRow, 0, len(materials))
		byType := make(map[string]float64)
		var grandTotal float64
		for _, m := range materials {
			e := m.EconomicData
			total := e.ComputeTotalCostPerUnit() * m.Quantity
			rows = append(rows, costRow{
				MaterialID:         m.ID,
				Name:               m.Name,
				Type:               m.Type,
				UnitCost:           e.UnitCost,
				TransportationCost: e.TransportationCost,
				StorageCost:        e.StorageCost,
				TotalCostPerUnit:   e.ComputeTotalCostPerUnit(),
				TotalCost:          total,
			})
			byType[m.Type] += total
			grandTotal += total
		}

		return map[string]interface{}{
			"materials":    rows,
			"totalsByType": byType,
			"grandTotal":   grandTotal,
		}, nil
	})
}
