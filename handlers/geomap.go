package handlers

import (
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/fontaine-sante/scos/models"
)

const mapCachePrefix = "/api/v1/map"

// SupplyChainMap renders suppliers, warehouses and routes as one
// GeoJSON FeatureCollection for the map page.
func (a *API) SupplyChainMap(w http.ResponseWriter, r *http.Request) {
	a.cachedList(w, r, func() (interface{}, error) {
		var suppliers []models.Supplier
		if err := a.db(r).Find(&suppliers).Error; err != nil {
			return nil, err
		}
		var warehouses []models.Warehouse
		if err := a.db(r).Find(&warehouses).Error; err != nil {
			return nil, err
		}
		var routes []models.Route
		if err := a.db(r).Find(&routes).Error; err != nil {
			return nil, err
		}

		byID := make(map[string]orb.Point)

		fc := geojson.NewFeatureCollection()
		for _, s := range suppliers {
			point := orb.Point{s.Location.Coordinates.Lng, s.Location.Coordinates.Lat}
			byID[s.ID] = point
			feature := geojson.NewFeature(point)
			feature.Properties["id"] = s.ID
			feature.Properties["kind"] = "supplier"
			feature.Properties["name"] = s.Name
			feature.Properties["address"] = s.Location.Address
			feature.Properties["riskScore"] = s.RiskScore
			fc.Append(feature)
		}
		for _, wh := range warehouses {
			point := orb.Point{wh.Location.Coordinates.Lng, wh.Location.Coordinates.Lat}
			byID[wh.ID] = point
			feature := geojson.NewFeature(point)
			feature.Properties["id"] = wh.ID
			feature.Properties["kind"] = "warehouse"
			feature.Properties["name"] = wh.Name
			feature.Properties["type"] = wh.Type
			feature.Properties["address"] = wh.Location.Address
			fc.Append(feature)
		}
		for _, route := range routes {
			from, okFrom := byID[route.SupplierID]
			to, okTo := byID[route.WarehouseID]
			if !okFrom || !okTo {
				continue
			}
			feature := geojson.NewFeature(orb.LineString{from, to})
			feature.Properties["id"] = route.ID
			feature.Properties["kind"] = "route"
			feature.Properties["supplierId"] = route.SupplierID
			feature.Properties["warehouseId"] = route.WarehouseID
			feature.Properties["mode"] = route.Transport.Mode
			feature.Properties["distanceKm"] = route.Transport.Distance
			feature.Properties["co2Kg"] = route.Transport.CO2Emission
			fc.Append(feature)
		}
		return fc, nil
	})
}
