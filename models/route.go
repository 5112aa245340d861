package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// RouteTransport captures the logistics of one supplier-to-warehouse leg.
type RouteTransport struct {
	Mode        string  `json:"mode"`
	Cost        float64 `json:"cost"`
	Distance    float64 `json:"distance"`
	CO2Emission float64 `json:"co2Emission"`
	TimeTaken   struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	} `json:"timeTaken"`
}

func (r RouteTransport) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *RouteTransport) Scan(src interface{}) error  { return jsonbScan(src, r) }

// Route links a supplier to a warehouse with its transport profile.
type Route struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	SupplierID  string         `gorm:"size:64;index" json:"supplierId"`
	WarehouseID string         `gorm:"size:64;index" json:"warehouseId"`
	Supplier    *Supplier      `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
	Warehouse   *Warehouse     `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"-"`
	Transport   RouteTransport `gorm:"type:jsonb" json:"transport"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID(RouteIDPrefix)
	}
	return nil
}
