package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Warehouse types are free strings in practice; these cover the values the
// dashboard's forms offer.
const (
	WarehouseTypeDistribution = "distribution"
	WarehouseTypeStorage      = "storage"
	WarehouseTypeFulfillment  = "fulfillment"
)

type WarehouseCapacity struct {
	MaxCapacity        float64 `json:"maxCapacity"`
	CurrentUtilization float64 `json:"currentUtilization"`
	Unit               string  `json:"unit"`
}

func (c WarehouseCapacity) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *WarehouseCapacity) Scan(src interface{}) error  { return jsonbScan(src, c) }

type TransitTimes struct {
	Inbound  float64 `json:"inbound"`
	Outbound float64 `json:"outbound"`
}

func (t TransitTimes) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *TransitTimes) Scan(src interface{}) error  { return jsonbScan(src, t) }

// Warehouse is a storage/distribution node. Its supplier and material lists
// are kept a superset of whatever is linked elsewhere in the system; the
// sync operation only ever grows them.
type Warehouse struct {
	ID       string   `gorm:"primaryKey;size:64" json:"id"`
	Name     string   `gorm:"size:200;not null" json:"name"`
	Type     string   `gorm:"size:50" json:"type"`
	Location Location `gorm:"type:jsonb" json:"location"`

	Capacity        WarehouseCapacity `gorm:"type:jsonb" json:"capacity"`
	TransitTimes    TransitTimes      `gorm:"type:jsonb" json:"transitTimes"`
	OperationalCost float64           `json:"operationalCost"`

	Suppliers []string `gorm:"-" json:"suppliers"`
	Materials []string `gorm:"-" json:"materials"`

	SupplierLinks []WarehouseSupplier `gorm:"foreignKey:WarehouseID" json:"-"`
	MaterialLinks []WarehouseMaterial `gorm:"foreignKey:WarehouseID" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = NewID(WarehouseIDPrefix)
	}
	return nil
}

// ResolveLinks populates the derived Suppliers and Materials lists.
func (w *Warehouse) ResolveLinks() {
	w.Suppliers = make([]string, 0, len(w.SupplierLinks))
	for _, l := range w.SupplierLinks {
		w.Suppliers = append(w.Suppliers, l.SupplierID)
	}
	w.Materials = make([]string, 0, len(w.MaterialLinks))
	for _, l := range w.MaterialLinks {
		w.Materials = append(w.Materials, l.MaterialID)
	}
}
