package models

import "time"

// Join tables are the single source of truth for every many-to-many
// association. The ID lists exposed on the entities are read views over
// these rows, so the two sides of a link cannot drift apart, and deleting
// a parent cascades to its links.

type MaterialSupplier struct {
	MaterialID string       `gorm:"primaryKey;size:64" json:"materialId"`
	SupplierID string       `gorm:"primaryKey;size:64" json:"supplierId"`
	Material   *RawMaterial `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE" json:"-"`
	Supplier   *Supplier    `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
	// Position preserves the order the caller supplied the suppliers in.
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (MaterialSupplier) TableName() string { return "material_suppliers" }

type WarehouseSupplier struct {
	WarehouseID string     `gorm:"primaryKey;size:64" json:"warehouseId"`
	SupplierID  string     `gorm:"primaryKey;size:64" json:"supplierId"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"-"`
	Supplier    *Supplier  `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (WarehouseSupplier) TableName() string { return "warehouse_suppliers" }

type WarehouseMaterial struct {
	WarehouseID string       `gorm:"primaryKey;size:64" json:"warehouseId"`
	MaterialID  string       `gorm:"primaryKey;size:64" json:"materialId"`
	Warehouse   *Warehouse   `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"-"`
	Material    *RawMaterial `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"createdAt"`
}

func (WarehouseMaterial) TableName() string { return "warehouse_materials" }
