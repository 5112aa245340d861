package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.RawMaterial{}, &models.Supplier{},
					&models.Warehouse{}, &models.SupplierMaterialPricing{}, &models.Route{})
			},
		},
		{
			ID: "20250112_create_link_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.MaterialSupplier{}, &models.WarehouseSupplier{},
					&models.WarehouseMaterial{})
			},
		},
		{
			ID: "20250214_pricing_pair_index",
			Migrate: func(tx *gorm.DB) error {
				// Non-unique: nothing prevents several agreements for the
				// same (supplier, material) pair, the index only speeds up
				// the filtered pricing lookups.
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_pricing_supplier_material
					ON supplier_material_pricings (supplier_id, material_id)
					WHERE deleted_at IS NULL`).Error
			},
		},
	})
	return m.Migrate()
}
