package config

import (
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/logger"
	"github.com/fontaine-sante/scos/models"
)

// Seed installs the default admin user and, on an empty database, a
// small starter data set. Safe to run on every start.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	return seedSampleData(db)
}

func seedUsers(db *gorm.DB) error {
	email := Env("ADMIN_EMAIL", "admin@fontaine-sante.com")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(Env("ADMIN_PASSWORD", "changeme")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Get().Info("seeded admin user", zap.String("email", email))
	return nil
}

func seedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Supplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	suppliers := []models.Supplier{
		{
			Name: "EcoFarm Produce",
			Location: models.Location{
				Address:     "123 Green Valley Road, Montreal, Canada",
				Coordinates: models.Coordinates{Lat: 45.5017, Lng: -73.5673},
			},
			Certifications: pq.StringArray{"Organic", "Non-GMO", "Fair Trade"},
			TransportMode:  "truck",
			ContactInfo: models.ContactInfo{
				Name:  "Jean Tremblay",
				Email: "contact@ecofarm.com",
				Phone: "+1-514-555-1234",
			},
			RiskScore: 15,
		},
		{
			Name: "Fresh Harvest Co.",
			Location: models.Location{
				Address:     "456 Farm Road, Quebec City, Canada",
				Coordinates: models.Coordinates{Lat: 46.8139, Lng: -71.2080},
			},
			Certifications: pq.StringArray{"Organic"},
			TransportMode:  "truck, train",
			ContactInfo: models.ContactInfo{
				Email: "orders@freshharvest.ca",
				Phone: "+1-418-555-9876",
			},
			RiskScore: 25,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range suppliers {
			if err := tx.Create(&suppliers[i]).Error; err != nil {
				return err
			}
		}

		material := models.RawMaterial{
			Name:     "Organic Oats",
			Type:     "grain",
			Quantity: 5000,
			Unit:     "kg",
			Quality:  models.MaterialQuality{Score: 92, DefectRate: 1.2, ConsistencyScore: 90},
			EnvironmentalData: models.MaterialEnvironmentalData{
				CarbonFootprint: 0.4,
				WaterUsage:      480,
				LandUse:         0.8,
			},
		}
		material.EconomicData = models.MaterialEconomicData{
			UnitCost:           1.85,
			TransportationCost: 0.22,
			StorageCost:        0.08,
		}
		material.EconomicData.TotalCostPerUnit = material.EconomicData.ComputeTotalCostPerUnit()
		if err := tx.Create(&material).Error; err != nil {
			return err
		}

		for i := range suppliers {
			link := models.MaterialSupplier{MaterialID: material.ID, SupplierID: suppliers[i].ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		warehouse := models.Warehouse{
			Name: "Central Distribution Center",
			Type: models.WarehouseTypeDistribution,
			Location: models.Location{
				Address:     "123 Logistics Way, Chicago, IL 60007",
				Coordinates: models.Coordinates{Lat: 41.8781, Lng: -87.6298},
			},
			Capacity:        models.WarehouseCapacity{MaxCapacity: 50000, CurrentUtilization: 32000, Unit: "sq ft"},
			TransitTimes:    models.TransitTimes{Inbound: 3, Outbound: 2},
			OperationalCost: 12500,
		}
		if err := tx.Create(&warehouse).Error; err != nil {
			return err
		}

		logger.Get().Info("seeded sample supply-chain data",
			zap.Int("suppliers", len(suppliers)),
			zap.String("warehouse", warehouse.Name))
		return nil
	})
}
