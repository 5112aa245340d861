package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialQuality holds the quality sub-scores entered in step 1 of the
// data-collection wizard. Scores are 0-100.
type MaterialQuality struct {
	Score            float64 `json:"score"`
	DefectRate       float64 `json:"defectRate"`
	ConsistencyScore float64 `json:"consistencyScore"`
}

func (q MaterialQuality) Value() (driver.Value, error) { return jsonbValue(q) }
func (q *MaterialQuality) Scan(src interface{}) error  { return jsonbScan(src, q) }

type MaterialEnvironmentalData struct {
	CarbonFootprint    float64 `json:"carbonFootprint"`
	WaterUsage         float64 `json:"waterUsage"`
	LandUse            float64 `json:"landUse"`
	BiodiversityImpact string  `json:"biodiversityImpact"`
}

func (e MaterialEnvironmentalData) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *MaterialEnvironmentalData) Scan(src interface{}) error  { return jsonbScan(src, e) }

// MaterialDiscount is the optional discount block captured by the
// economic-metrics step.
type MaterialDiscount struct {
	Type          string  `json:"type"`
	Value         float64 `json:"value"`
	ThresholdType string  `json:"thresholdType"`
	Threshold     float64 `json:"threshold"`
}

type MaterialEconomicData struct {
	UnitCost           float64           `json:"unitCost"`
	TransportationCost float64           `json:"transportationCost"`
	StorageCost        float64           `json:"storageCost"`
	TotalCostPerUnit   float64           `json:"totalCostPerUnit"`
	TaxRate            *float64          `json:"taxRate,omitempty"`
	TariffRate         *float64          `json:"tariffRate,omitempty"`
	LeadTime           *int              `json:"leadTime,omitempty"`
	PaymentTerms       string            `json:"paymentTerms,omitempty"`
	Currency           string            `json:"currency,omitempty"`
	Discount           *MaterialDiscount `json:"discount,omitempty"`
}

func (e MaterialEconomicData) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *MaterialEconomicData) Scan(src interface{}) error  { return jsonbScan(src, e) }

// ComputeTotalCostPerUnit returns unitCost + transportationCost + storageCost
// using decimal arithmetic so repeated rollups don't drift.
func (e MaterialEconomicData) ComputeTotalCostPerUnit() float64 {
	total := decimal.NewFromFloat(e.UnitCost).
		Add(decimal.NewFromFloat(e.TransportationCost)).
		Add(decimal.NewFromFloat(e.StorageCost))
	f, _ := total.Float64()
	return f
}

// RawMaterial is a raw input tracked through the supply chain. The supplier
// association list exposed on the API is derived from the material_suppliers
// join table, which is the single source of truth for the link.
type RawMaterial struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Type        string  `gorm:"size:100;not null" json:"type"`
	Description string  `gorm:"type:text" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	Unit        string  `gorm:"size:20" json:"unit"`

	Quality           MaterialQuality           `gorm:"type:jsonb" json:"quality"`
	EnvironmentalData MaterialEnvironmentalData `gorm:"type:jsonb" json:"environmentalData"`
	EconomicData      MaterialEconomicData      `gorm:"type:jsonb" json:"economicData"`

	// Derived from material_suppliers on read, replaced on write.
	Suppliers []string `gorm:"-" json:"suppliers"`

	SupplierLinks []MaterialSupplier `gorm:"foreignKey:MaterialID" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *RawMaterial) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID(MaterialIDPrefix)
	}
	return nil
}

// ResolveSuppliers populates the derived Suppliers list from loaded links.
func (m *RawMaterial) ResolveSuppliers() {
	ids := make([]string, 0, len(m.SupplierLinks))
	for _, l := range m.SupplierLinks {
		ids = append(ids, l.SupplierID)
	}
	m.Suppliers = ids
}
