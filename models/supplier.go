package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

func (l Location) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *Location) Scan(src interface{}) error  { return jsonbScan(src, l) }

type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c ContactInfo) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ContactInfo) Scan(src interface{}) error  { return jsonbScan(src, c) }

type SupplierEconomicData struct {
	FoundedYear         int     `json:"foundedYear,omitempty"`
	AnnualRevenue       float64 `json:"annualRevenue,omitempty"`
	EmployeeCount       int     `json:"employeeCount,omitempty"`
	MaterialCosts       float64 `json:"materialCosts,omitempty"`
	TransportationCosts float64 `json:"transportationCosts,omitempty"`
	StorageCosts        float64 `json:"storageCosts,omitempty"`
	TotalCost           float64 `json:"totalCost,omitempty"`
	CostPerUnit         float64 `json:"costPerUnit,omitempty"`
}

func (e SupplierEconomicData) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *SupplierEconomicData) Scan(src interface{}) error  { return jsonbScan(src, e) }

type SupplierEnvironmentalData struct {
	CarbonFootprint  float64 `json:"carbonFootprint"`
	WasteManagement  string  `json:"wasteManagement,omitempty"`
	EnergyEfficiency string  `json:"energyEfficiency,omitempty"`
	WaterUsage       float64 `json:"waterUsage,omitempty"`
	Emissions        float64 `json:"emissions,omitempty"`
}

func (e SupplierEnvironmentalData) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *SupplierEnvironmentalData) Scan(src interface{}) error  { return jsonbScan(src, e) }

// SupplierAssessment carries the pre-normalized 0-100 sub-scores consumed by
// the trade-off engine. The service stores them as entered; it does not
// derive them.
type SupplierAssessment struct {
	Economic struct {
		Cost        float64 `json:"cost"`
		LeadTime    float64 `json:"leadTime"`
		Reliability float64 `json:"reliability"`
		Score       float64 `json:"score"`
	} `json:"economic"`
	Quality struct {
		DefectRate  float64 `json:"defectRate"`
		Durability  float64 `json:"durability"`
		Consistency float64 `json:"consistency"`
		Score       float64 `json:"score"`
	} `json:"quality"`
	Environmental struct {
		CarbonFootprint float64 `json:"carbonFootprint"`
		WaterUsage      float64 `json:"waterUsage"`
		WasteProduction float64 `json:"wasteProduction"`
		Score           float64 `json:"score"`
	} `json:"environmental"`
}

func (a SupplierAssessment) Value() (driver.Value, error) { return jsonbValue(a) }
func (a *SupplierAssessment) Scan(src interface{}) error  { return jsonbScan(src, a) }

// Supplier is an external vendor providing one or more materials. The
// materials list is the inverse of RawMaterial.Suppliers and is derived from
// the same join table, so the two sides cannot drift.
type Supplier struct {
	ID       string   `gorm:"primaryKey;size:64" json:"id"`
	Name     string   `gorm:"size:200;not null" json:"name"`
	Location Location `gorm:"type:jsonb" json:"location"`

	Certifications pq.StringArray `gorm:"type:text[]" json:"certifications"`
	// Free text; sometimes a comma-joined multi-value like "Truck, Rail".
	TransportMode         string   `gorm:"size:100" json:"transportMode"`
	Distance              *float64 `json:"distance"`
	TransportationDetails string   `gorm:"type:text" json:"transportationDetails,omitempty"`
	ProductionCapacity    string   `gorm:"size:100" json:"productionCapacity,omitempty"`
	LeadTime              int      `json:"leadTime,omitempty"`
	OperatingHours        string   `gorm:"size:100" json:"operatingHours,omitempty"`
	PerformanceHistory    string   `gorm:"type:text" json:"performanceHistory,omitempty"`
	RiskScore             float64  `json:"riskScore"`

	ContactInfo       ContactInfo               `gorm:"type:jsonb" json:"contactInfo"`
	EconomicData      SupplierEconomicData      `gorm:"type:jsonb" json:"economicData"`
	EnvironmentalData SupplierEnvironmentalData `gorm:"type:jsonb" json:"environmentalData"`
	Assessment        *SupplierAssessment       `gorm:"type:jsonb" json:"assessment,omitempty"`

	Materials []string `gorm:"-" json:"materials"`

	MaterialLinks []MaterialSupplier `gorm:"foreignKey:SupplierID" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID(SupplierIDPrefix)
	}
	return nil
}

// ResolveMaterials populates the derived Materials list from loaded links.
func (s *Supplier) ResolveMaterials() {
	ids := make([]string, 0, len(s.MaterialLinks))
	for _, l := range s.MaterialLinks {
		ids = append(ids, l.MaterialID)
	}
	s.Materials = ids
}
