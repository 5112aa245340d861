package models

import (
	"database/sql/driver"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VolumeDiscount lowers the unit price once the ordered quantity is
// reached. DiscountPercentage is in [0,100].
type VolumeDiscount struct {
	Quantity           float64 `json:"quantity"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type VolumeDiscounts []VolumeDiscount

func (v VolumeDiscounts) Value() (driver.Value, error) { return jsonbValue(v) }
func (v *VolumeDiscounts) Scan(src interface{}) error  { return jsonbScan(src, v) }

type PricePoint struct {
	Date  JSONTime `json:"date"`
	Price float64  `json:"price"`
}

type PriceHistory []PricePoint

func (p PriceHistory) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *PriceHistory) Scan(src interface{}) error  { return jsonbScan(src, p) }

// SupplierMaterialPricing records what a supplier charges for a material,
// independent of either entity's embedded economics.
type SupplierMaterialPricing struct {
	ID              string          `gorm:"primaryKey;size:64" json:"id"`
	SupplierID      string          `gorm:"size:64;index" json:"supplierId"`
	MaterialID      string          `gorm:"size:64;index" json:"materialId"`
	Supplier        *Supplier       `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
	Material        *RawMaterial    `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE" json:"-"`
	UnitPrice       float64         `json:"unitPrice"`
	Currency        string          `gorm:"size:8;default:EUR" json:"currency"`
	MinOrderQty     float64         `json:"minOrderQuantity"`
	LeadTimeDays    int             `json:"leadTime"`
	TransportCost   float64         `json:"transportCost"`
	VolumeDiscounts VolumeDiscounts `gorm:"type:jsonb" json:"volumeDiscounts,omitempty"`
	PriceHistory    PriceHistory    `gorm:"type:jsonb" json:"priceHistory,omitempty"`
	IsPreferred     bool            `json:"isPreferred"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *SupplierMaterialPricing) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID(PricingIDPrefix)
	}
	return nil
}

// EffectiveUnitPrice applies the steepest volume discount the quantity
// qualifies for. Discounts are percentages off the base unit price.
func (p *SupplierMaterialPricing) EffectiveUnitPrice(quantity float64) float64 {
	best := 0.0
	tiers := make([]VolumeDiscount, len(p.VolumeDiscounts))
	copy(tiers, p.VolumeDiscounts)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Quantity < tiers[j].Quantity })
	for _, t := range tiers {
		if quantity >= t.Quantity && t.DiscountPercentage > best {
			best = t.DiscountPercentage
		}
	}
	price := decimal.NewFromFloat(p.UnitPrice)
	if best > 0 {
		factor := decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(best).Div(decimal.NewFromInt(100)))
		price = price.Mul(factor)
	}
	f, _ := price.Round(4).Float64()
	return f
}
