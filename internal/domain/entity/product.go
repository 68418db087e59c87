package entity

import (
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Product represents a handset or an accessory line in stock
type Product struct {
	ID            int64            `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Type          enum.ProductType `gorm:"size:20;not null;index" json:"type"`
	IMEINumber    *string          `gorm:"column:imei_number;size:20" json:"imei_number,omitempty"` // Handsets only
	PurchasePrice decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"purchase_price"`
	SellingPrice  decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"selling_price"`
	Quantity      int              `gorm:"not null" json:"quantity"`
	IsSold        bool             `gorm:"not null;default:false;index" json:"is_sold"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Profit is the margin on the units still in stock
func (p *Product) Profit() decimal.Decimal {
	return p.SellingPrice.Sub(p.PurchasePrice).Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsHandset reports whether the product is a serialised handset
func (p *Product) IsHandset() bool {
	return p.Type == enum.ProductTypeHandset
}

// IMEI returns the IMEI or an empty string
func (p *Product) IMEI() string {
	if p.IMEINumber == nil {
		return ""
	}
	return *p.IMEINumber
}
