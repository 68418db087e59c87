package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OldPhonePurchase is the intake record for a used phone bought from a walk-in seller
type OldPhonePurchase struct {
	ID              int64            `gorm:"primaryKey" json:"id"`
	SellerName      string           `gorm:"size:255;not null" json:"seller_name"`
	SellerCNIC      string           `gorm:"column:seller_cnic;size:20;not null" json:"seller_cnic"`
	MobileModel     string           `gorm:"size:255;not null" json:"mobile_model"`
	MobileColor     string           `gorm:"size:100;not null" json:"mobile_color"`
	PurchasePrice   decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"purchase_price"`
	IMEINumber      string           `gorm:"column:imei_number;size:20;not null;index" json:"imei_number"`
	HasBox          bool             `gorm:"not null;default:false" json:"has_box"`
	HasCharger      bool             `gorm:"not null;default:false" json:"has_charger"`
	HasHandsfree    bool             `gorm:"not null;default:false" json:"has_handsfree"`
	CustomAccessory *string          `gorm:"size:255" json:"custom_accessory,omitempty"`
	Signature       *string          `gorm:"type:text" json:"signature,omitempty"`
	CreatedAt       time.Time        `gorm:"index" json:"created_at"`
	IsSold          bool             `gorm:"not null;default:false;index" json:"is_sold"`
	SoldPrice       *decimal.Decimal `gorm:"type:numeric(14,2)" json:"sold_price,omitempty"`
	SoldAt          *time.Time       `json:"sold_at,omitempty"`
}

// TableName returns the table name for the OldPhonePurchase model
func (OldPhonePurchase) TableName() string {
	return "old_phone_purchases"
}

// Profit is the resale margin, zero until the phone is sold
func (p *OldPhonePurchase) Profit() decimal.Decimal {
	if !p.IsSold || p.SoldPrice == nil {
		return decimal.Zero
	}
	return p.SoldPrice.Sub(p.PurchasePrice)
}

// Accessories lists the items handed over with the phone
func (p *OldPhonePurchase) Accessories() []string {
	var items []string
	if p.HasBox {
		items = append(items, "Box")
	}
	if p.HasCharger {
		items = append(items, "Charger")
	}
	if p.HasHandsfree {
		items = append(items, "Handsfree")
	}
	if p.CustomAccessory != nil && *p.CustomAccessory != "" {
		items = append(items, *p.CustomAccessory)
	}
	return items
}
