package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records one sell action. Product name and prices are copied at sale
// time so later product edits leave history untouched.
type Sale struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	ProductID     int64           `gorm:"not null;index" json:"product_id"`
	CustomerID    *int64          `gorm:"index" json:"customer_id,omitempty"`
	ProductName   string          `gorm:"size:255;not null" json:"product_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"purchase_price"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"selling_price"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Profit        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"profit"`
	IsCredit      bool            `gorm:"column:is_udhaar;not null;default:false" json:"is_credit"`
	IsPaid        bool            `gorm:"not null" json:"is_paid"`
	SoldAt        time.Time       `gorm:"not null;index" json:"sold_at"`

	// Relationships
	Product  *Product       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Customer *CustomerKhata `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// StatusLabel is PAID or UDHAAR as printed on receipts
func (s *Sale) StatusLabel() string {
	if s.IsPaid {
		return "PAID"
	}
	return "UDHAAR"
}
