package entity

import (
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomerKhata is a customer's running credit account. The totals are kept
// on the row for fast reads; KhataTransaction rows are the history.
type CustomerKhata struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	CustomerName string          `gorm:"size:255;not null;index" json:"customer_name"`
	PhoneNumber  string          `gorm:"size:50" json:"phone_number"`
	TotalUdhaar  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_udhaar"`
	TotalPaid    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_paid"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `gorm:"index" json:"updated_at"`
}

// TableName returns the table name for the CustomerKhata model
func (CustomerKhata) TableName() string {
	return "customer_khata"
}

// Balance is the amount the customer still owes
func (c *CustomerKhata) Balance() decimal.Decimal {
	return c.TotalUdhaar.Sub(c.TotalPaid)
}

// KhataTransaction is one append-only ledger entry
type KhataTransaction struct {
	ID          int64                `gorm:"primaryKey" json:"id"`
	CustomerID  int64                `gorm:"not null;index" json:"customer_id"`
	Type        enum.TransactionType `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string               `gorm:"type:text" json:"description"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`

	// Relationships
	Customer *CustomerKhata `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the KhataTransaction model
func (KhataTransaction) TableName() string {
	return "khata_transactions"
}

// Signed returns the amount as it moves the balance: credit positive, payment negative
func (t *KhataTransaction) Signed() decimal.Decimal {
	if t.Type == enum.TransactionPaymentReceived {
		return t.Amount.Neg()
	}
	return t.Amount
}
