package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName  string `json:"shop_name"`
	OwnerName string `json:"owner_name,omitempty"`
}

// Receipt is a value object composed from a sale at share/print time.
// It is not persisted.
type Receipt struct {
	Header    ReceiptHeader   `json:"header"`
	ReceiptNo string          `json:"receipt_no"`
	Date      time.Time       `json:"date"`
	Customer  string          `json:"customer,omitempty"`
	Item      string          `json:"item"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
}

// KhataReport is the customer statement handed to the share sheet.
type KhataReport struct {
	CustomerName string             `json:"customer_name"`
	From         *time.Time         `json:"from,omitempty"`
	To           *time.Time         `json:"to,omitempty"`
	TotalUdhaar  decimal.Decimal    `json:"total_udhaar"`
	TotalPaid    decimal.Decimal    `json:"total_paid"`
	Balance      decimal.Decimal    `json:"balance"`
	Transactions []KhataTransaction `json:"transactions"`
}

// Status is RECEIVABLE while money is owed, CLEARED otherwise
func (r *KhataReport) Status() string {
	if r.Balance.IsPositive() {
		return "RECEIVABLE"
	}
	return "CLEARED"
}
