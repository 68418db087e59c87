package service

import (
	"strings"

	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/shopspring/decimal"
)

// parseMoney reads a price typed into a form. Blank, unparsable and negative
// values are rejected; so is zero unless allowZero is set.
func parseMoney(field, raw string, allowZero bool) (decimal.Decimal, *apperror.FieldError) {
	v, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(raw, ",", "")))
	if err != nil || v.IsNegative() || (!allowZero && v.IsZero()) {
		return decimal.Zero, &apperror.FieldError{Field: field, Message: "Please enter a valid price"}
	}
	return v.Round(2), nil
}

// FormatMoney renders an amount the way receipts and reports print it
func FormatMoney(currency string, amount decimal.Decimal) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}
