package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type decimalTotal struct {
	Total decimal.Decimal
}

// sumDecimal runs SUM(expr) over query. SQLite hands NUMERIC sums back as
// floats, so the result is rounded to the column scale.
func sumDecimal(query *gorm.DB, expr string) (decimal.Decimal, error) {
	var out decimalTotal
	err := query.Select("COALESCE(SUM(" + expr + "), 0) AS total").Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total.Round(2), nil
}
