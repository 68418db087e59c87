package repository

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) TotalReceivable(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.CustomerKhata{}), "total_udhaar - total_paid")
}

func (r *analyticsRepository) TotalProfit(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.Sale{}), "profit")
}

func (r *analyticsRepository) TotalCashReceived(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.Sale{}).Where("is_paid = ?", true), "total_amount")
}

func (r *analyticsRepository) TotalPendingCredit(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.Sale{}).
		Where("is_udhaar = ? AND is_paid = ?", true, false), "total_amount")
}

func (r *analyticsRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.Sale{}), "total_amount")
}

func (r *analyticsRepository) OldPhoneSummary(ctx context.Context) (*domainRepo.OldPhoneSummary, error) {
	var row struct {
		TotalPurchaseAmount decimal.Decimal
		TotalProfit         decimal.Decimal
		UnsoldCount         int64
		SoldCount           int64
	}

	err := conn(ctx, r.db).Raw(`
		SELECT
			COALESCE(SUM(purchase_price), 0) AS total_purchase_amount,
			COALESCE(SUM(CASE WHEN is_sold = 1 THEN sold_price - purchase_price ELSE 0 END), 0) AS total_profit,
			COUNT(CASE WHEN is_sold = 0 THEN 1 END) AS unsold_count,
			COUNT(CASE WHEN is_sold = 1 THEN 1 END) AS sold_count
		FROM old_phone_purchases
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.OldPhoneSummary{
		TotalPurchaseAmount: row.TotalPurchaseAmount.Round(2),
		TotalProfit:         row.TotalProfit.Round(2),
		UnsoldCount:         row.UnsoldCount,
		SoldCount:           row.SoldCount,
	}, nil
}
