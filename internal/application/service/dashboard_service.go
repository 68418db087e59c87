package service

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalReceivable    decimal.Decimal `json:"total_receivable"`
	TotalCashReceived  decimal.Decimal `json:"total_cash_received"`
	TotalPendingCredit decimal.Decimal `json:"total_pending_credit"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	PotentialProfit    decimal.Decimal `json:"potential_profit"`
	StockCount         int64           `json:"stock_count"`
}

// GetDashboardStats recomputes every figure from the tables
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProfit, err = s.analyticsRepo.TotalProfit(ctx); err != nil {
		return nil, err
	}
	if stats.TotalReceivable, err = s.analyticsRepo.TotalReceivable(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCashReceived, err = s.analyticsRepo.TotalCashReceived(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPendingCredit, err = s.analyticsRepo.TotalPendingCredit(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.PotentialProfit, err = s.productRepo.PotentialProfit(ctx); err != nil {
		return nil, err
	}
	if stats.StockCount, err = s.productRepo.CountInStock(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
