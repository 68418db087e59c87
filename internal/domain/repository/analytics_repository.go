package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// OldPhoneSummary aggregates the used-phone intake book
type OldPhoneSummary struct {
	TotalPurchaseAmount decimal.Decimal
	TotalProfit         decimal.Decimal
	UnsoldCount         int64
	SoldCount           int64
}

// AnalyticsRepository defines interface for dashboard aggregation queries.
// Every call recomputes from the tables.
type AnalyticsRepository interface {
	// TotalReceivable is the sum of every customer's balance
	TotalReceivable(ctx context.Context) (decimal.Decimal, error)

	// TotalProfit sums profit over all sales
	TotalProfit(ctx context.Context) (decimal.Decimal, error)

	// TotalCashReceived sums paid sales
	TotalCashReceived(ctx context.Context) (decimal.Decimal, error)

	// TotalPendingCredit sums credit sales not yet paid
	TotalPendingCredit(ctx context.Context) (decimal.Decimal, error)

	// TotalRevenue sums every sale amount
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	OldPhoneSummary(ctx context.Context) (*OldPhoneSummary, error)
}
