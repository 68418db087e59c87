package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intake(seller, model, imei string, price int64) *entity.OldPhonePurchase {
	return &entity.OldPhonePurchase{
		SellerName:    seller,
		SellerCNIC:    "35202-1234567-1",
		MobileModel:   model,
		MobileColor:   "Black",
		PurchasePrice: decimal.NewFromInt(price),
		IMEINumber:    imei,
		HasBox:        true,
		CreatedAt:     time.Now(),
	}
}

func TestOldPhoneRepository_SellFlow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewOldPhonePurchaseRepository(db)
	analytics := NewAnalyticsRepository(db)

	a := intake("Faisal", "iPhone 11", "353918101234567", 60000)
	b := intake("Rehan", "Vivo Y20", "861234567890123", 15000)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	// Same IMEI cannot be in stock twice
	assert.ErrorIs(t, repo.Create(ctx, intake("Other", "iPhone 11", "353918101234567", 1)), domainRepo.ErrDuplicateKey)

	ok, err := repo.MarkAsSold(ctx, a.ID, decimal.NewFromInt(68000), time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkAsSold(ctx, a.ID, decimal.NewFromInt(70000), time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "already sold")

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSold)
	require.NotNil(t, got.SoldAt)
	assert.True(t, decimal.NewFromInt(8000).Equal(got.Profit()))

	unsold, err := repo.GetUnsoldByIMEI(ctx, "353918101234567")
	require.NoError(t, err)
	assert.Nil(t, unsold)

	// After the sale the IMEI can be bought in again
	require.NoError(t, repo.Create(ctx, intake("Faisal", "iPhone 11", "353918101234567", 55000)))

	sold, err := repo.List(ctx, domainRepo.OldPhoneSold, "")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, a.ID, sold[0].ID)

	inStock, err := repo.List(ctx, domainRepo.OldPhoneUnsold, "")
	require.NoError(t, err)
	assert.Len(t, inStock, 2)

	found, err := repo.List(ctx, domainRepo.OldPhoneAll, "vivo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)

	summary, err := analytics.OldPhoneSummary(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(130000).Equal(summary.TotalPurchaseAmount), summary.TotalPurchaseAmount.String())
	assert.True(t, decimal.NewFromInt(8000).Equal(summary.TotalProfit), summary.TotalProfit.String())
	assert.Equal(t, int64(2), summary.UnsoldCount)
	assert.Equal(t, int64(1), summary.SoldCount)
}
