package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessory(name string, qty int, buy, sell int64) *entity.Product {
	return &entity.Product{
		Name:          name,
		Type:          enum.ProductTypeAccessory,
		PurchasePrice: decimal.NewFromInt(buy),
		SellingPrice:  decimal.NewFromInt(sell),
		Quantity:      qty,
		CreatedAt:     time.Now(),
	}
}

func TestProductRepository_DecrementOnSale(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewTestDB(t))

	cable := newAccessory("USB-C Cable", 5, 150, 300)
	require.NoError(t, repo.Create(ctx, cable))

	ok, err := repo.DecrementOnSale(ctx, cable.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.False(t, got.IsSold)

	// Asking for more than is left changes nothing
	ok, err = repo.DecrementOnSale(ctx, cable.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.GetByID(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	// Selling the rest flips the row to sold
	ok, err = repo.DecrementOnSale(ctx, cable.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, cable.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.True(t, got.IsSold)
}

func TestProductRepository_ListAvailable(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewTestDB(t))

	imei := "356938035643809"
	phone := &entity.Product{
		Name:          "Redmi Note 13",
		Type:          enum.ProductTypeHandset,
		IMEINumber:    &imei,
		PurchasePrice: decimal.NewFromInt(40000),
		SellingPrice:  decimal.NewFromInt(45000),
		Quantity:      1,
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, phone))
	require.NoError(t, repo.Create(ctx, newAccessory("Charger 20W", 4, 500, 800)))

	all, err := repo.ListAvailable(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Charger 20W", all[0].Name, "newest first")

	handsets := enum.ProductTypeHandset
	only, err := repo.ListAvailable(ctx, &domainRepo.ProductFilterParams{Type: &handsets})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, phone.ID, only[0].ID)

	byIMEI, err := repo.ListAvailable(ctx, &domainRepo.ProductFilterParams{Search: "64380"})
	require.NoError(t, err)
	require.Len(t, byIMEI, 1)
	assert.Equal(t, "Redmi Note 13", byIMEI[0].Name)

	found, err := repo.GetByIMEI(ctx, imei)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, phone.ID, found.ID)

	missing, err := repo.GetByIMEI(ctx, "000000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_DuplicateIMEI(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewTestDB(t))

	imei := "356938035643809"
	mk := func() *entity.Product {
		v := imei
		return &entity.Product{
			Name:          "Galaxy A05",
			Type:          enum.ProductTypeHandset,
			IMEINumber:    &v,
			PurchasePrice: decimal.NewFromInt(20000),
			SellingPrice:  decimal.NewFromInt(23000),
			Quantity:      1,
			CreatedAt:     time.Now(),
		}
	}

	require.NoError(t, repo.Create(ctx, mk()))
	assert.ErrorIs(t, repo.Create(ctx, mk()), domainRepo.ErrDuplicateKey)
}

func TestProductRepository_StockFigures(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testutil.NewTestDB(t))

	require.NoError(t, repo.Create(ctx, newAccessory("Case", 3, 100, 250)))
	require.NoError(t, repo.Create(ctx, newAccessory("Screen guard", 10, 50, 120)))

	sold := newAccessory("Earbuds", 1, 900, 1500)
	require.NoError(t, repo.Create(ctx, sold))
	ok, err := repo.DecrementOnSale(ctx, sold.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	count, err := repo.CountInStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	profit, err := repo.PotentialProfit(ctx)
	require.NoError(t, err)
	// 3*150 + 10*70
	assert.True(t, decimal.NewFromInt(1150).Equal(profit), profit.String())
}
