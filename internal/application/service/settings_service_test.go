package service

import (
	"context"
	"testing"

	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	h := newHarness(t)

	s, err := h.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultShopName, s.ShopName)
	assert.False(t, s.SetupCompleted)
}

func TestSettings_UpdateShopDetails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	completeSetup(t, h)

	err := h.settings.UpdateShopDetails(ctx, "", "Ali")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, h.settings.UpdateShopDetails(ctx, " Ali Mobile Zone ", "Ali Raza"))

	s, err := h.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ali Mobile Zone", s.ShopName)
	assert.Equal(t, "Ali Raza", s.OwnerName)
	assert.True(t, s.SetupCompleted)
}

func TestSettings_ChangePin(t *testing.T) {
	h := newHarness(t)
	completeSetup(t, h)

	assert.ErrorIs(t, h.settings.ChangePin("9999", "5678", "5678"), apperror.ErrPinMismatch)
	assert.Error(t, h.settings.ChangePin("1234", "5678", "5679"))
	require.NoError(t, h.settings.ChangePin("1234", "5678", "5678"))

	_, err := h.auth.VerifyPin("1234")
	assert.ErrorIs(t, err, apperror.ErrPinMismatch)
	_, err = h.auth.VerifyPin("5678")
	assert.NoError(t, err)
}

func TestSettings_FactoryReset(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	completeSetup(t, h)

	cable := h.accessory(t, "Cable", 3, "100", "200")
	c := h.customer(t, "Bilal")
	_, err := h.sales.SellProduct(ctx, &SellInput{
		ProductID:    cable.ID,
		Quantity:     1,
		SellingPrice: money("200"),
		CustomerID:   &c.ID,
		IsCredit:     true,
	})
	require.NoError(t, err)
	session, err := h.auth.VerifyPin("1234")
	require.NoError(t, err)

	require.NoError(t, h.settings.FactoryReset(ctx))

	done, err := h.setup.IsSetupCompleted()
	require.NoError(t, err)
	assert.False(t, done)

	customers, err := h.ledger.ListCustomers(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, customers)

	stats, err := h.stats.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.StockCount)
	requireMoney(t, "0", stats.TotalRevenue)

	// The old signing secret is gone with the store
	assert.ErrorIs(t, h.auth.ValidateSession(session.Token), apperror.ErrSessionExpired)

	s, err := h.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultShopName, s.ShopName)
}
