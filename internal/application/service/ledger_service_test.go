package service

import (
	"context"
	"testing"

	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_BalanceMatchesHistory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.customer(t, "Asif")

	_, err := h.ledger.PostCredit(ctx, c.ID, money("2000"), "Old balance")
	require.NoError(t, err)
	_, err = h.ledger.PostPayment(ctx, c.ID, money("750.50"), "Cash")
	require.NoError(t, err)
	_, err = h.ledger.PostCredit(ctx, c.ID, money("300"), "")
	require.NoError(t, err)

	got, err := h.ledger.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	requireMoney(t, "2300", got.TotalUdhaar)
	requireMoney(t, "750.50", got.TotalPaid)

	txns, err := h.ledger.Transactions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	sum := money("0")
	for _, txn := range txns {
		sum = sum.Add(txn.Signed())
	}
	assert.True(t, got.Balance().Equal(sum), "balance %s history %s", got.Balance(), sum)

	total, err := h.ledger.TotalReceivable(ctx)
	require.NoError(t, err)
	requireMoney(t, "1549.50", total)
}

func TestLedger_FractionalAmountsSettle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.customer(t, "Hamza")

	_, err := h.ledger.PostCredit(ctx, c.ID, money("0.1"), "Screen guard")
	require.NoError(t, err)
	_, err = h.ledger.PostCredit(ctx, c.ID, money("0.2"), "Cover")
	require.NoError(t, err)
	_, err = h.ledger.PostPayment(ctx, c.ID, money("0.3"), "Cash")
	require.NoError(t, err)

	got, err := h.ledger.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	requireMoney(t, "0.3", got.TotalUdhaar)
	requireMoney(t, "0.3", got.TotalPaid)
	requireMoney(t, "0", got.Balance())

	txns, err := h.ledger.Transactions(ctx, c.ID)
	require.NoError(t, err)
	sum := money("0")
	for _, txn := range txns {
		sum = sum.Add(txn.Signed())
	}
	assert.True(t, got.Balance().Equal(sum), "balance %s history %s", got.Balance(), sum)

	total, err := h.ledger.TotalReceivable(ctx)
	require.NoError(t, err)
	requireMoney(t, "0", total)

	report, err := h.share.BuildKhataReport(ctx, c.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "CLEARED", report.Status())
}

func TestLedger_PostValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.customer(t, "Kamran")

	_, err := h.ledger.PostCredit(ctx, c.ID, money("0"), "")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = h.ledger.PostPayment(ctx, c.ID, money("-5"), "")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = h.ledger.PostCredit(ctx, c.ID+50, money("10"), "")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	txns, err := h.ledger.Transactions(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestLedger_CustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.ledger.AddCustomer(ctx, &CustomerInput{Name: "   "})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	c := h.customer(t, "Nadia")
	requireMoney(t, "0", c.Balance())

	updated, err := h.ledger.UpdateCustomer(ctx, c.ID, &CustomerInput{Name: " Nadia Khan ", Phone: "0333"})
	require.NoError(t, err)
	assert.Equal(t, "Nadia Khan", updated.CustomerName)

	found, err := h.ledger.ListCustomers(ctx, "khan")
	require.NoError(t, err)
	require.Len(t, found, 1)

	cable := h.accessory(t, "Cable", 3, "100", "200")
	sale, err := h.sales.SellProduct(ctx, &SellInput{
		ProductID:    cable.ID,
		Quantity:     1,
		SellingPrice: money("200"),
		CustomerID:   &c.ID,
		IsCredit:     true,
	})
	require.NoError(t, err)

	require.NoError(t, h.ledger.DeleteCustomer(ctx, c.ID))

	_, err = h.ledger.GetCustomer(ctx, c.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	txns, err := h.ledger.Transactions(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)

	kept, err := h.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CustomerID)

	err = h.ledger.DeleteCustomer(ctx, c.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestLedger_TransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.customer(t, "Sana")

	_, err := h.ledger.PostCredit(ctx, c.ID, money("100"), "first")
	require.NoError(t, err)
	_, err = h.ledger.PostPayment(ctx, c.ID, money("50"), "second")
	require.NoError(t, err)

	txns, err := h.ledger.Transactions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "second", txns[0].Description)
	assert.Equal(t, enum.TransactionPaymentReceived, txns[0].Type)
}
