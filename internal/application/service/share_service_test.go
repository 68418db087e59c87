package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSaleReceipt(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	completeSetup(t, h)

	cable := h.accessory(t, "USB-C Cable", 5, "150", "300")
	c := h.customer(t, "Bilal")
	sale, err := h.sales.SellProduct(ctx, &SellInput{
		ProductID:    cable.ID,
		Quantity:     2,
		SellingPrice: money("300"),
		CustomerID:   &c.ID,
		IsCredit:     true,
	})
	require.NoError(t, err)

	text, err := h.share.SaleReceipt(ctx, sale.ID)
	require.NoError(t, err)

	for _, want := range []string{
		"SALES RECEIPT",
		"Ali Mobiles",
		"Customer: Bilal",
		"Item: USB-C Cable",
		"Qty: 2",
		"Price: Rs. 300.00",
		"Total: Rs. 600.00",
		"Status: UDHAAR",
		"Thank you for your purchase!",
	} {
		assert.Contains(t, text, want)
	}
	assert.Regexp(t, `Receipt: RCPT-\d{6}-[0-9A-F]{4}`, text)
	assert.NotContains(t, text, "\x1b", "share text carries no printer commands")

	_, err = h.share.SaleReceipt(ctx, sale.ID+10)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestKhataReport(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	c := h.customer(t, "Asif")

	day1 := time.Date(2024, 7, 1, 10, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 5)
	h.ledger.now = func() time.Time { return day1 }
	_, err := h.ledger.PostCredit(ctx, c.ID, money("1000"), "Phone cover")
	require.NoError(t, err)
	h.ledger.now = func() time.Time { return day2 }
	_, err = h.ledger.PostPayment(ctx, c.ID, money("400"), "")
	require.NoError(t, err)

	text, err := h.share.KhataReport(ctx, c.ID, nil, nil)
	require.NoError(t, err)
	for _, want := range []string{
		"KHATA LEDGER REPORT",
		"Customer: Asif",
		"Period: All time",
		"Total Udhaar: Rs. 1000.00",
		"Total Paid: Rs. 400.00",
		"Balance: Rs. 600.00",
		"Status: RECEIVABLE",
		"TRANSACTIONS (2)",
		"Udhaar: -Rs. 1000.00",
		"Payment: +Rs. 400.00",
		"Note: Phone cover",
		"Generated by Mobile Shop ERP",
	} {
		assert.Contains(t, text, want)
	}
	// Newest entry is listed first
	assert.Less(t, strings.Index(text, "Payment:"), strings.Index(text, "Udhaar: -"))

	from := day2.Add(-time.Hour)
	report, err := h.share.BuildKhataReport(ctx, c.ID, &from, nil)
	require.NoError(t, err)
	require.Len(t, report.Transactions, 1)
	requireMoney(t, "0", report.TotalUdhaar)
	requireMoney(t, "400", report.TotalPaid)
	assert.Equal(t, "CLEARED", report.Status())
}

func TestPrintSaleReceipt(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	cable := h.accessory(t, "Cable", 2, "100", "200")
	sale, err := h.sales.SellProduct(ctx, &SellInput{ProductID: cable.ID, Quantity: 1, SellingPrice: money("200")})
	require.NoError(t, err)

	receipt, err := h.print.PrintSaleReceipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultShopName, receipt.Header.ShopName)
	assert.Equal(t, "PAID", receipt.Status)

	data, jobs := h.printer.Last()
	assert.Equal(t, 1, jobs)
	assert.True(t, bytes.HasPrefix(data, []byte{0x1B, '@'}), "starts with printer init")
	assert.True(t, bytes.HasSuffix(data, []byte{0x1D, 'V', 0x00}), "ends with paper cut")
	assert.Contains(t, string(data), "Cable")

	status := h.print.GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)

	_, err = h.print.TestPrint(ctx)
	require.NoError(t, err)
	_, jobs = h.printer.Last()
	assert.Equal(t, 2, jobs)
}

func TestExportWorkbooks(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	cable := h.accessory(t, "Cable", 5, "100", "200")
	c := h.customer(t, "Bilal")
	_, err := h.sales.SellProduct(ctx, &SellInput{ProductID: cable.ID, Quantity: 2, SellingPrice: money("200")})
	require.NoError(t, err)
	_, err = h.sales.SellProduct(ctx, &SellInput{
		ProductID:    cable.ID,
		Quantity:     1,
		SellingPrice: money("250"),
		CustomerID:   &c.ID,
		IsCredit:     true,
	})
	require.NoError(t, err)

	path, err := h.export.SalesWorkbook(ctx, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(salesSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Cable", rows[1][1])
	assert.Equal(t, "Udhaar", rows[1][6], "newest sale first")
	assert.Equal(t, "Bilal", rows[1][8])

	khataPath, err := h.export.KhataWorkbook(ctx, c.ID)
	require.NoError(t, err)

	k, err := excelize.OpenFile(khataPath)
	require.NoError(t, err)
	defer k.Close()

	krows, err := k.GetRows(khataSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(krows), 2)
	assert.Equal(t, "Udhaar", krows[1][1])
	assert.Equal(t, "250", krows[1][2])

	_, err = h.export.KhataWorkbook(ctx, c.ID+9)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
