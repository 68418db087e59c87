package service

import (
	"context"
	"strconv"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/printer"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	receiptDateLayout = "02 Jan 2006 03:04 PM"
	reportDateLayout  = "02 Jan 2006"
)

// ShareService composes the text handed to the platform share sheet
type ShareService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	settings     *SettingsService
	currency     string
}

// NewShareService creates a new share service
func NewShareService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	settings *SettingsService,
	currency string,
) *ShareService {
	return &ShareService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		settings:     settings,
		currency:     currency,
	}
}

// BuildReceipt composes the receipt for a sale
func (s *ShareService) BuildReceipt(ctx context.Context, saleID int64) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	shop, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName:  shop.ShopName,
			OwnerName: shop.OwnerName,
		},
		ReceiptNo: utils.GenerateReceiptNo(sale.ID),
		Date:      sale.SoldAt,
		Item:      sale.ProductName,
		Quantity:  sale.Quantity,
		UnitPrice: sale.SellingPrice,
		Total:     sale.TotalAmount,
		Status:    sale.StatusLabel(),
	}
	if sale.Customer != nil {
		receipt.Customer = sale.Customer.CustomerName
	}
	return receipt, nil
}

// SaleReceipt renders a sale receipt as plain text
func (s *ShareService) SaleReceipt(ctx context.Context, saleID int64) (string, error) {
	receipt, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return "", err
	}
	doc := printer.NewTextDocument(printer.DefaultWidth)
	RenderReceipt(doc, receipt, s.currency)
	return doc.String(), nil
}

// RenderReceipt lays out a receipt. The same layout goes to paper and to text.
func RenderReceipt(doc *printer.Document, r *entity.Receipt, currency string) {
	doc.Title("SALES RECEIPT").
		SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontWide).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetAlign(printer.AlignLeft).
		Separator('=')

	doc.KeyValue("Receipt", r.ReceiptNo).
		KeyValue("Date", r.Date.Format(receiptDateLayout))
	if r.Customer != "" {
		doc.KeyValue("Customer", r.Customer)
	}
	doc.Separator('-')

	doc.KeyValue("Item", r.Item).
		KeyValue("Qty", strconv.Itoa(r.Quantity)).
		KeyValue("Price", FormatMoney(currency, r.UnitPrice)).
		Separator('-').
		SetBold(true).
		KeyValue("Total", FormatMoney(currency, r.Total)).
		SetBold(false).
		KeyValue("Status", r.Status).
		Separator('=')

	doc.SetAlign(printer.AlignCenter).
		Text("Thank you for your purchase!").
		SetAlign(printer.AlignLeft)

	if doc.IsESCPOS() {
		doc.FeedLines(3).Cut()
	}
}

// BuildKhataReport collects a customer's statement. With from/to set, the
// totals cover that period only.
func (s *ShareService) BuildKhataReport(ctx context.Context, customerID int64, from, to *time.Time) (*entity.KhataReport, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	txns, err := s.customerRepo.ListTransactions(ctx, customerID, from, to)
	if err != nil {
		return nil, err
	}

	report := &entity.KhataReport{
		CustomerName: customer.CustomerName,
		From:         from,
		To:           to,
		TotalUdhaar:  decimal.Zero,
		TotalPaid:    decimal.Zero,
		Transactions: txns,
	}
	for _, t := range txns {
		if t.Type == enum.TransactionPaymentReceived {
			report.TotalPaid = report.TotalPaid.Add(t.Amount)
		} else {
			report.TotalUdhaar = report.TotalUdhaar.Add(t.Amount)
		}
	}
	report.Balance = report.TotalUdhaar.Sub(report.TotalPaid)
	return report, nil
}

// KhataReport renders a customer's statement as plain text
func (s *ShareService) KhataReport(ctx context.Context, customerID int64, from, to *time.Time) (string, error) {
	report, err := s.BuildKhataReport(ctx, customerID, from, to)
	if err != nil {
		return "", err
	}
	doc := printer.NewTextDocument(printer.DefaultWidth)
	RenderKhataReport(doc, report, s.currency)
	return doc.String(), nil
}

func reportPeriod(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "All time"
	case from == nil:
		return "Until " + to.Format(reportDateLayout)
	case to == nil:
		return "From " + from.Format(reportDateLayout)
	default:
		return from.Format(reportDateLayout) + " - " + to.Format(reportDateLayout)
	}
}

// RenderKhataReport lays out a customer statement
func RenderKhataReport(doc *printer.Document, r *entity.KhataReport, currency string) {
	doc.Title("KHATA LEDGER REPORT").
		Separator('=').
		KeyValue("Customer", r.CustomerName).
		KeyValue("Period", reportPeriod(r.From, r.To)).
		Separator('-')

	doc.SetBold(true).Text("SUMMARY").SetBold(false).
		KeyValue("Total Udhaar", FormatMoney(currency, r.TotalUdhaar)).
		KeyValue("Total Paid", FormatMoney(currency, r.TotalPaid)).
		KeyValue("Balance", FormatMoney(currency, r.Balance)).
		KeyValue("Status", r.Status()).
		Separator('-')

	doc.SetBold(true).TextF("TRANSACTIONS (%d)", len(r.Transactions)).SetBold(false)
	for _, t := range r.Transactions {
		sign := "-"
		if t.Type == enum.TransactionPaymentReceived {
			sign = "+"
		}
		doc.TextF("%s: %s%s", t.Type.Label(), sign, FormatMoney(currency, t.Amount))
		if t.Description != "" {
			doc.Text("  Note: " + t.Description)
		}
		doc.Text("  Date: " + t.CreatedAt.Format(receiptDateLayout))
	}

	doc.Separator('=').
		SetAlign(printer.AlignCenter).
		Text("Generated by Mobile Shop ERP").
		SetAlign(printer.AlignLeft)

	if doc.IsESCPOS() {
		doc.FeedLines(3).Cut()
	}
}
