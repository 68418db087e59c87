package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService handles thermal printing of receipts.
type PrinterService struct {
	printer     printer.Printer
	share       *ShareService
	printerType string
	width       int
	currency    string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, share *ShareService, printerType string, width int, currency string) *PrinterService {
	return &PrinterService{
		printer:     p,
		share:       share,
		printerType: printerType,
		width:       width,
		currency:    currency,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// FormatReceipt converts a receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)
	RenderReceipt(doc, r, s.currency)
	return doc.Bytes()
}

// PrintSaleReceipt prints the receipt for a sale. The receipt is returned even
// when printing fails so the caller can fall back to sharing it.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID int64) (*entity.Receipt, error) {
	receipt, err := s.share.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, s.FormatReceipt(receipt)); err != nil {
		log.Printf("Printer error (sale %d): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// TestPrint sends a sample receipt to the printer.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    entity.ReceiptHeader{ShopName: "PRINTER TEST"},
		ReceiptNo: "TEST-001",
		Date:      time.Now(),
		Item:      "Test Item",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(10),
		Total:     decimal.NewFromInt(10),
		Status:    "PAID",
	}

	if err := s.printer.Print(ctx, s.FormatReceipt(receipt)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}
