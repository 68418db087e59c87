package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

const (
	salesSheet = "Sales"
	khataSheet = "Khata"
)

// ExportService writes sales history and khata statements to .xlsx files
type ExportService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	dir          string
	now          func() time.Time
}

// NewExportService creates a new export service writing into dir
func NewExportService(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, dir string) *ExportService {
	return &ExportService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		dir:          dir,
		now:          time.Now,
	}
}

func (s *ExportService) path(name string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.xlsx", name, s.now().Format("20060102_150405"))), nil
}

// newWorkbook renames the default sheet and writes a bold header row
func newWorkbook(sheet string, header []interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// SalesWorkbook exports every sale matching filter (pagination is ignored)
// and returns the file path.
func (s *ExportService) SalesWorkbook(ctx context.Context, filter *SaleFilter) (string, error) {
	params := &repository.SaleFilterParams{}
	if filter != nil {
		params.Search = filter.Query
		params.CustomerID = filter.CustomerID
		params.From = filter.From
		params.To = filter.To
	}

	sales, _, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return "", err
	}

	f, err := newWorkbook(salesSheet, []interface{}{
		"Date", "Product", "Qty", "Unit Price", "Total", "Profit", "Type", "Status", "Customer",
	})
	if err != nil {
		return "", err
	}
	defer f.Close()

	row := 2
	var total, profit float64
	for _, sale := range sales {
		saleType := "Cash"
		if sale.IsCredit {
			saleType = "Udhaar"
		}
		customer := ""
		if sale.Customer != nil {
			customer = sale.Customer.CustomerName
		}
		err := setRow(f, salesSheet, row, []interface{}{
			sale.SoldAt.Format("2006-01-02 15:04"),
			sale.ProductName,
			sale.Quantity,
			sale.SellingPrice.InexactFloat64(),
			sale.TotalAmount.InexactFloat64(),
			sale.Profit.InexactFloat64(),
			saleType,
			sale.StatusLabel(),
			customer,
		})
		if err != nil {
			return "", err
		}
		total += sale.TotalAmount.InexactFloat64()
		profit += sale.Profit.InexactFloat64()
		row++
	}

	if err := setRow(f, salesSheet, row+1, []interface{}{"TOTAL", "", "", "", total, profit}); err != nil {
		return "", err
	}

	return s.save(f, "sales")
}

// KhataWorkbook exports one customer's statement and returns the file path
func (s *ExportService) KhataWorkbook(ctx context.Context, customerID int64) (string, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", apperror.NewNotFoundError("Customer")
	}

	txns, err := s.customerRepo.ListTransactions(ctx, customerID, nil, nil)
	if err != nil {
		return "", err
	}

	f, err := newWorkbook(khataSheet, []interface{}{"Date", "Type", "Amount", "Description"})
	if err != nil {
		return "", err
	}
	defer f.Close()

	row := 2
	for _, t := range txns {
		err := setRow(f, khataSheet, row, []interface{}{
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Type.Label(),
			t.Signed().InexactFloat64(),
			t.Description,
		})
		if err != nil {
			return "", err
		}
		row++
	}

	summary := [][]interface{}{
		{"Customer", customer.CustomerName},
		{"Phone", customer.PhoneNumber},
		{"Total Udhaar", customer.TotalUdhaar.InexactFloat64()},
		{"Total Paid", customer.TotalPaid.InexactFloat64()},
		{"Balance", customer.Balance().InexactFloat64()},
	}
	row++
	for _, line := range summary {
		if err := setRow(f, khataSheet, row, line); err != nil {
			return "", err
		}
		row++
	}

	return s.save(f, fmt.Sprintf("khata_%d", customerID))
}

func (s *ExportService) save(f *excelize.File, name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
