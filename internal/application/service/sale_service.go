package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleService records sales and settles credit sales
type SaleService struct {
	tx           repository.Transactor
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	feed         *observe.Feed
	now          func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(
	tx repository.Transactor,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	feed *observe.Feed,
) *SaleService {
	return &SaleService{
		tx:           tx,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		feed:         feed,
		now:          time.Now,
	}
}

// SellInput is one sell action from the POS screen
type SellInput struct {
	ProductID    int64
	Quantity     int
	SellingPrice decimal.Decimal
	CustomerID   *int64
	IsCredit     bool
}

func insufficientStock(available int) error {
	return &apperror.AppError{
		Kind:    apperror.ErrInsufficientStock.Kind,
		Message: apperror.ErrInsufficientStock.Message,
		Errors:  []apperror.FieldError{{Field: "quantity", Message: fmt.Sprintf("Available: %d", available)}},
	}
}

// SellProduct writes the sale, the stock decrement and, for credit sales, the
// khata posting in one transaction. Nothing is written if any step fails.
func (s *SaleService) SellProduct(ctx context.Context, input *SellInput) (*entity.Sale, error) {
	if !input.SellingPrice.IsPositive() {
		return nil, apperror.NewFieldError("selling_price", "Please enter a valid selling price")
	}
	if input.Quantity < 1 {
		return nil, apperror.NewFieldError("quantity", "Quantity must be at least 1")
	}
	if input.IsCredit && input.CustomerID == nil {
		return nil, apperror.NewFieldError("customer", "Please select a customer for Udhaar sale")
	}

	var sale *entity.Sale
	err := s.tx.WithinTransaction(context.WithoutCancel(ctx), func(ctx context.Context) error {
		product, err := s.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}
		if product.IsSold || product.Quantity < input.Quantity {
			available := product.Quantity
			if product.IsSold {
				available = 0
			}
			return insufficientStock(available)
		}

		if input.CustomerID != nil {
			customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
		}

		qty := decimal.NewFromInt(int64(input.Quantity))
		price := input.SellingPrice.Round(2)
		at := s.now()

		sale = &entity.Sale{
			ProductID:     product.ID,
			CustomerID:    input.CustomerID,
			ProductName:   product.Name,
			Quantity:      input.Quantity,
			PurchasePrice: product.PurchasePrice,
			SellingPrice:  price,
			TotalAmount:   price.Mul(qty),
			Profit:        price.Sub(product.PurchasePrice).Mul(qty),
			IsCredit:      input.IsCredit,
			IsPaid:        !input.IsCredit,
			SoldAt:        at,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		ok, err := s.productRepo.DecrementOnSale(ctx, product.ID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return insufficientStock(product.Quantity)
		}

		if input.IsCredit {
			_, err := postEntry(ctx, s.customerRepo, *input.CustomerID, enum.TransactionUdhaarGiven,
				sale.TotalAmount, "Sale: "+product.Name, at)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.IsCredit {
		s.feed.Publish(observe.TableProducts, observe.TableSales, observe.TableCustomers, observe.TableTransactions)
	} else {
		s.feed.Publish(observe.TableProducts, observe.TableSales)
	}
	return sale, nil
}

// MarkSalePaid settles an unpaid credit sale and credits the payment to the
// customer's khata.
func (s *SaleService) MarkSalePaid(ctx context.Context, saleID int64) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.tx.WithinTransaction(context.WithoutCancel(ctx), func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		ok, err := s.saleRepo.MarkPaid(ctx, saleID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError("Sale is already paid")
		}
		sale.IsPaid = true

		if sale.CustomerID != nil {
			_, err := postEntry(ctx, s.customerRepo, *sale.CustomerID, enum.TransactionPaymentReceived,
				sale.TotalAmount, "Paid: "+sale.ProductName, s.now())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(observe.TableSales, observe.TableCustomers, observe.TableTransactions)
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// SaleFilter narrows the sales history
type SaleFilter struct {
	Query      string
	From       *time.Time
	To         *time.Time
	CustomerID *int64
	Page       int
	PerPage    int
}

// ListSales returns one page of sales history, newest first
func (s *SaleService) ListSales(ctx context.Context, filter *SaleFilter) (*pagination.PaginatedResult[entity.Sale], error) {
	if filter == nil {
		filter = &SaleFilter{}
	}
	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	params.Validate()

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: params,
		Search:     strings.TrimSpace(filter.Query),
		CustomerID: filter.CustomerID,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// CustomerSales lists every sale made to a customer
func (s *SaleService) CustomerSales(ctx context.Context, customerID int64) ([]entity.Sale, error) {
	return s.saleRepo.ListByCustomer(ctx, customerID)
}
