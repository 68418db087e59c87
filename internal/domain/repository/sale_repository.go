package repository

import (
	"context"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// List returns sales newest first
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]entity.Sale, error)
	MarkPaid(ctx context.Context, id int64) (bool, error)
}

// SaleFilterParams contains filtering parameters for sale history queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}
