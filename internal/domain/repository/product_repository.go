package repository

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIMEI only looks at units that are still in stock
	GetByIMEI(ctx context.Context, imei string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// ListAvailable returns unsold products, newest first
	ListAvailable(ctx context.Context, params *ProductFilterParams) ([]entity.Product, error)
	// DecrementOnSale lowers stock by amount and marks the row sold when nothing
	// remains. Returns false when the stock is smaller than amount.
	DecrementOnSale(ctx context.Context, id int64, amount int) (bool, error)
	CountInStock(ctx context.Context) (int64, error)
	PotentialProfit(ctx context.Context) (decimal.Decimal, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Type   *enum.ProductType
	Search string
}
