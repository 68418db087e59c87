package repository

import (
	"context"
	"errors"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(conn(ctx, r.db).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIMEI(ctx context.Context, imei string) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).
		Where("imei_number = ? AND is_sold = ?", imei, false).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return translate(conn(ctx, r.db).Save(product).Error)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) ListAvailable(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, error) {
	var products []entity.Product

	query := conn(ctx, r.db).Model(&entity.Product{}).Where("is_sold = ?", false)

	if params != nil {
		if params.Type != nil {
			query = query.Where("type = ?", *params.Type)
		}
		if params.Search != "" {
			query = query.Where("name LIKE ? OR imei_number LIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
		}
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error
	return products, err
}

// DecrementOnSale applies the guarded stock update. Both SET expressions see
// the pre-update quantity.
func (r *productRepository) DecrementOnSale(ctx context.Context, id int64, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ? AND is_sold = ? AND quantity >= ?", id, false, amount).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", amount),
			"is_sold":  gorm.Expr("CASE WHEN quantity - ? <= 0 THEN 1 ELSE 0 END", amount),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepository) CountInStock(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Product{}).Where("is_sold = ?", false).Count(&count).Error
	return count, err
}

func (r *productRepository) PotentialProfit(ctx context.Context) (decimal.Decimal, error) {
	return sumDecimal(conn(ctx, r.db).Model(&entity.Product{}).Where("is_sold = ?", false),
		"(selling_price - purchase_price) * quantity")
}
