package repository

import (
	"context"
	"errors"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Preload("Customer").First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	if params == nil {
		params = &domainRepo.SaleFilterParams{}
	}

	query := conn(ctx, r.db).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("product_name LIKE ?", "%"+params.Search+"%")
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("sold_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("sold_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Customer").Order("sold_at DESC").Order("id DESC")
	if params.Pagination != nil {
		params.Pagination.Validate()
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	err := query.Find(&sales).Error
	return sales, total, err
}

func (r *saleRepository) ListByCustomer(ctx context.Context, customerID int64) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("sold_at DESC").Order("id DESC").
		Find(&sales).Error
	return sales, err
}

// MarkPaid settles an unpaid credit sale. Returns false if nothing was owed.
func (r *saleRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Sale{}).
		Where("id = ? AND is_udhaar = ? AND is_paid = ?", id, true, false).
		Update("is_paid", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
