package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.CustomerKhata) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*entity.CustomerKhata, error) {
	var customer entity.CustomerKhata
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.CustomerKhata) error {
	return conn(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Delete(&entity.CustomerKhata{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, search string) ([]entity.CustomerKhata, error) {
	var customers []entity.CustomerKhata

	query := conn(ctx, r.db).Model(&entity.CustomerKhata{})
	if search != "" {
		query = query.Where("customer_name LIKE ? OR phone_number LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	err := query.Order("updated_at DESC").Order("id DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) AddUdhaar(ctx context.Context, id int64, amount decimal.Decimal, at time.Time) (bool, error) {
	return r.bump(ctx, id, "total_udhaar", amount, at)
}

func (r *customerRepository) AddPayment(ctx context.Context, id int64, amount decimal.Decimal, at time.Time) (bool, error) {
	return r.bump(ctx, id, "total_paid", amount, at)
}

// bump adds amount to one running total in place and touches updated_at.
// SQLite sums NUMERIC as REAL, so the total is rounded back to paisa.
func (r *customerRepository) bump(ctx context.Context, id int64, column string, amount decimal.Decimal, at time.Time) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.CustomerKhata{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			column:       gorm.Expr("ROUND("+column+" + ?, 2)", amount),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *customerRepository) CreateTransaction(ctx context.Context, txn *entity.KhataTransaction) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(txn).Error
}

func (r *customerRepository) ListTransactions(ctx context.Context, customerID int64, from, to *time.Time) ([]entity.KhataTransaction, error) {
	var txns []entity.KhataTransaction

	query := conn(ctx, r.db).Where("customer_id = ?", customerID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&txns).Error
	return txns, err
}
