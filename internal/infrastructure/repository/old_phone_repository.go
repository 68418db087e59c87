package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type oldPhonePurchaseRepository struct {
	db *gorm.DB
}

// NewOldPhonePurchaseRepository creates a new used-phone intake repository
func NewOldPhonePurchaseRepository(db *gorm.DB) domainRepo.OldPhonePurchaseRepository {
	return &oldPhonePurchaseRepository{db: db}
}

func (r *oldPhonePurchaseRepository) Create(ctx context.Context, purchase *entity.OldPhonePurchase) error {
	return translate(conn(ctx, r.db).Create(purchase).Error)
}

func (r *oldPhonePurchaseRepository) GetByID(ctx context.Context, id int64) (*entity.OldPhonePurchase, error) {
	var purchase entity.OldPhonePurchase
	err := conn(ctx, r.db).First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *oldPhonePurchaseRepository) GetUnsoldByIMEI(ctx context.Context, imei string) (*entity.OldPhonePurchase, error) {
	var purchase entity.OldPhonePurchase
	err := conn(ctx, r.db).
		Where("imei_number = ? AND is_sold = ?", imei, false).
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *oldPhonePurchaseRepository) Update(ctx context.Context, purchase *entity.OldPhonePurchase) error {
	return translate(conn(ctx, r.db).Save(purchase).Error)
}

func (r *oldPhonePurchaseRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Delete(&entity.OldPhonePurchase{}, "id = ?", id).Error
}

func (r *oldPhonePurchaseRepository) List(ctx context.Context, status domainRepo.OldPhoneStatus, search string) ([]entity.OldPhonePurchase, error) {
	var purchases []entity.OldPhonePurchase

	query := conn(ctx, r.db).Model(&entity.OldPhonePurchase{})

	switch status {
	case domainRepo.OldPhoneUnsold:
		query = query.Where("is_sold = ?", false)
	case domainRepo.OldPhoneSold:
		query = query.Where("is_sold = ?", true)
	}

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("seller_name LIKE ? OR mobile_model LIKE ? OR imei_number LIKE ?", like, like, like)
	}

	// Sold phones list by sale date, everything else by intake date
	if status == domainRepo.OldPhoneSold {
		query = query.Order("sold_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	err := query.Order("id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *oldPhonePurchaseRepository) MarkAsSold(ctx context.Context, id int64, soldPrice decimal.Decimal, soldAt time.Time) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.OldPhonePurchase{}).
		Where("id = ? AND is_sold = ?", id, false).
		Updates(map[string]interface{}{
			"is_sold":    true,
			"sold_price": soldPrice,
			"sold_at":    soldAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
