package repository

import (
	"context"
	"errors"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shopProfileRepository struct {
	db *gorm.DB
}

// NewShopProfileRepository creates a new shop profile repository
func NewShopProfileRepository(db *gorm.DB) domainRepo.ShopProfileRepository {
	return &shopProfileRepository{db: db}
}

// Get returns the shop profile, or nil before setup has run
func (r *shopProfileRepository) Get(ctx context.Context) (*entity.ShopProfile, error) {
	var profile entity.ShopProfile
	err := conn(ctx, r.db).First(&profile, "id = ?", entity.ShopProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

// Upsert writes the single profile row, keeping its original created_at
func (r *shopProfileRepository) Upsert(ctx context.Context, profile *entity.ShopProfile) error {
	profile.ID = entity.ShopProfileID
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"shop_name", "owner_name"}),
	}).Create(profile).Error
}
