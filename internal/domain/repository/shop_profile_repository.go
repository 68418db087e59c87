package repository

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
)

// ShopProfileRepository reads and writes the singleton shop profile
type ShopProfileRepository interface {
	Get(ctx context.Context) (*entity.ShopProfile, error)
	Upsert(ctx context.Context, profile *entity.ShopProfile) error
}
