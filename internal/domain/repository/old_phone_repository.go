package repository

import (
	"context"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OldPhoneStatus selects which intake records a list returns
type OldPhoneStatus int

const (
	OldPhoneAll OldPhoneStatus = iota
	OldPhoneUnsold
	OldPhoneSold
)

// OldPhonePurchaseRepository defines the interface for used-phone intake records
type OldPhonePurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.OldPhonePurchase) error
	GetByID(ctx context.Context, id int64) (*entity.OldPhonePurchase, error)
	// GetUnsoldByIMEI returns the in-stock record carrying imei, if any
	GetUnsoldByIMEI(ctx context.Context, imei string) (*entity.OldPhonePurchase, error)
	Update(ctx context.Context, purchase *entity.OldPhonePurchase) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status OldPhoneStatus, search string) ([]entity.OldPhonePurchase, error)
	// MarkAsSold flips an unsold record; returns false if it is missing or already sold
	MarkAsSold(ctx context.Context, id int64, soldPrice decimal.Decimal, soldAt time.Time) (bool, error)
}
