package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
	"github.com/shopspring/decimal"
)

// OldPhoneService handles used phones bought from walk-in sellers
type OldPhoneService struct {
	purchaseRepo  repository.OldPhonePurchaseRepository
	analyticsRepo repository.AnalyticsRepository
	feed          *observe.Feed
	now           func() time.Time
}

// NewOldPhoneService creates a new old phone service
func NewOldPhoneService(
	purchaseRepo repository.OldPhonePurchaseRepository,
	analyticsRepo repository.AnalyticsRepository,
	feed *observe.Feed,
) *OldPhoneService {
	return &OldPhoneService{
		purchaseRepo:  purchaseRepo,
		analyticsRepo: analyticsRepo,
		feed:          feed,
		now:           time.Now,
	}
}

// OldPhoneInput is the intake form. Signature holds the strokes drawn by the
// seller; on update a nil Signature keeps the stored one.
type OldPhoneInput struct {
	SellerName      string
	SellerCNIC      string
	MobileModel     string
	MobileColor     string
	PurchasePrice   string
	IMEI            string
	HasBox          bool
	HasCharger      bool
	HasHandsfree    bool
	CustomAccessory string
	Signature       [][]utils.Point
}

func (in *OldPhoneInput) validate() (decimal.Decimal, error) {
	var errs []apperror.FieldError

	if strings.TrimSpace(in.SellerName) == "" {
		errs = append(errs, apperror.FieldError{Field: "seller_name", Message: "Seller name is required"})
	}
	if !utils.ValidCNIC(in.SellerCNIC) {
		errs = append(errs, apperror.FieldError{Field: "seller_cnic", Message: "CNIC must be 13 digits (#####-#######-#)"})
	}
	if strings.TrimSpace(in.MobileModel) == "" {
		errs = append(errs, apperror.FieldError{Field: "mobile_model", Message: "Mobile model is required"})
	}
	if strings.TrimSpace(in.MobileColor) == "" {
		errs = append(errs, apperror.FieldError{Field: "mobile_color", Message: "Mobile color is required"})
	}
	price, fe := parseMoney("purchase_price", in.PurchasePrice, false)
	if fe != nil {
		errs = append(errs, *fe)
	}
	if !utils.ValidIMEI(utils.NormalizeIMEI(in.IMEI)) {
		errs = append(errs, apperror.FieldError{Field: "imei", Message: "IMEI must be 15 digits"})
	}

	if len(errs) > 0 {
		return decimal.Zero, apperror.NewValidationError(errs)
	}
	return price, nil
}

func (in *OldPhoneInput) apply(p *entity.OldPhonePurchase, price decimal.Decimal) {
	p.SellerName = strings.TrimSpace(in.SellerName)
	p.SellerCNIC = utils.FormatCNIC(in.SellerCNIC)
	p.MobileModel = strings.TrimSpace(in.MobileModel)
	p.MobileColor = strings.TrimSpace(in.MobileColor)
	p.PurchasePrice = price
	p.IMEINumber = utils.NormalizeIMEI(in.IMEI)
	p.HasBox = in.HasBox
	p.HasCharger = in.HasCharger
	p.HasHandsfree = in.HasHandsfree

	p.CustomAccessory = nil
	if acc := strings.TrimSpace(in.CustomAccessory); acc != "" {
		p.CustomAccessory = &acc
	}
	if in.Signature != nil {
		p.Signature = nil
		if sig := utils.EncodeSignature(in.Signature); sig != "" {
			p.Signature = &sig
		}
	}
}

// checkIMEI rejects an IMEI already held by another unsold phone
func (s *OldPhoneService) checkIMEI(ctx context.Context, imei string, selfID int64) error {
	existing, err := s.purchaseRepo.GetUnsoldByIMEI(ctx, imei)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.ErrDuplicateIMEI
	}
	return nil
}

// RecordPurchase stores a new intake record
func (s *OldPhoneService) RecordPurchase(ctx context.Context, input *OldPhoneInput) (*entity.OldPhonePurchase, error) {
	price, err := input.validate()
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	purchase := &entity.OldPhonePurchase{CreatedAt: s.now()}
	input.apply(purchase, price)

	if err := s.checkIMEI(ctx, purchase.IMEINumber, 0); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.ErrDuplicateIMEI
		}
		return nil, err
	}

	s.feed.Publish(observe.TableOldPhones)
	return purchase, nil
}

// UpdatePurchase edits an intake record. Sale fields are left alone.
func (s *OldPhoneService) UpdatePurchase(ctx context.Context, id int64, input *OldPhoneInput) (*entity.OldPhonePurchase, error) {
	price, err := input.validate()
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(purchase, price)

	if !purchase.IsSold {
		if err := s.checkIMEI(ctx, purchase.IMEINumber, purchase.ID); err != nil {
			return nil, err
		}
	}
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.ErrDuplicateIMEI
		}
		return nil, err
	}

	s.feed.Publish(observe.TableOldPhones)
	return purchase, nil
}

// DeletePurchase removes an intake record
func (s *OldPhoneService) DeletePurchase(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.GetPurchase(ctx, id); err != nil {
		return err
	}
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(observe.TableOldPhones)
	return nil
}

// GetPurchase retrieves an intake record by ID
func (s *OldPhoneService) GetPurchase(ctx context.Context, id int64) (*entity.OldPhonePurchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Old phone")
	}
	return purchase, nil
}

func (s *OldPhoneService) ListAll(ctx context.Context) ([]entity.OldPhonePurchase, error) {
	return s.purchaseRepo.List(ctx, repository.OldPhoneAll, "")
}

func (s *OldPhoneService) ListUnsold(ctx context.Context) ([]entity.OldPhonePurchase, error) {
	return s.purchaseRepo.List(ctx, repository.OldPhoneUnsold, "")
}

func (s *OldPhoneService) ListSold(ctx context.Context) ([]entity.OldPhonePurchase, error) {
	return s.purchaseRepo.List(ctx, repository.OldPhoneSold, "")
}

// Search matches seller name, model or IMEI
func (s *OldPhoneService) Search(ctx context.Context, query string) ([]entity.OldPhonePurchase, error) {
	return s.purchaseRepo.List(ctx, repository.OldPhoneAll, strings.TrimSpace(query))
}

// MarkAsSold records the resale of an unsold phone
func (s *OldPhoneService) MarkAsSold(ctx context.Context, id int64, soldPrice decimal.Decimal) (*entity.OldPhonePurchase, error) {
	if !soldPrice.IsPositive() {
		return nil, apperror.NewFieldError("sold_price", "Please enter a valid price")
	}
	ctx = context.WithoutCancel(ctx)

	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.IsSold {
		return nil, apperror.NewConflictError("Phone is already sold")
	}

	price := soldPrice.Round(2)
	at := s.now()
	ok, err := s.purchaseRepo.MarkAsSold(ctx, id, price, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Phone is already sold")
	}

	purchase.IsSold = true
	purchase.SoldPrice = &price
	purchase.SoldAt = &at

	s.feed.Publish(observe.TableOldPhones)
	return purchase, nil
}

// Summary returns the intake book totals
func (s *OldPhoneService) Summary(ctx context.Context) (*repository.OldPhoneSummary, error) {
	return s.analyticsRepo.OldPhoneSummary(ctx)
}
