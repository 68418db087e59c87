package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/securestore"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
)

// SetupService runs the first-launch wizard
type SetupService struct {
	store       SecretStore
	profileRepo repository.ShopProfileRepository
	feed        *observe.Feed
	now         func() time.Time
}

// NewSetupService creates a new setup service
func NewSetupService(store SecretStore, profileRepo repository.ShopProfileRepository, feed *observe.Feed) *SetupService {
	return &SetupService{
		store:       store,
		profileRepo: profileRepo,
		feed:        feed,
		now:         time.Now,
	}
}

// SetupInput is the wizard form
type SetupInput struct {
	ShopName   string
	OwnerName  string
	Pin        string
	ConfirmPin string
}

// validatePinPair checks a new PIN and its confirmation
func validatePinPair(pin, confirm string) error {
	if !utils.ValidPin(pin) {
		return apperror.NewFieldError("pin", "PIN must be 4 digits")
	}
	if pin != confirm {
		return apperror.NewFieldError("confirm_pin", "PINs do not match")
	}
	return nil
}

// IsSetupCompleted reports whether the wizard has been finished
func (s *SetupService) IsSetupCompleted() (bool, error) {
	return s.store.GetBool(securestore.KeySetupCompleted)
}

// CompleteSetup stores the shop identity and the hashed PIN
func (s *SetupService) CompleteSetup(ctx context.Context, input *SetupInput) error {
	shopName := strings.TrimSpace(input.ShopName)
	ownerName := strings.TrimSpace(input.OwnerName)
	if shopName == "" || ownerName == "" || input.Pin == "" || input.ConfirmPin == "" {
		return apperror.NewBadRequestError("Please fill all fields")
	}
	if err := validatePinPair(input.Pin, input.ConfirmPin); err != nil {
		return err
	}

	done, err := s.IsSetupCompleted()
	if err != nil {
		return err
	}
	if done {
		return apperror.NewConflictError("Setup has already been completed")
	}

	hash, err := utils.HashPin(input.Pin)
	if err != nil {
		return err
	}

	err = s.profileRepo.Upsert(context.WithoutCancel(ctx), &entity.ShopProfile{
		ShopName:  shopName,
		OwnerName: ownerName,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}

	// The completed flag goes in with the rest so a failed write leaves setup open.
	err = s.store.SetMany(map[string]string{
		securestore.KeyUserPin:        hash,
		securestore.KeyShopName:       shopName,
		securestore.KeyOwnerName:      ownerName,
		securestore.KeySetupCompleted: strconv.FormatBool(true),
	})
	if err != nil {
		return err
	}

	log.Printf("Shop setup completed for %q", shopName)
	s.feed.Publish(observe.TableShopProfile)
	return nil
}
