package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/securestore"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
)

// DefaultShopName is printed when no shop name has been set
const DefaultShopName = "Mobile Shop"

// SettingsService manages shop details, the PIN and factory reset
type SettingsService struct {
	store       SecretStore
	profileRepo repository.ShopProfileRepository
	resetRepo   repository.ResetRepository
	auth        *AuthService
	feed        *observe.Feed
	now         func() time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	store SecretStore,
	profileRepo repository.ShopProfileRepository,
	resetRepo repository.ResetRepository,
	auth *AuthService,
	feed *observe.Feed,
) *SettingsService {
	return &SettingsService{
		store:       store,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		auth:        auth,
		feed:        feed,
		now:         time.Now,
	}
}

// ShopSettings is what the settings screen shows
type ShopSettings struct {
	ShopName       string `json:"shop_name"`
	OwnerName      string `json:"owner_name"`
	SetupCompleted bool   `json:"setup_completed"`
}

// Get reads the shop details, falling back to the profile row and then to defaults
func (s *SettingsService) Get(ctx context.Context) (*ShopSettings, error) {
	out := &ShopSettings{}
	var err error

	if out.SetupCompleted, err = s.store.GetBool(securestore.KeySetupCompleted); err != nil {
		return nil, err
	}
	if out.ShopName, _, err = s.store.Get(securestore.KeyShopName); err != nil {
		return nil, err
	}
	if out.OwnerName, _, err = s.store.Get(securestore.KeyOwnerName); err != nil {
		return nil, err
	}

	if out.ShopName == "" || out.OwnerName == "" {
		profile, err := s.profileRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			if out.ShopName == "" {
				out.ShopName = profile.ShopName
			}
			if out.OwnerName == "" {
				out.OwnerName = profile.OwnerName
			}
		}
	}
	if out.ShopName == "" {
		out.ShopName = DefaultShopName
	}
	return out, nil
}

// UpdateShopDetails renames the shop and its owner
func (s *SettingsService) UpdateShopDetails(ctx context.Context, shopName, ownerName string) error {
	shopName = strings.TrimSpace(shopName)
	ownerName = strings.TrimSpace(ownerName)
	if shopName == "" || ownerName == "" {
		return apperror.NewBadRequestError("Please fill all fields")
	}

	err := s.profileRepo.Upsert(context.WithoutCancel(ctx), &entity.ShopProfile{
		ShopName:  shopName,
		OwnerName: ownerName,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}

	err = s.store.SetMany(map[string]string{
		securestore.KeyShopName:  shopName,
		securestore.KeyOwnerName: ownerName,
	})
	if err != nil {
		return err
	}

	s.feed.Publish(observe.TableShopProfile)
	return nil
}

// ChangePin replaces the PIN after checking the current one
func (s *SettingsService) ChangePin(currentPin, newPin, confirmPin string) error {
	hash, ok, err := s.store.Get(securestore.KeyUserPin)
	if err != nil {
		return err
	}
	if !ok || !utils.CheckPinHash(currentPin, hash) {
		return apperror.ErrPinMismatch
	}
	if err := validatePinPair(newPin, confirmPin); err != nil {
		return err
	}

	newHash, err := utils.HashPin(newPin)
	if err != nil {
		return err
	}
	return s.store.Set(securestore.KeyUserPin, newHash)
}

// FactoryReset wipes every table and every stored preference. The app comes
// back up in the setup wizard.
func (s *SettingsService) FactoryReset(ctx context.Context) error {
	log.Println("Factory reset requested")

	if err := s.resetRepo.ResetAll(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	if s.auth != nil {
		s.auth.forget()
	}

	s.feed.Publish(observe.AllTables...)
	log.Println("Factory reset completed")
	return nil
}
