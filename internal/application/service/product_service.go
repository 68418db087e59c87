package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles stock intake and edits
type ProductService struct {
	productRepo repository.ProductRepository
	feed        *observe.Feed
	now         func() time.Time
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, feed *observe.Feed) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		feed:        feed,
		now:         time.Now,
	}
}

// ProductInput is the add/edit product form. Prices arrive as typed.
type ProductInput struct {
	Name          string
	Type          enum.ProductType
	IMEI          string
	PurchasePrice string
	SellingPrice  string
	Quantity      int
}

type productFields struct {
	name          string
	imei          *string
	purchasePrice decimal.Decimal
	sellingPrice  decimal.Decimal
	quantity      int
}

// validate checks the form. minQty is 1 when adding and 0 when editing.
func (in *ProductInput) validate(minQty int) (*productFields, error) {
	var errs []apperror.FieldError
	out := &productFields{name: strings.TrimSpace(in.Name)}

	if out.name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "Product name is required"})
	}
	if !in.Type.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: "Select handset or accessory"})
	}

	if in.Type == enum.ProductTypeHandset {
		imei := utils.NormalizeIMEI(in.IMEI)
		if !utils.ValidIMEI(imei) {
			errs = append(errs, apperror.FieldError{Field: "imei", Message: "IMEI must be 15 digits"})
		}
		out.imei = &imei
		out.quantity = 1
	} else {
		if in.Quantity < minQty {
			errs = append(errs, apperror.FieldError{Field: "quantity", Message: "Quantity must be at least 1"})
		}
		out.quantity = in.Quantity
	}

	var fe *apperror.FieldError
	if out.purchasePrice, fe = parseMoney("purchase_price", in.PurchasePrice, true); fe != nil {
		errs = append(errs, *fe)
	}
	if out.sellingPrice, fe = parseMoney("selling_price", in.SellingPrice, true); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return out, nil
}

// AddProduct validates and stores a new product
func (s *ProductService) AddProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	fields, err := input.validate(1)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	if fields.imei != nil {
		existing, err := s.productRepo.GetByIMEI(ctx, *fields.imei)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.ErrDuplicateIMEI
		}
	}

	product := &entity.Product{
		Name:          fields.name,
		Type:          input.Type,
		IMEINumber:    fields.imei,
		PurchasePrice: fields.purchasePrice,
		SellingPrice:  fields.sellingPrice,
		Quantity:      fields.quantity,
		CreatedAt:     s.now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.ErrDuplicateIMEI
		}
		return nil, err
	}

	s.feed.Publish(observe.TableProducts)
	return product, nil
}

// UpdateProduct edits a product in place. A handset keeps its quantity; an
// accessory restocked above zero is listed again. An accessory turned into a
// handset becomes a single unsold unit.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input *ProductInput) (*entity.Product, error) {
	fields, err := input.validate(0)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.imei != nil && *fields.imei != product.IMEI() {
		existing, err := s.productRepo.GetByIMEI(ctx, *fields.imei)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.ErrDuplicateIMEI
		}
	}

	wasAccessory := product.Type == enum.ProductTypeAccessory

	product.Name = fields.name
	product.Type = input.Type
	product.IMEINumber = fields.imei
	product.PurchasePrice = fields.purchasePrice
	product.SellingPrice = fields.sellingPrice
	if input.Type == enum.ProductTypeAccessory {
		product.Quantity = fields.quantity
		product.IsSold = product.Quantity == 0
	} else if wasAccessory {
		product.Quantity = 1
		product.IsSold = false
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.ErrDuplicateIMEI
		}
		return nil, err
	}

	s.feed.Publish(observe.TableProducts)
	return product, nil
}

// DeleteProduct removes a product together with its sales
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(observe.TableProducts, observe.TableSales)
	return nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// FindByScannedCode resolves a barcode scan to the in-stock handset with that IMEI
func (s *ProductService) FindByScannedCode(ctx context.Context, code string) (*entity.Product, error) {
	imei := utils.NormalizeIMEI(code)
	if imei == "" {
		return nil, apperror.NewBadRequestError("Scanned code is empty")
	}
	product, err := s.productRepo.GetByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListAvailable lists unsold products, optionally of one type
func (s *ProductService) ListAvailable(ctx context.Context, productType *enum.ProductType, search string) ([]entity.Product, error) {
	return s.productRepo.ListAvailable(ctx, &repository.ProductFilterParams{
		Type:   productType,
		Search: strings.TrimSpace(search),
	})
}
