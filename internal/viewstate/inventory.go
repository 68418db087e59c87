package viewstate

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/internal/observe"
)

// InventoryState splits unsold stock by type
type InventoryState struct {
	Handsets    []entity.Product
	Accessories []entity.Product
	Err         error
}

type inventoryResult struct {
	handsets    []entity.Product
	accessories []entity.Product
}

// Inventory keeps the stock tabs current
type Inventory struct {
	holder[InventoryState]
	query *observe.Query[inventoryResult]
}

// NewInventory creates the inventory holder
func NewInventory(feed *observe.Feed, products *service.ProductService) *Inventory {
	handset, accessory := enum.ProductTypeHandset, enum.ProductTypeAccessory
	return &Inventory{
		query: observe.NewQuery(feed, func(ctx context.Context) (inventoryResult, error) {
			handsets, err := products.ListAvailable(ctx, &handset, "")
			if err != nil {
				return inventoryResult{}, err
			}
			accessories, err := products.ListAvailable(ctx, &accessory, "")
			if err != nil {
				return inventoryResult{}, err
			}
			return inventoryResult{handsets: handsets, accessories: accessories}, nil
		}, observe.TableProducts),
	}
}

// Start subscribes until ctx is cancelled
func (i *Inventory) Start(ctx context.Context, listener func(InventoryState)) {
	start(ctx, &i.holder, i.query, listener, func(s *InventoryState, r inventoryResult, err error) {
		s.Err = err
		if err == nil {
			s.Handsets = r.handsets
			s.Accessories = r.accessories
		}
	})
}
