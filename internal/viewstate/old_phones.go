package viewstate

import (
	"context"
	"sync"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
)

// OldPhonesState is the used-phone book. Results holds the search matches
// and is empty while the search box is.
type OldPhonesState struct {
	Unsold  []entity.OldPhonePurchase
	Sold    []entity.OldPhonePurchase
	Summary *repository.OldPhoneSummary
	Query   string
	Results []entity.OldPhonePurchase
	Err     error
}

type oldPhonesResult struct {
	unsold  []entity.OldPhonePurchase
	sold    []entity.OldPhonePurchase
	summary *repository.OldPhoneSummary
	query   string
	results []entity.OldPhonePurchase
}

// OldPhones keeps the used-phone lists and totals current
type OldPhones struct {
	holder[OldPhonesState]
	query *observe.Query[oldPhonesResult]

	searchMu sync.Mutex
	search   string
}

// NewOldPhones creates the old phones holder
func NewOldPhones(feed *observe.Feed, svc *service.OldPhoneService) *OldPhones {
	o := &OldPhones{}
	o.query = observe.NewQuery(feed, func(ctx context.Context) (oldPhonesResult, error) {
		var (
			r   oldPhonesResult
			err error
		)
		if r.unsold, err = svc.ListUnsold(ctx); err != nil {
			return r, err
		}
		if r.sold, err = svc.ListSold(ctx); err != nil {
			return r, err
		}
		if r.summary, err = svc.Summary(ctx); err != nil {
			return r, err
		}

		o.searchMu.Lock()
		r.query = o.search
		o.searchMu.Unlock()
		if r.query != "" {
			if r.results, err = svc.Search(ctx, r.query); err != nil {
				return r, err
			}
		}
		return r, nil
	}, observe.TableOldPhones)
	return o
}

// Start subscribes until ctx is cancelled
func (o *OldPhones) Start(ctx context.Context, listener func(OldPhonesState)) {
	start(ctx, &o.holder, o.query, listener, func(s *OldPhonesState, r oldPhonesResult, err error) {
		s.Err = err
		if err == nil {
			s.Unsold = r.unsold
			s.Sold = r.sold
			s.Summary = r.summary
			s.Query = r.query
			s.Results = r.results
		}
	})
}

// SetQuery changes the search text
func (o *OldPhones) SetQuery(q string) {
	o.searchMu.Lock()
	o.search = q
	o.searchMu.Unlock()
	o.refresh()
}
