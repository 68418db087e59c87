package viewstate

import (
	"context"
	"sync"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/shopspring/decimal"
)

// KhataState is the customer list screen
type KhataState struct {
	Query           string
	Customers       []entity.CustomerKhata
	TotalReceivable decimal.Decimal
	Err             error
}

type khataResult struct {
	query      string
	customers  []entity.CustomerKhata
	receivable decimal.Decimal
}

// Khata keeps the customer list and the receivable total current
type Khata struct {
	holder[KhataState]
	query *observe.Query[khataResult]

	searchMu sync.Mutex
	search   string
}

// NewKhata creates the khata holder
func NewKhata(feed *observe.Feed, ledger *service.LedgerService) *Khata {
	k := &Khata{}
	k.query = observe.NewQuery(feed, func(ctx context.Context) (khataResult, error) {
		search := k.currentSearch()
		customers, err := ledger.ListCustomers(ctx, search)
		if err != nil {
			return khataResult{}, err
		}
		receivable, err := ledger.TotalReceivable(ctx)
		if err != nil {
			return khataResult{}, err
		}
		return khataResult{query: search, customers: customers, receivable: receivable}, nil
	}, observe.TableCustomers, observe.TableTransactions)
	return k
}

func (k *Khata) currentSearch() string {
	k.searchMu.Lock()
	defer k.searchMu.Unlock()
	return k.search
}

// Start subscribes until ctx is cancelled
func (k *Khata) Start(ctx context.Context, listener func(KhataState)) {
	start(ctx, &k.holder, k.query, listener, func(s *KhataState, r khataResult, err error) {
		s.Err = err
		if err == nil {
			s.Query = r.query
			s.Customers = r.customers
			s.TotalReceivable = r.receivable
		}
	})
}

// SetQuery changes the search text and reloads the list
func (k *Khata) SetQuery(q string) {
	k.searchMu.Lock()
	k.search = q
	k.searchMu.Unlock()
	k.refresh()
}
