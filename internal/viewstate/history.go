package viewstate

import (
	"context"
	"sync"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/pagination"
)

// HistoryState is one page of sales history under a filter
type HistoryState struct {
	Filter service.SaleFilter
	Page   *pagination.PaginatedResult[entity.Sale]
	Err    error
}

type historyResult struct {
	filter service.SaleFilter
	page   *pagination.PaginatedResult[entity.Sale]
}

// History keeps the sales history current
type History struct {
	holder[HistoryState]
	query *observe.Query[historyResult]

	filterMu sync.Mutex
	filter   service.SaleFilter
}

// NewHistory creates the history holder
func NewHistory(feed *observe.Feed, sales *service.SaleService) *History {
	h := &History{}
	h.query = observe.NewQuery(feed, func(ctx context.Context) (historyResult, error) {
		h.filterMu.Lock()
		filter := h.filter
		h.filterMu.Unlock()

		page, err := sales.ListSales(ctx, &filter)
		if err != nil {
			return historyResult{}, err
		}
		return historyResult{filter: filter, page: page}, nil
	}, observe.TableSales)
	return h
}

// Start subscribes until ctx is cancelled
func (h *History) Start(ctx context.Context, listener func(HistoryState)) {
	start(ctx, &h.holder, h.query, listener, func(s *HistoryState, r historyResult, err error) {
		s.Err = err
		if err == nil {
			s.Filter = r.filter
			s.Page = r.page
		}
	})
}

// SetFilter replaces the name query, date range and page
func (h *History) SetFilter(filter service.SaleFilter) {
	h.filterMu.Lock()
	h.filter = filter
	h.filterMu.Unlock()
	h.refresh()
}
