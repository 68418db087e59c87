package viewstate

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/observe"
)

// DashboardState is the home screen summary
type DashboardState struct {
	Stats *service.DashboardStats
	Err   error
}

// Dashboard keeps the home screen figures current
type Dashboard struct {
	holder[DashboardState]
	query *observe.Query[*service.DashboardStats]
}

// NewDashboard creates the dashboard holder
func NewDashboard(feed *observe.Feed, svc *service.DashboardService) *Dashboard {
	return &Dashboard{
		query: observe.NewQuery(feed, svc.GetDashboardStats,
			observe.TableProducts, observe.TableSales, observe.TableCustomers),
	}
}

// Start subscribes until ctx is cancelled
func (d *Dashboard) Start(ctx context.Context, listener func(DashboardState)) {
	start(ctx, &d.holder, d.query, listener, func(s *DashboardState, stats *service.DashboardStats, err error) {
		s.Err = err
		if err == nil {
			s.Stats = stats
		}
	})
}
