package viewstate

import (
	"context"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/observe"
)

// CustomerDetailState is one customer's khata page
type CustomerDetailState struct {
	Customer     *entity.CustomerKhata
	Transactions []entity.KhataTransaction
	Sales        []entity.Sale
	Err          error
}

// CustomerDetail keeps one customer's page current
type CustomerDetail struct {
	holder[CustomerDetailState]
	query *observe.Query[CustomerDetailState]
}

// NewCustomerDetail creates the holder for customerID
func NewCustomerDetail(feed *observe.Feed, ledger *service.LedgerService, sales *service.SaleService, customerID int64) *CustomerDetail {
	return &CustomerDetail{
		query: observe.NewQuery(feed, func(ctx context.Context) (CustomerDetailState, error) {
			var (
				st  CustomerDetailState
				err error
			)
			if st.Customer, err = ledger.GetCustomer(ctx, customerID); err != nil {
				return st, err
			}
			if st.Transactions, err = ledger.Transactions(ctx, customerID); err != nil {
				return st, err
			}
			if st.Sales, err = sales.CustomerSales(ctx, customerID); err != nil {
				return st, err
			}
			return st, nil
		}, observe.TableCustomers, observe.TableTransactions, observe.TableSales),
	}
}

// Start subscribes until ctx is cancelled. Once the customer is deleted the
// state carries a not-found error.
func (c *CustomerDetail) Start(ctx context.Context, listener func(CustomerDetailState)) {
	start(ctx, &c.holder, c.query, listener, func(s *CustomerDetailState, r CustomerDetailState, err error) {
		if err != nil {
			s.Err = err
			return
		}
		*s = r
	})
}
