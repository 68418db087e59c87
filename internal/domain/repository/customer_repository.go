package repository

import (
	"context"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for khata accounts and their ledger entries
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.CustomerKhata) error
	GetByID(ctx context.Context, id int64) (*entity.CustomerKhata, error)
	Update(ctx context.Context, customer *entity.CustomerKhata) error
	// Delete removes the customer; the schema cascades its transactions and
	// nulls the customer on its sales.
	Delete(ctx context.Context, id int64) error
	// List returns customers most recently active first, optionally filtered by name
	List(ctx context.Context, search string) ([]entity.CustomerKhata, error)
	// AddUdhaar and AddPayment bump the running totals. They return false when
	// the customer does not exist.
	AddUdhaar(ctx context.Context, id int64, amount decimal.Decimal, at time.Time) (bool, error)
	AddPayment(ctx context.Context, id int64, amount decimal.Decimal, at time.Time) (bool, error)
	CreateTransaction(ctx context.Context, txn *entity.KhataTransaction) error
	// ListTransactions returns the customer's history newest first, optionally bounded
	ListTransactions(ctx context.Context, customerID int64, from, to *time.Time) ([]entity.KhataTransaction, error)
}
