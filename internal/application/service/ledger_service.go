package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	"github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LedgerService keeps customer khata accounts. Every movement updates the
// running totals and appends a transaction inside one database transaction.
type LedgerService struct {
	tx            repository.Transactor
	customerRepo  repository.CustomerRepository
	analyticsRepo repository.AnalyticsRepository
	feed          *observe.Feed
	now           func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	tx repository.Transactor,
	customerRepo repository.CustomerRepository,
	analyticsRepo repository.AnalyticsRepository,
	feed *observe.Feed,
) *LedgerService {
	return &LedgerService{
		tx:            tx,
		customerRepo:  customerRepo,
		analyticsRepo: analyticsRepo,
		feed:          feed,
		now:           time.Now,
	}
}

// CustomerInput is the add/edit customer form
type CustomerInput struct {
	Name        string
	Phone       string
	Description string
}

func (in *CustomerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewFieldError("name", "Customer name is required")
	}
	return nil
}

// AddCustomer opens a khata with zero balance
func (s *LedgerService) AddCustomer(ctx context.Context, input *CustomerInput) (*entity.CustomerKhata, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	customer := &entity.CustomerKhata{
		CustomerName: strings.TrimSpace(input.Name),
		PhoneNumber:  strings.TrimSpace(input.Phone),
		Description:  strings.TrimSpace(input.Description),
		TotalUdhaar:  decimal.Zero,
		TotalPaid:    decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customerRepo.Create(context.WithoutCancel(ctx), customer); err != nil {
		return nil, err
	}
	s.feed.Publish(observe.TableCustomers)
	return customer, nil
}

// UpdateCustomer edits contact details. Totals are only moved by postings.
func (s *LedgerService) UpdateCustomer(ctx context.Context, id int64, input *CustomerInput) (*entity.CustomerKhata, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.CustomerName = strings.TrimSpace(input.Name)
	customer.PhoneNumber = strings.TrimSpace(input.Phone)
	customer.Description = strings.TrimSpace(input.Description)
	customer.UpdatedAt = s.now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	s.feed.Publish(observe.TableCustomers)
	return customer, nil
}

// DeleteCustomer removes the khata and its history. Sales made to the
// customer stay, detached.
func (s *LedgerService) DeleteCustomer(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(observe.TableCustomers, observe.TableTransactions, observe.TableSales)
	return nil
}

// GetCustomer retrieves a customer by ID
func (s *LedgerService) GetCustomer(ctx context.Context, id int64) (*entity.CustomerKhata, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns customers most recently active first
func (s *LedgerService) ListCustomers(ctx context.Context, search string) ([]entity.CustomerKhata, error) {
	return s.customerRepo.List(ctx, strings.TrimSpace(search))
}

// Transactions returns a customer's ledger newest first
func (s *LedgerService) Transactions(ctx context.Context, customerID int64) ([]entity.KhataTransaction, error) {
	return s.customerRepo.ListTransactions(ctx, customerID, nil, nil)
}

// PostCredit records udhaar given to the customer
func (s *LedgerService) PostCredit(ctx context.Context, customerID int64, amount decimal.Decimal, description string) (*entity.KhataTransaction, error) {
	return s.post(ctx, customerID, enum.TransactionUdhaarGiven, amount, description)
}

// PostPayment records money received from the customer
func (s *LedgerService) PostPayment(ctx context.Context, customerID int64, amount decimal.Decimal, description string) (*entity.KhataTransaction, error) {
	return s.post(ctx, customerID, enum.TransactionPaymentReceived, amount, description)
}

func (s *LedgerService) post(ctx context.Context, customerID int64, txnType enum.TransactionType, amount decimal.Decimal, description string) (*entity.KhataTransaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "Please enter a valid amount")
	}

	var txn *entity.KhataTransaction
	err := s.tx.WithinTransaction(context.WithoutCancel(ctx), func(ctx context.Context) error {
		var err error
		txn, err = postEntry(ctx, s.customerRepo, customerID, txnType, amount, strings.TrimSpace(description), s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(observe.TableCustomers, observe.TableTransactions)
	return txn, nil
}

// TotalReceivable sums every customer's outstanding balance
func (s *LedgerService) TotalReceivable(ctx context.Context) (decimal.Decimal, error) {
	return s.analyticsRepo.TotalReceivable(ctx)
}

// postEntry moves a customer's running total and appends the matching
// transaction, both stamped with at. ctx must carry a transaction.
func postEntry(
	ctx context.Context,
	customerRepo repository.CustomerRepository,
	customerID int64,
	txnType enum.TransactionType,
	amount decimal.Decimal,
	description string,
	at time.Time,
) (*entity.KhataTransaction, error) {
	var (
		found bool
		err   error
	)
	if txnType == enum.TransactionPaymentReceived {
		found, err = customerRepo.AddPayment(ctx, customerID, amount, at)
	} else {
		found, err = customerRepo.AddUdhaar(ctx, customerID, amount, at)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewNotFoundError("Customer")
	}

	txn := &entity.KhataTransaction{
		CustomerID:  customerID,
		Type:        txnType,
		Amount:      amount,
		Description: description,
		CreatedAt:   at,
	}
	if err := customerRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}
