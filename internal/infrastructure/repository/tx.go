package repository

import (
	"context"
	"errors"

	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key for the transaction opened by WithinTransaction
const txKey ctxKey = "gorm_tx"

// conn returns the transaction carried by ctx, or the base handle bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor over db
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction runs fn in a transaction. A ctx already inside one joins it.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// translate maps driver errors onto the domain's sentinel errors
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateKey
	}
	return err
}
