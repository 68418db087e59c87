package repository

import (
	"context"
	"errors"
)

// Transactor runs fn inside one database transaction. Repository calls made
// with the ctx handed to fn join that transaction; any error rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrDuplicateKey is returned when an insert or update hits a unique index,
// such as a second in-stock unit with the same IMEI.
var ErrDuplicateKey = errors.New("duplicate key")
