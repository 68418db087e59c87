package repository

import "context"

// ResetRepository wipes all shop data for a factory reset
type ResetRepository interface {
	ResetAll(ctx context.Context) error
}
