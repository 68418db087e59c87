package repository

import (
	"context"

	domainRepo "github.com/sangkips/mobileshop-erp/internal/domain/repository"
	"github.com/sangkips/mobileshop-erp/internal/infrastructure/database"
	"gorm.io/gorm"
)

type resetRepository struct {
	db *gorm.DB
}

// NewResetRepository creates a repository that wipes every table
func NewResetRepository(db *gorm.DB) domainRepo.ResetRepository {
	return &resetRepository{db: db}
}

func (r *resetRepository) ResetAll(ctx context.Context) error {
	return database.ResetData(r.db.WithContext(ctx))
}
