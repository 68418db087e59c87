package testutil

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/mobileshop-erp/internal/config"
	"github.com/sangkips/mobileshop-erp/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated SQLite database in a fresh temp directory
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	}

	db, err := database.NewSQLiteDB(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

