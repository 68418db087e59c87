package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sangkips/mobileshop-erp/internal/config"
	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is stamped into PRAGMA user_version. A database carrying any
// other non-zero version is rebuilt from scratch on startup.
const SchemaVersion = 1

// models in creation order; parents before children
var models = []interface{}{
	&entity.ShopProfile{},
	&entity.Product{},
	&entity.CustomerKhata{},
	&entity.Sale{},
	&entity.KhataTransaction{},
	&entity.OldPhonePurchase{},
}

// Partial unique indexes GORM tags cannot express.
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_imei_unsold
		ON products(imei_number) WHERE is_sold = 0 AND imei_number IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_old_phone_imei_unsold
		ON old_phone_purchases(imei_number) WHERE is_sold = 0`,
}

// NewSQLiteDB opens the single-file SQLite database
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// One connection: SQLite has a single writer, and a transaction holding it
	// keeps every other statement waiting behind it.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Successfully connected to SQLite database at %s", cfg.Path)
	return db, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate brings the schema to SchemaVersion. There are no incremental
// migrations: an unknown version drops every table and starts empty.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version != 0 && version != SchemaVersion {
		log.Printf("Schema version %d does not match %d, rebuilding database", version, SchemaVersion)
		if err := dropAll(db); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)).Error; err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func dropAll(db *gorm.DB) error {
	migrator := db.Migrator()
	for i := len(models) - 1; i >= 0; i-- {
		if err := migrator.DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

// ResetData wipes every row, children first, in one transaction
func ResetData(db *gorm.DB) error {
	log.Println("Wiping all shop data...")

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}

	log.Println("Shop data wiped")
	return nil
}
