// Package app is the composition root. It builds every dependency explicitly
// from the config and tears them down in reverse order on Close.
package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/config"
	"github.com/sangkips/mobileshop-erp/internal/infrastructure/database"
	"github.com/sangkips/mobileshop-erp/internal/infrastructure/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/internal/viewstate"
	"github.com/sangkips/mobileshop-erp/pkg/printer"
	"github.com/sangkips/mobileshop-erp/pkg/securestore"
	"gorm.io/gorm"
)

// App holds the running services
type App struct {
	Config *config.Config
	Feed   *observe.Feed

	Products  *service.ProductService
	Sales     *service.SaleService
	Ledger    *service.LedgerService
	OldPhones *service.OldPhoneService
	Dashboard *service.DashboardService
	Setup     *service.SetupService
	Auth      *service.AuthService
	Settings  *service.SettingsService
	Share     *service.ShareService
	Printer   *service.PrinterService
	Export    *service.ExportService

	db      *gorm.DB
	store   *securestore.Store
	printer printer.Printer
}

// New opens the database and the secure store and wires the services
func New(cfg *config.Config) (*App, error) {
	db, err := database.NewSQLiteDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}

	store, err := securestore.Open(cfg.Secure.StorePath, cfg.Secure.KeyPath)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to open secure store: %w", err)
	}

	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	feed := observe.NewFeed()

	// Repositories
	tx := repository.NewTransactor(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	oldPhoneRepo := repository.NewOldPhonePurchaseRepository(db)
	profileRepo := repository.NewShopProfileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	resetRepo := repository.NewResetRepository(db)

	// Services
	authService := service.NewAuthService(store, cfg.Secure.SessionExpiry, cfg.App.Name)
	settingsService := service.NewSettingsService(store, profileRepo, resetRepo, authService, feed)
	shareService := service.NewShareService(saleRepo, customerRepo, settingsService, cfg.App.CurrencySymbol)

	a := &App{
		Config:    cfg,
		Feed:      feed,
		Products:  service.NewProductService(productRepo, feed),
		Sales:     service.NewSaleService(tx, productRepo, saleRepo, customerRepo, feed),
		Ledger:    service.NewLedgerService(tx, customerRepo, analyticsRepo, feed),
		OldPhones: service.NewOldPhoneService(oldPhoneRepo, analyticsRepo, feed),
		Dashboard: service.NewDashboardService(analyticsRepo, productRepo),
		Setup:     service.NewSetupService(store, profileRepo, feed),
		Auth:      authService,
		Settings:  settingsService,
		Share:     shareService,
		Printer:   service.NewPrinterService(thermalPrinter, shareService, cfg.Printer.Type, cfg.Printer.Width, cfg.App.CurrencySymbol),
		Export:    service.NewExportService(saleRepo, customerRepo, cfg.Export.Dir),
		db:        db,
		store:     store,
		printer:   thermalPrinter,
	}

	log.Printf("%s ready (env: %s)", cfg.App.Name, cfg.App.Env)
	return a, nil
}

// Screen state holders. Each is started by the screen that owns it.

func (a *App) NewDashboardState() *viewstate.Dashboard {
	return viewstate.NewDashboard(a.Feed, a.Dashboard)
}

func (a *App) NewKhataState() *viewstate.Khata {
	return viewstate.NewKhata(a.Feed, a.Ledger)
}

func (a *App) NewInventoryState() *viewstate.Inventory {
	return viewstate.NewInventory(a.Feed, a.Products)
}

func (a *App) NewOldPhonesState() *viewstate.OldPhones {
	return viewstate.NewOldPhones(a.Feed, a.OldPhones)
}

func (a *App) NewCustomerDetailState(customerID int64) *viewstate.CustomerDetail {
	return viewstate.NewCustomerDetail(a.Feed, a.Ledger, a.Sales, customerID)
}

func (a *App) NewHistoryState() *viewstate.History {
	return viewstate.NewHistory(a.Feed, a.Sales)
}

// Close stops the feed, then releases the printer, the secure store and the database
func (a *App) Close() error {
	a.Feed.Close()

	var errs []error
	if err := a.printer.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if sqlDB, err := a.db.DB(); err != nil {
		errs = append(errs, err)
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
