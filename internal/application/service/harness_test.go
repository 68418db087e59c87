package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/domain/entity"
	"github.com/sangkips/mobileshop-erp/internal/domain/enum"
	infraRepo "github.com/sangkips/mobileshop-erp/internal/infrastructure/repository"
	"github.com/sangkips/mobileshop-erp/internal/observe"
	"github.com/sangkips/mobileshop-erp/internal/testutil"
	"github.com/sangkips/mobileshop-erp/pkg/printer"
	"github.com/sangkips/mobileshop-erp/pkg/securestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type harness struct {
	feed     *observe.Feed
	store    *securestore.Store
	products *ProductService
	ledger   *LedgerService
	sales    *SaleService
	phones   *OldPhoneService
	stats    *DashboardService
	setup    *SetupService
	auth     *AuthService
	settings *SettingsService
	share    *ShareService
	printer  *printer.NullPrinter
	print    *PrinterService
	export   *ExportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	feed := observe.NewFeed()
	t.Cleanup(feed.Close)

	dir := t.TempDir()
	store, err := securestore.Open(filepath.Join(dir, "prefs.bin"), filepath.Join(dir, "prefs.key"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tx := infraRepo.NewTransactor(db)
	productRepo := infraRepo.NewProductRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	phoneRepo := infraRepo.NewOldPhonePurchaseRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	profileRepo := infraRepo.NewShopProfileRepository(db)

	h := &harness{feed: feed, store: store, printer: printer.NewNullPrinter()}
	h.products = NewProductService(productRepo, feed)
	h.ledger = NewLedgerService(tx, customerRepo, analyticsRepo, feed)
	h.sales = NewSaleService(tx, productRepo, saleRepo, customerRepo, feed)
	h.phones = NewOldPhoneService(phoneRepo, analyticsRepo, feed)
	h.stats = NewDashboardService(analyticsRepo, productRepo)
	h.setup = NewSetupService(store, profileRepo, feed)
	h.auth = NewAuthService(store, 15*time.Minute, "mobileshop-test")
	h.settings = NewSettingsService(store, profileRepo, infraRepo.NewResetRepository(db), h.auth, feed)
	h.share = NewShareService(saleRepo, customerRepo, h.settings, "Rs.")
	h.print = NewPrinterService(h.printer, h.share, "none", printer.DefaultWidth, "Rs.")
	h.export = NewExportService(saleRepo, customerRepo, filepath.Join(dir, "exports"))
	return h
}

func (h *harness) accessory(t *testing.T, name string, qty int, buy, sell string) *entity.Product {
	t.Helper()
	p, err := h.products.AddProduct(context.Background(), &ProductInput{
		Name:          name,
		Type:          enum.ProductTypeAccessory,
		PurchasePrice: buy,
		SellingPrice:  sell,
		Quantity:      qty,
	})
	require.NoError(t, err)
	return p
}

func (h *harness) handset(t *testing.T, name, imei, buy, sell string) *entity.Product {
	t.Helper()
	p, err := h.products.AddProduct(context.Background(), &ProductInput{
		Name:          name,
		Type:          enum.ProductTypeHandset,
		IMEI:          imei,
		PurchasePrice: buy,
		SellingPrice:  sell,
	})
	require.NoError(t, err)
	return p
}

func (h *harness) customer(t *testing.T, name string) *entity.CustomerKhata {
	t.Helper()
	c, err := h.ledger.AddCustomer(context.Background(), &CustomerInput{Name: name, Phone: "03001234567"})
	require.NoError(t, err)
	return c
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, money(want).Equal(got), "want %s got %s", want, got)
}
