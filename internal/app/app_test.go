package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig points every path of a config into dir
func testConfig(dir string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "mobileshop-test", Env: "test", CurrencySymbol: "Rs."},
		Database: config.DatabaseConfig{
			Path:     filepath.Join(dir, "shop.db"),
			LogLevel: "silent",
		},
		Secure: config.SecureConfig{
			StorePath:     filepath.Join(dir, "prefs.bin"),
			KeyPath:       filepath.Join(dir, "prefs.key"),
			SessionExpiry: 15 * time.Minute,
		},
		Printer: config.PrinterConfig{Type: "none", Width: 32},
		Export:  config.ExportConfig{Dir: filepath.Join(dir, "exports")},
	}
}

func TestNew_ReopensExistingData(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t.TempDir())

	a, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, a.Setup.CompleteSetup(ctx, &service.SetupInput{
		ShopName: "Ali Mobiles", OwnerName: "Ali", Pin: "1234", ConfirmPin: "1234",
	}))
	c, err := a.Ledger.AddCustomer(ctx, &service.CustomerInput{Name: "Bilal"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(cfg)
	require.NoError(t, err)
	defer b.Close()

	done, err := b.Setup.IsSetupCompleted()
	require.NoError(t, err)
	assert.True(t, done)

	got, err := b.Ledger.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bilal", got.CustomerName)

	_, err = b.Auth.VerifyPin("1234")
	assert.NoError(t, err)

	status := b.Printer.GetStatus()
	assert.False(t, status.Configured)
}

func TestNew_UnknownPrinterFallsBack(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Printer.Type = "bluetooth"

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Printer.TestPrint(context.Background())
	assert.NoError(t, err)
}
