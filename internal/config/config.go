package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Secure   SecureConfig
	Printer  PrinterConfig
	Export   ExportConfig
}

type AppConfig struct {
	Name           string
	Env            string
	CurrencySymbol string
}

type DatabaseConfig struct {
	Path     string
	LogLevel string
}

type SecureConfig struct {
	StorePath     string
	KeyPath       string
	SessionExpiry time.Duration
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type ExportConfig struct {
	Dir string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "mobileshop-erp")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CURRENCY_SYMBOL", "Rs.")
	viper.SetDefault("DB_PATH", "./data/mobileshop.db")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("SECURE_STORE_PATH", "./data/secure_prefs.bin")
	viper.SetDefault("SECURE_KEY_PATH", "./data/secure_prefs.key")
	viper.SetDefault("SESSION_EXPIRY_MINUTES", 15)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("EXPORT_DIR", "./exports")

	return &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Env:            viper.GetString("APP_ENV"),
			CurrencySymbol: viper.GetString("CURRENCY_SYMBOL"),
		},
		Database: DatabaseConfig{
			Path:     viper.GetString("DB_PATH"),
			LogLevel: viper.GetString("DB_LOG_LEVEL"),
		},
		Secure: SecureConfig{
			StorePath:     viper.GetString("SECURE_STORE_PATH"),
			KeyPath:       viper.GetString("SECURE_KEY_PATH"),
			SessionExpiry: time.Duration(viper.GetInt("SESSION_EXPIRY_MINUTES")) * time.Minute,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Export: ExportConfig{
			Dir: viper.GetString("EXPORT_DIR"),
		},
	}
}

// DSN returns the sqlite connection string with foreign keys enforced.
func (c *DatabaseConfig) DSN() string {
	return "file:" + c.Path +
		"?_foreign_keys=on" +
		"&_journal_mode=WAL" +
		"&_busy_timeout=5000"
}
