package config

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Receipts  ReceiptsConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// StoreConfig holds the store-wide pricing and sale settings
type StoreConfig struct {
	Name                      string
	Backend                   string // memory | postgres
	ExpirationThresholdDays   int
	ExpirationDiscountPercent decimal.Decimal
	Timezone                  string
	CommitPolicy              string // two_phase | per_line
	SeedDemo                  bool
}

type ReceiptsConfig struct {
	Backend string // file | postgres | memory
	Dir     string
}

type PrinterConfig struct {
	Type      string // usb | network | none
	USBPath   string
	Address   string
	AutoPrint bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string // text | json
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "retail-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "retail_pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("STORE_NAME", "Retail Store")
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("STORE_EXPIRATION_THRESHOLD_DAYS", 5)
	viper.SetDefault("STORE_EXPIRATION_DISCOUNT_PERCENT", 20)
	viper.SetDefault("STORE_TIMEZONE", "Local")
	viper.SetDefault("SALE_COMMIT_POLICY", "two_phase")
	viper.SetDefault("STORE_SEED_DEMO", false)
	viper.SetDefault("RECEIPTS_BACKEND", "file")
	viper.SetDefault("RECEIPTS_DIR", "./receipts")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_AUTO_PRINT", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Store: StoreConfig{
			Name:                      viper.GetString("STORE_NAME"),
			Backend:                   viper.GetString("STORE_BACKEND"),
			ExpirationThresholdDays:   viper.GetInt("STORE_EXPIRATION_THRESHOLD_DAYS"),
			ExpirationDiscountPercent: decimal.NewFromFloat(viper.GetFloat64("STORE_EXPIRATION_DISCOUNT_PERCENT")),
			Timezone:                  viper.GetString("STORE_TIMEZONE"),
			CommitPolicy:              viper.GetString("SALE_COMMIT_POLICY"),
			SeedDemo:                  viper.GetBool("STORE_SEED_DEMO"),
		},
		Receipts: ReceiptsConfig{
			Backend: viper.GetString("RECEIPTS_BACKEND"),
			Dir:     viper.GetString("RECEIPTS_DIR"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			AutoPrint: viper.GetBool("PRINTER_AUTO_PRINT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Validate rejects store settings the pricing and sale engine cannot run with
func (c *StoreConfig) Validate() error {
	if c.ExpirationThresholdDays < 0 {
		return fmt.Errorf("STORE_EXPIRATION_THRESHOLD_DAYS must not be negative, got %d", c.ExpirationThresholdDays)
	}
	if c.ExpirationDiscountPercent.IsNegative() || c.ExpirationDiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("STORE_EXPIRATION_DISCOUNT_PERCENT must be between 0 and 100, got %s", c.ExpirationDiscountPercent)
	}
	switch c.Backend {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}
	switch c.CommitPolicy {
	case "two_phase", "per_line":
	default:
		return fmt.Errorf("unknown SALE_COMMIT_POLICY %q", c.CommitPolicy)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the store timezone used for expiration dates
func (c *StoreConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate rejects an unknown receipts backend
func (c *ReceiptsConfig) Validate() error {
	switch c.Backend {
	case "file":
		if c.Dir == "" {
			return fmt.Errorf("RECEIPTS_DIR is required for the file backend")
		}
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown RECEIPTS_BACKEND %q", c.Backend)
	}
	return nil
}
