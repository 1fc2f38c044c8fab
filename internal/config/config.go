package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	StorageDriver   string
	CatalogAddress  string
	DeliveryRate    decimal.Decimal
	TaxRate         decimal.Decimal
	DefaultPageSize int
	MaxPageSize     int
	ShutdownTimeout time.Duration
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultDeliveryRate    = "10"
	defaultTaxRate         = "0.2"
	defaultPageSize        = 10
	defaultMaxPageSize     = 100
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		StorageDriver:   getString(lookup, "STORAGE_DRIVER", StoragePostgres),
		CatalogAddress:  getString(lookup, "CATALOG_ADDRESS", ""),
		DefaultPageSize: getInt(lookup, "DEFAULT_PAGE_SIZE", defaultPageSize),
		MaxPageSize:     getInt(lookup, "MAX_PAGE_SIZE", defaultMaxPageSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("commerce", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		deliveryRateStr    = getString(lookup, "DELIVERY_RATE", defaultDeliveryRate)
		taxRateStr         = getString(lookup, "TAX_RATE", defaultTaxRate)
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver: postgres or memory")
	fs.StringVar(&cfg.CatalogAddress, "catalog", cfg.CatalogAddress, "Catalog service base URL")
	fs.StringVar(&deliveryRateStr, "delivery-rate", deliveryRateStr, "Delivery fee per unit of volume")
	fs.StringVar(&taxRateStr, "tax-rate", taxRateStr, "Tax rate applied to subtotal plus delivery")
	fs.IntVar(&cfg.DefaultPageSize, "page-size", cfg.DefaultPageSize, "Default page size")
	fs.IntVar(&cfg.MaxPageSize, "max-page-size", cfg.MaxPageSize, "Maximum page size")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DeliveryRate, err = parseRate("delivery rate", deliveryRateStr); err != nil {
		return nil, err
	}

	if cfg.TaxRate, err = parseRate("tax rate", taxRateStr); err != nil {
		return nil, err
	}

	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}

	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = defaultMaxPageSize
	}

	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func parseRate(name, raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return rate, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
