package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	DB        DBConfig
	Redis     RedisConfig
	Directory DirectoryConfig
	Orders    OrdersConfig
	Billing   BillingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if _, err := c.Storage.StorageDriver(); err != nil {
		return err
	}
	if c.Storage.SnapshotKey == "" {
		return fmt.Errorf("%s must not be empty", EnvSnapshotKey)
	}
	if err := c.Orders.Validate(); err != nil {
		return err
	}
	if err := c.Billing.Validate(); err != nil {
		return err
	}
	if c.Directory.FetchLatency < 0 || c.Directory.LookupLatency < 0 || c.Directory.WriteLatency < 0 {
		return fmt.Errorf("directory latencies must not be negative")
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver      string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"sqlite"`
	AutoMigrate bool   `envconfig:"STOREFRONT_STORAGE_AUTO_MIGRATE" default:"true"`
	SnapshotKey string `envconfig:"STOREFRONT_STORAGE_SNAPSHOT_KEY" default:"storefront_vendors_db"`
}

// StorageDriver returns the parsed backend selector.
func (s StorageConfig) StorageDriver() (enums.StorageDriver, error) {
	driver, err := enums.ParseStorageDriver(s.Driver)
	if err != nil {
		return "", fmt.Errorf("%s: %w", EnvStorageDrv, err)
	}
	return driver, nil
}

type DBConfig struct {
	DSN string `envconfig:"STOREFRONT_DB_DSN" default:"file:storefront.db?cache=shared&_busy_timeout=5000"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"STOREFRONT_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DirectoryConfig holds the simulated network latency of the vendor store.
type DirectoryConfig struct {
	FetchLatency  time.Duration `envconfig:"STOREFRONT_DIRECTORY_FETCH_LATENCY" default:"800ms"`
	LookupLatency time.Duration `envconfig:"STOREFRONT_DIRECTORY_LOOKUP_LATENCY" default:"400ms"`
	WriteLatency  time.Duration `envconfig:"STOREFRONT_DIRECTORY_WRITE_LATENCY" default:"800ms"`
}

// OrdersConfig holds the dwell times, each measured from order creation.
type OrdersConfig struct {
	ProcessingAfter     time.Duration `envconfig:"STOREFRONT_ORDERS_PROCESSING_AFTER" default:"8s"`
	OutForDeliveryAfter time.Duration `envconfig:"STOREFRONT_ORDERS_OUT_FOR_DELIVERY_AFTER" default:"20s"`
	DeliveredAfter      time.Duration `envconfig:"STOREFRONT_ORDERS_DELIVERED_AFTER" default:"35s"`
	EstimatedDelivery   string        `envconfig:"STOREFRONT_ORDERS_ESTIMATED_DELIVERY" default:"15-20 mins"`
}

func (o OrdersConfig) Validate() error {
	if o.ProcessingAfter <= 0 {
		return fmt.Errorf("%s must be positive", EnvProcessing)
	}
	if o.OutForDeliveryAfter <= o.ProcessingAfter {
		return fmt.Errorf("%s must be after %s", EnvOutForDeliv, EnvProcessing)
	}
	if o.DeliveredAfter <= o.OutForDeliveryAfter {
		return fmt.Errorf("%s must be after %s", EnvDelivered, EnvOutForDeliv)
	}
	return nil
}

// DefaultOrdersConfig mirrors the envconfig defaults.
func DefaultOrdersConfig() OrdersConfig {
	return OrdersConfig{
		ProcessingAfter:     8 * time.Second,
		OutForDeliveryAfter: 20 * time.Second,
		DeliveredAfter:      35 * time.Second,
		EstimatedDelivery:   "15-20 mins",
	}
}

// BillingConfig drives the bill quote shown before payment.
type BillingConfig struct {
	FreeDeliveryThreshold decimal.Decimal `envconfig:"STOREFRONT_BILLING_FREE_DELIVERY_THRESHOLD" default:"199"`
	DeliveryFee           decimal.Decimal `envconfig:"STOREFRONT_BILLING_DELIVERY_FEE" default:"15"`
	TaxesAndCharges       decimal.Decimal `envconfig:"STOREFRONT_BILLING_TAXES_AND_CHARGES" default:"5.35"`
}

func (b BillingConfig) Validate() error {
	if b.FreeDeliveryThreshold.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvFreeDelivery)
	}
	if b.DeliveryFee.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvDeliveryFee)
	}
	if b.TaxesAndCharges.IsNegative() {
		return fmt.Errorf("taxes and charges must not be negative")
	}
	return nil
}

// DefaultBillingConfig mirrors the envconfig defaults.
func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		FreeDeliveryThreshold: decimal.NewFromInt(199),
		DeliveryFee:           decimal.NewFromInt(15),
		TaxesAndCharges:       decimal.RequireFromString("5.35"),
	}
}
