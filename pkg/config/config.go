package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "LUXE"

	EnvAppEnv             = "LUXE_APP_ENV"
	EnvLogLevel           = "LUXE_LOG_LEVEL"
	EnvLogFormat          = "LUXE_LOG_FORMAT"
	EnvStorageDriver      = "LUXE_STORAGE_DRIVER"
	EnvStorageNamespace   = "LUXE_STORAGE_NAMESPACE"
	EnvDBDSN              = "LUXE_DB_DSN"
	EnvRedisURL           = "LUXE_REDIS_URL"
	EnvRedisAddr          = "LUXE_REDIS_ADDR"
	EnvBusinessName       = "LUXE_BUSINESS_NAME"
	EnvWhatsAppPhone      = "LUXE_WHATSAPP_PHONE"
	EnvDefaultCurrency    = "LUXE_DEFAULT_CURRENCY"
	EnvSubmissionEndpoint = "LUXE_SUBMISSIONS_ENDPOINT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Storage drivers understood by storage.Open.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

var validStorageDrivers = []string{
	StorageDriverMemory,
	StorageDriverSQLite,
	StorageDriverPostgres,
	StorageDriverRedis,
}

type Config struct {
	App         AppConfig
	Storage     StorageConfig
	DB          DBConfig
	Redis       RedisConfig
	Store       StoreConfig
	Submissions SubmissionsConfig
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
	driver := c.Storage.NormalizedDriver()
	known := false
	for _, candidate := range validStorageDrivers {
		if candidate == driver {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if driver == StorageDriverRedis && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("either %s or %s is required for the redis driver", EnvRedisURL, EnvRedisAddr)
	}
	if (driver == StorageDriverSQLite || driver == StorageDriverPostgres) && c.DB.DSN == "" {
		return fmt.Errorf("%s is required for the %s driver", EnvDBDSN, driver)
	}
	if _, err := enums.ParseCurrency(strings.ToUpper(c.Store.DefaultCurrency)); err != nil {
		return fmt.Errorf("%s: %w", EnvDefaultCurrency, err)
	}
	if strings.TrimSpace(c.Store.WhatsAppPhone) == "" {
		return fmt.Errorf("%s is required", EnvWhatsAppPhone)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"LUXE_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"LUXE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LUXE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LUXE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver    string `envconfig:"LUXE_STORAGE_DRIVER" default:"sqlite"`
	Namespace string `envconfig:"LUXE_STORAGE_NAMESPACE" default:"luxe"`
}

// NormalizedDriver returns the lower-cased, trimmed driver name.
func (s StorageConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type DBConfig struct {
	DSN string `envconfig:"LUXE_DB_DSN" default:"file:luxe.db"`

	MaxOpenConns    int           `envconfig:"LUXE_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"LUXE_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"LUXE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUXE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUXE_REDIS_URL"`
	Address      string        `envconfig:"LUXE_REDIS_ADDR"`
	Password     string        `envconfig:"LUXE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUXE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUXE_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"LUXE_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"LUXE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUXE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LUXE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// StoreConfig describes the business the checkout message is addressed to.
type StoreConfig struct {
	BusinessName    string `envconfig:"LUXE_BUSINESS_NAME" default:"Luxe Hair Studio"`
	WhatsAppPhone   string `envconfig:"LUXE_WHATSAPP_PHONE" default:"263771234567"`
	DefaultCurrency string `envconfig:"LUXE_DEFAULT_CURRENCY" default:"USD"`
}

// Currency returns the parsed default display currency.
func (s StoreConfig) Currency() enums.Currency {
	currency, err := enums.ParseCurrency(strings.ToUpper(strings.TrimSpace(s.DefaultCurrency)))
	if err != nil {
		return enums.CurrencyUSD
	}
	return currency
}

type SubmissionsConfig struct {
	Endpoint string        `envconfig:"LUXE_SUBMISSIONS_ENDPOINT"`
	Timeout  time.Duration `envconfig:"LUXE_SUBMISSIONS_TIMEOUT" default:"10s"`
}
