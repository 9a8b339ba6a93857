package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the module reads.
const EnvPrefix = "PROMO"

const (
	EnvAppEnv   = "PROMO_APP_ENV"
	EnvLogLevel = "PROMO_LOG_LEVEL"
	EnvDBDSN    = "PROMO_DB_DSN"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Promotion PromotionConfig
}

// Load builds the configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvFile reads the given dotenv files before parsing the environment.
// Missing files are not an error; the environment simply wins.
func LoadWithEnvFile(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)
	return Load()
}

type AppConfig struct {
	Env          string `envconfig:"PROMO_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"PROMO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROMO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"PROMO_DB_DSN"`
	MaxOpenConns    int           `envconfig:"PROMO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// PromotionConfig carries the storefront-facing promotion settings.
type PromotionConfig struct {
	DiscountLabel       string `envconfig:"PROMO_DISCOUNT_LABEL" default:"Discount: 2025 Promotion"`
	MinItems            int    `envconfig:"PROMO_MIN_ITEMS" default:"4"`
	DisableFreeShipping bool   `envconfig:"PROMO_DISABLE_FREE_SHIPPING" default:"true"`
	ExcludedCoupons     string `envconfig:"PROMO_EXCLUDED_COUPONS" default:""`
}

// ExcludedCouponCodes splits the configured comma-separated code list.
func (p PromotionConfig) ExcludedCouponCodes() []string {
	if strings.TrimSpace(p.ExcludedCoupons) == "" {
		return nil
	}
	parts := strings.Split(p.ExcludedCoupons, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
