package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config carries the tunables the business left as configuration: the
// default tax rate differs between deployments (5% and 15% were both in
// use), so neither value is hard-coded.
type Config struct {
	Port                string
	DBURL               string
	DefaultTaxRate      decimal.Decimal
	DefaultServicePrice decimal.Decimal
	StoreTimeout        time.Duration
	ReconcileEvery      string // cron spec for the invoice link reconciler
}

func Load() *Config {
	cfg := &Config{
		Port:                envOr("PORT", "8080"),
		DBURL:               os.Getenv("DB_URL"),
		DefaultTaxRate:      envDecimal("DEFAULT_TAX_RATE", "15"),
		DefaultServicePrice: envDecimal("DEFAULT_SERVICE_PRICE", "0"),
		StoreTimeout:        envDuration("STORE_TIMEOUT", 5*time.Second),
		ReconcileEvery:      envOr("RECONCILE_CRON", "@every 10m"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) decimal.Decimal {
	v := envOr(key, fallback)
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
