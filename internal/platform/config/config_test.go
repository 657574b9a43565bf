package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "counter", cfg.NumberingPolicy)
	assert.Equal(t, 5, cfg.NumberRetryAttempts)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.DefaultTaxRate.IsZero())

	seed := cfg.SeedSettings()
	assert.Equal(t, "INV", seed.InvoicePrefix)
	assert.Equal(t, "QUO", seed.QuotePrefix)
	assert.Equal(t, int64(1), seed.NextInvoiceNumber)
	assert.Equal(t, 30, seed.PaymentTermsDays)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"PGSQL_URL":             "postgres://localhost/billing",
		"DEFAULT_TAX_RATE":      "8.25",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"SWEEP_INTERVAL":        "0s",
		"NUMBER_RETRY_ATTEMPTS": 0,
	}))
	require.NoError(t, err)

	assert.True(t, cfg.UsesDatabase())
	assert.True(t, decimal.RequireFromString("8.25").Equal(cfg.DefaultTaxRate))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.SweepInterval)
	assert.Equal(t, 5, cfg.NumberRetryAttempts)
}

func TestFromViper_Invalid(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"DEFAULT_TAX_RATE": "abc"}))
	assert.ErrorContains(t, err, "DEFAULT_TAX_RATE")

	_, err = fromViper(newTestViper(map[string]any{"DEFAULT_TAX_RATE": "101"}))
	assert.ErrorContains(t, err, "between 0 and 100")

	_, err = fromViper(newTestViper(map[string]any{"SWEEP_INTERVAL": "soon"}))
	assert.ErrorContains(t, err, "SWEEP_INTERVAL")

	_, err = fromViper(newTestViper(map[string]any{"DEFAULT_TAX_RATE": "8.12345"}))
	assert.ErrorContains(t, err, "decimal places")

	_, err = fromViper(newTestViper(map[string]any{"INVOICE_PREFIX": " "}))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{"QUOTE_PREFIX": "QUOTATION-2024"}))
	assert.ErrorContains(t, err, "at most 10 characters")
}
