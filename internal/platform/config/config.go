package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/billing"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	NumberingPolicy     string
	NumberRetryAttempts int
	SweepInterval       time.Duration

	RateLimit          string
	WebhookRateLimit   string
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string

	// Seed values for the business settings when the store has none yet.
	BusinessName      string
	DefaultTaxRate    decimal.Decimal
	InvoicePrefix     string
	QuotePrefix       string
	PaymentTermsDays  int
	QuoteValidityDays int
}

// UsesDatabase reports whether a Postgres URL is configured. Without one the
// in-memory store is used.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// SeedSettings returns the settings written on first start.
func (c *Config) SeedSettings() domain.Settings {
	return domain.Settings{
		BusinessName:      c.BusinessName,
		InvoicePrefix:     c.InvoicePrefix,
		QuotePrefix:       c.QuotePrefix,
		NextInvoiceNumber: 1,
		NextQuoteNumber:   1,
		DefaultTaxRate:    c.DefaultTaxRate,
		PaymentTermsDays:  c.PaymentTermsDays,
		QuoteValidityDays: c.QuoteValidityDays,
		LastUpdatedAt:     time.Now().UTC(),
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("NUMBERING_POLICY", "counter")
	v.SetDefault("NUMBER_RETRY_ATTEMPTS", 5)
	v.SetDefault("SWEEP_INTERVAL", "1h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("WEBHOOK_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("BUSINESS_NAME", "")
	v.SetDefault("DEFAULT_TAX_RATE", "0")
	v.SetDefault("INVOICE_PREFIX", "INV")
	v.SetDefault("QUOTE_PREFIX", "QUO")
	v.SetDefault("PAYMENT_TERMS_DAYS", 30)
	v.SetDefault("QUOTE_VALIDITY_DAYS", 30)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:       v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		NumberingPolicy:     v.GetString("NUMBERING_POLICY"),
		NumberRetryAttempts: v.GetInt("NUMBER_RETRY_ATTEMPTS"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		WebhookRateLimit:    v.GetString("WEBHOOK_RATE_LIMIT"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
		BusinessName:        v.GetString("BUSINESS_NAME"),
		InvoicePrefix:       strings.TrimSpace(v.GetString("INVOICE_PREFIX")),
		QuotePrefix:         strings.TrimSpace(v.GetString("QUOTE_PREFIX")),
		PaymentTermsDays:    v.GetInt("PAYMENT_TERMS_DAYS"),
		QuoteValidityDays:   v.GetInt("QUOTE_VALIDITY_DAYS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.NumberRetryAttempts <= 0 {
		cfg.NumberRetryAttempts = 5
	}

	sweepStr := v.GetString("SWEEP_INTERVAL")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL %q: %w", sweepStr, err)
	}
	cfg.SweepInterval = sweep

	taxStr := v.GetString("DEFAULT_TAX_RATE")
	tax, err := decimal.NewFromString(strings.TrimSpace(taxStr))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TAX_RATE %q: %w", taxStr, err)
	}
	if err := billing.ValidateTaxRate(tax); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TAX_RATE: %w", err)
	}
	cfg.DefaultTaxRate = tax

	if cfg.InvoicePrefix == "" || cfg.QuotePrefix == "" {
		return nil, fmt.Errorf("INVOICE_PREFIX and QUOTE_PREFIX must not be empty")
	}
	if utf8.RuneCountInString(cfg.InvoicePrefix) > domain.MaxPrefixLength || utf8.RuneCountInString(cfg.QuotePrefix) > domain.MaxPrefixLength {
		return nil, fmt.Errorf("INVOICE_PREFIX and QUOTE_PREFIX must be at most %d characters", domain.MaxPrefixLength)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
