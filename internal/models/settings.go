package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the singleton row of the settings table.
type Settings struct {
	BusinessName      string          `db:"business_name"`
	InvoicePrefix     string          `db:"invoice_prefix"`
	QuotePrefix       string          `db:"quote_prefix"`
	NextInvoiceNumber int64           `db:"next_invoice_number"`
	NextQuoteNumber   int64           `db:"next_quote_number"`
	DefaultTaxRate    decimal.Decimal `db:"default_tax_rate"`
	PaymentTermsDays  int             `db:"payment_terms_days"`
	QuoteValidityDays int             `db:"quote_validity_days"`
	LastUpdatedAt     time.Time       `db:"last_updated_at"`
}
