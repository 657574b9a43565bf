package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPrefixLength is the longest invoice or quote number prefix, in characters.
const MaxPrefixLength = 10

// Settings holds business-wide billing defaults and the per-kind numbering counters.
type Settings struct {
	BusinessName      string          `json:"businessName"`
	InvoicePrefix     string          `json:"invoicePrefix"`
	QuotePrefix       string          `json:"quotePrefix"`
	NextInvoiceNumber int64           `json:"nextInvoiceNumber"`
	NextQuoteNumber   int64           `json:"nextQuoteNumber"`
	DefaultTaxRate    decimal.Decimal `json:"defaultTaxRate"`
	PaymentTermsDays  int             `json:"paymentTermsDays"`
	QuoteValidityDays int             `json:"quoteValidityDays"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// PrefixFor returns the number prefix configured for kind.
func (s Settings) PrefixFor(kind DocumentKind) string {
	if kind == KindQuote {
		return s.QuotePrefix
	}
	return s.InvoicePrefix
}
