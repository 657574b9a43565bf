package dto

import (
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest is a partial update of the business settings.
// Number counters are owned by the numbering sequence and cannot be set here.
type UpdateSettingsRequest struct {
	BusinessName      *string          `json:"businessName" binding:"omitempty,max=200"`
	InvoicePrefix     *string          `json:"invoicePrefix" binding:"omitempty,alphanum,max=10"`
	QuotePrefix       *string          `json:"quotePrefix" binding:"omitempty,alphanum,max=10"`
	DefaultTaxRate    *decimal.Decimal `json:"defaultTaxRate" binding:"omitempty,gte=0,lte=100"`
	PaymentTermsDays  *int             `json:"paymentTermsDays" binding:"omitempty,gte=0,lte=365"`
	QuoteValidityDays *int             `json:"quoteValidityDays" binding:"omitempty,gte=0,lte=365"`
}

// SettingsResponse defines the data returned for the business settings.
type SettingsResponse struct {
	BusinessName      string    `json:"businessName"`
	InvoicePrefix     string    `json:"invoicePrefix"`
	QuotePrefix       string    `json:"quotePrefix"`
	NextInvoiceNumber int64     `json:"nextInvoiceNumber"`
	NextQuoteNumber   int64     `json:"nextQuoteNumber"`
	DefaultTaxRate    string    `json:"defaultTaxRate"`
	PaymentTermsDays  int       `json:"paymentTermsDays"`
	QuoteValidityDays int       `json:"quoteValidityDays"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// ToSettingsResponse converts domain.Settings to SettingsResponse DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		BusinessName:      s.BusinessName,
		InvoicePrefix:     s.InvoicePrefix,
		QuotePrefix:       s.QuotePrefix,
		NextInvoiceNumber: s.NextInvoiceNumber,
		NextQuoteNumber:   s.NextQuoteNumber,
		DefaultTaxRate:    s.DefaultTaxRate.String(),
		PaymentTermsDays:  s.PaymentTermsDays,
		QuoteValidityDays: s.QuoteValidityDays,
		LastUpdatedAt:     s.LastUpdatedAt,
	}
}
