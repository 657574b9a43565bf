package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row of a Document.
// Amount is derived from Quantity and Rate and is only ever written by the billing calculator.
type LineItem struct {
	LineItemID  int64           `json:"lineItemID"`
	DocumentID  int64           `json:"documentID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sortOrder"`
}

// Document is an invoice or a quote.
//
// Subtotal, TaxAmount and Total are a cache over LineItems and TaxRate. Write paths go
// through billing.ApplyTotals so the cache never drifts from its inputs.
type Document struct {
	DocumentID   int64           `json:"documentID"`
	Kind         DocumentKind    `json:"kind"`
	Number       string          `json:"number"`
	CustomerID   int64           `json:"customerID"`
	Status       DocumentStatus  `json:"status"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`    // invoices only
	ValidUntil   *time.Time      `json:"validUntil,omitempty"` // quotes only
	PaidDate     *time.Time      `json:"paidDate,omitempty"`
	AcceptedDate *time.Time      `json:"acceptedDate,omitempty"`
	Notes        string          `json:"notes"`
	Terms        string          `json:"terms"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	Total        decimal.Decimal `json:"total"`
	LineItems    []LineItem      `json:"lineItems"`

	// SourceQuoteID is set on invoices created from a quote; ConvertedInvoiceID on that quote.
	SourceQuoteID      *int64 `json:"sourceQuoteID,omitempty"`
	ConvertedInvoiceID *int64 `json:"convertedInvoiceID,omitempty"`

	AuditFields
}

// IsEditable reports whether line items and metadata may still change.
func (d *Document) IsEditable() bool {
	return !IsTerminal(d.Kind, d.Status)
}

// ExpiryDate returns the date after which a sent document lapses: the due date for
// invoices and the valid-until date for quotes.
func (d *Document) ExpiryDate() *time.Time {
	if d.Kind == KindQuote {
		return d.ValidUntil
	}
	return d.DueDate
}
