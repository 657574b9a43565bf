package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table, shared by invoices and quotes.
// Nullable columns are pointers.
type Document struct {
	DocumentID         int64           `db:"document_id"`
	Kind               string          `db:"kind"`
	Number             string          `db:"number"`
	CustomerID         int64           `db:"customer_id"`
	Status             string          `db:"status"`
	IssueDate          time.Time       `db:"issue_date"`
	DueDate            *time.Time      `db:"due_date"`
	ValidUntil         *time.Time      `db:"valid_until"`
	PaidDate           *time.Time      `db:"paid_date"`
	AcceptedDate       *time.Time      `db:"accepted_date"`
	Notes              string          `db:"notes"`
	Terms              string          `db:"terms"`
	TaxRate            decimal.Decimal `db:"tax_rate"`
	Subtotal           decimal.Decimal `db:"subtotal"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	Total              decimal.Decimal `db:"total"`
	SourceQuoteID      *int64          `db:"source_quote_id"`
	ConvertedInvoiceID *int64          `db:"converted_invoice_id"`
	AuditFields
}

// LineItem is a row of the line_items table.
type LineItem struct {
	LineItemID  int64           `db:"line_item_id"`
	DocumentID  int64           `db:"document_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	Rate        decimal.Decimal `db:"rate"`
	Amount      decimal.Decimal `db:"amount"`
	SortOrder   int             `db:"sort_order"`
}
