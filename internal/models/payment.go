package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table. An empty external reference is stored as NULL.
type Payment struct {
	PaymentID         int64           `db:"payment_id"`
	InvoiceID         int64           `db:"invoice_id"`
	Amount            decimal.Decimal `db:"amount"`
	Method            string          `db:"method"`
	ExternalReference *string         `db:"external_reference"`
	Notes             string          `db:"notes"`
	PaidAt            time.Time       `db:"paid_at"`
	CreatedAt         time.Time       `db:"created_at"`
}
