package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod describes how a payment was made.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentOther        PaymentMethod = "other"
)

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentBankTransfer, PaymentCash, PaymentCheck, PaymentOther:
		return true
	}
	return false
}

// MaxReferenceLength is the longest external payment reference, in characters.
const MaxReferenceLength = 255

// Payment records money received against an invoice.
// ExternalReference is the gateway's payment identifier and the idempotency key per invoice.
type Payment struct {
	PaymentID         int64           `json:"paymentID"`
	InvoiceID         int64           `json:"invoiceID"`
	Amount            decimal.Decimal `json:"amount"`
	Method            PaymentMethod   `json:"method"`
	ExternalReference string          `json:"externalReference"`
	Notes             string          `json:"notes"`
	PaidAt            time.Time       `json:"paidAt"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// GatewayEventStatus is the outcome reported by the payment gateway.
type GatewayEventStatus string

const (
	GatewaySucceeded GatewayEventStatus = "succeeded"
	GatewayFailed    GatewayEventStatus = "failed"
	GatewayPending   GatewayEventStatus = "pending"
)

// GatewayEvent is the normalized notification the payment gateway adapter hands to the core.
type GatewayEvent struct {
	PaymentReference string
	InvoiceID        int64
	Amount           decimal.Decimal
	Method           PaymentMethod
	Status           GatewayEventStatus
	OccurredAt       time.Time
}
