package repositories

import (
	"context"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByReference looks up a payment by its external reference within an invoice.
	FindPaymentByReference(ctx context.Context, invoiceID int64, externalReference string) (*domain.Payment, error)

	// ListPaymentsByInvoice returns an invoice's payments oldest first.
	ListPaymentsByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error)

	// SumPaymentsByInvoice returns the total amount paid against an invoice.
	SumPaymentsByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a payment and assigns its ID. A repeated non-empty
	// (invoice, external reference) pair returns apperrors.ErrDuplicate.
	SavePayment(ctx context.Context, payment *domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
