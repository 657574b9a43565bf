package services

import (
	"context"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
)

// PaymentSvcFacade defines payment operations against invoices
type PaymentSvcFacade interface {
	// RecordPayment stores a payment and marks the invoice paid once payments cover its total.
	// The boolean is false when an earlier payment with the same external reference was returned.
	RecordPayment(ctx context.Context, invoiceID int64, req dto.RecordPaymentRequest) (*domain.Payment, bool, error)

	// ListPayments returns an invoice's payments.
	ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error)

	// HandleGatewayEvent records a succeeded gateway event. Other outcomes return nil, nil.
	HandleGatewayEvent(ctx context.Context, event domain.GatewayEvent) (*domain.Payment, error)
}
