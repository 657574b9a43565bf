package dto

import (
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines a manual or gateway payment against an invoice.
// A repeated ExternalReference for the same invoice returns the original payment.
type RecordPaymentRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"gt=0,lt=1000000000000"`
	Method            string          `json:"method" binding:"omitempty,oneof=card bank_transfer cash check other"`
	ExternalReference string          `json:"externalReference" binding:"max=255"`
	PaidAt            *time.Time      `json:"paidAt"`
	Notes             string          `json:"notes"`
}

// GatewayEventRequest is the payment notification accepted on the webhook.
type GatewayEventRequest struct {
	PaymentReference string          `json:"paymentReference" binding:"required,notblank,max=255"`
	InvoiceID        int64           `json:"invoiceID" binding:"required,gt=0"`
	Amount           decimal.Decimal `json:"amount" binding:"gt=0,lt=1000000000000"`
	Method           string          `json:"method" binding:"omitempty,oneof=card bank_transfer cash check other"`
	Status           string          `json:"status" binding:"required,oneof=succeeded failed pending"`
	OccurredAt       *time.Time      `json:"occurredAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         int64     `json:"paymentID"`
	InvoiceID         int64     `json:"invoiceID"`
	Amount            string    `json:"amount"`
	Method            string    `json:"method"`
	ExternalReference string    `json:"externalReference,omitempty"`
	Notes             string    `json:"notes"`
	PaidAt            time.Time `json:"paidAt"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RecordPaymentResponse reports the stored payment and whether this call created it.
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Created bool            `json:"created"`
}

// GatewayEventResponse acknowledges a webhook delivery.
type GatewayEventResponse struct {
	Recorded bool             `json:"recorded"`
	Payment  *PaymentResponse `json:"payment,omitempty"`
}

// ToGatewayEvent converts the webhook payload into a domain.GatewayEvent.
func ToGatewayEvent(req GatewayEventRequest, receivedAt time.Time) domain.GatewayEvent {
	occurred := receivedAt
	if req.OccurredAt != nil {
		occurred = *req.OccurredAt
	}
	method := domain.PaymentMethod(req.Method)
	if method == "" {
		method = domain.PaymentCard
	}
	return domain.GatewayEvent{
		PaymentReference: req.PaymentReference,
		InvoiceID:        req.InvoiceID,
		Amount:           req.Amount,
		Method:           method,
		Status:           domain.GatewayEventStatus(req.Status),
		OccurredAt:       occurred,
	}
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		InvoiceID:         p.InvoiceID,
		Amount:            p.Amount.StringFixed(2),
		Method:            string(p.Method),
		ExternalReference: p.ExternalReference,
		Notes:             p.Notes,
		PaidAt:            p.PaidAt,
		CreatedAt:         p.CreatedAt,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment.
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
