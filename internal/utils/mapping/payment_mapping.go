package mapping

import (
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	var ref *string
	if d.ExternalReference != "" {
		r := d.ExternalReference
		ref = &r
	}
	return models.Payment{
		PaymentID:         d.PaymentID,
		InvoiceID:         d.InvoiceID,
		Amount:            d.Amount,
		Method:            string(d.Method),
		ExternalReference: ref,
		Notes:             d.Notes,
		PaidAt:            d.PaidAt,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	p := domain.Payment{
		PaymentID: m.PaymentID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Method:    domain.PaymentMethod(m.Method),
		Notes:     m.Notes,
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
	}
	if m.ExternalReference != nil {
		p.ExternalReference = *m.ExternalReference
	}
	return p
}
