package mapping

import (
	"testing"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentReferenceNullability(t *testing.T) {
	m := ToModelPayment(domain.Payment{InvoiceID: 1, Amount: decimal.NewFromInt(5)})
	assert.Nil(t, m.ExternalReference)

	m = ToModelPayment(domain.Payment{InvoiceID: 1, ExternalReference: "pi_1"})
	if assert.NotNil(t, m.ExternalReference) {
		assert.Equal(t, "pi_1", *m.ExternalReference)
	}

	d := ToDomainPayment(models.Payment{PaymentID: 3})
	assert.Equal(t, "", d.ExternalReference)
}

func TestToDomainDocument_KeepsLineItemOrder(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	doc := ToDomainDocument(models.Document{
		DocumentID: 4,
		Kind:       "invoice",
		Status:     "sent",
		DueDate:    &due,
	}, []models.LineItem{{LineItemID: 9, SortOrder: 0}, {LineItemID: 8, SortOrder: 1}})

	assert.Equal(t, domain.KindInvoice, doc.Kind)
	assert.Equal(t, domain.StatusSent, doc.Status)
	assert.Equal(t, []int64{9, 8}, []int64{doc.LineItems[0].LineItemID, doc.LineItems[1].LineItemID})
	assert.Equal(t, &due, doc.ExpiryDate())
}
