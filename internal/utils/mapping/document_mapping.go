package mapping

import (
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
)

// ToModelDocument converts a domain Document to a model Document. Line items are mapped separately.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:         d.DocumentID,
		Kind:               string(d.Kind),
		Number:             d.Number,
		CustomerID:         d.CustomerID,
		Status:             string(d.Status),
		IssueDate:          d.IssueDate,
		DueDate:            d.DueDate,
		ValidUntil:         d.ValidUntil,
		PaidDate:           d.PaidDate,
		AcceptedDate:       d.AcceptedDate,
		Notes:              d.Notes,
		Terms:              d.Terms,
		TaxRate:            d.TaxRate,
		Subtotal:           d.Subtotal,
		TaxAmount:          d.TaxAmount,
		Total:              d.Total,
		SourceQuoteID:      d.SourceQuoteID,
		ConvertedInvoiceID: d.ConvertedInvoiceID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document and its line item rows to a domain Document
func ToDomainDocument(m models.Document, items []models.LineItem) domain.Document {
	return domain.Document{
		DocumentID:         m.DocumentID,
		Kind:               domain.DocumentKind(m.Kind),
		Number:             m.Number,
		CustomerID:         m.CustomerID,
		Status:             domain.DocumentStatus(m.Status),
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		ValidUntil:         m.ValidUntil,
		PaidDate:           m.PaidDate,
		AcceptedDate:       m.AcceptedDate,
		Notes:              m.Notes,
		Terms:              m.Terms,
		TaxRate:            m.TaxRate,
		Subtotal:           m.Subtotal,
		TaxAmount:          m.TaxAmount,
		Total:              m.Total,
		LineItems:          ToDomainLineItems(items),
		SourceQuoteID:      m.SourceQuoteID,
		ConvertedInvoiceID: m.ConvertedInvoiceID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		DocumentID:  d.DocumentID,
		Description: d.Description,
		Quantity:    d.Quantity,
		Rate:        d.Rate,
		Amount:      d.Amount,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainLineItems converts model LineItems to domain LineItems
func ToDomainLineItems(ms []models.LineItem) []domain.LineItem {
	items := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		items[i] = domain.LineItem{
			LineItemID:  m.LineItemID,
			DocumentID:  m.DocumentID,
			Description: m.Description,
			Quantity:    m.Quantity,
			Rate:        m.Rate,
			Amount:      m.Amount,
			SortOrder:   m.SortOrder,
		}
	}
	return items
}
