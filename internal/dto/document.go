package dto

import (
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line item as supplied by a client. Amount is always derived.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,notblank,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"gte=0,lt=10000000000"`
	Rate        decimal.Decimal `json:"rate" binding:"gte=0,lt=10000000000"`
	SortOrder   *int            `json:"sortOrder" binding:"omitempty,gte=0"`
}

// CreateDocumentRequest defines the data needed to create an invoice or a quote.
// Omitted dates and tax rate fall back to the business settings.
type CreateDocumentRequest struct {
	CustomerID int64             `json:"customerID" binding:"required,gt=0"`
	LineItems  []LineItemRequest `json:"lineItems" binding:"dive"`
	TaxRate    *decimal.Decimal  `json:"taxRate" binding:"omitempty,gte=0,lte=100"`
	IssueDate  *time.Time        `json:"issueDate"`
	DueDate    *time.Time        `json:"dueDate"`
	ValidUntil *time.Time        `json:"validUntil"`
	Notes      string            `json:"notes"`
	Terms      string            `json:"terms"`
}

// UpdateDocumentRequest is a partial metadata update. Line items and status have their own endpoints.
type UpdateDocumentRequest struct {
	CustomerID      *int64           `json:"customerID" binding:"omitempty,gt=0"`
	TaxRate         *decimal.Decimal `json:"taxRate" binding:"omitempty,gte=0,lte=100"`
	IssueDate       *time.Time       `json:"issueDate"`
	DueDate         *time.Time       `json:"dueDate"`
	ValidUntil      *time.Time       `json:"validUntil"`
	Notes           *string          `json:"notes"`
	Terms           *string          `json:"terms"`
	ExpectedVersion *int64           `json:"expectedVersion" binding:"omitempty,gt=0"`
}

// UpdateLineItemsRequest replaces every line item of a document.
type UpdateLineItemsRequest struct {
	LineItems       []LineItemRequest `json:"lineItems" binding:"dive"`
	ExpectedVersion *int64            `json:"expectedVersion" binding:"omitempty,gt=0"`
}

// TransitionStatusRequest moves a document along its lifecycle.
type TransitionStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ExpectedVersion *int64 `json:"expectedVersion" binding:"omitempty,gt=0"`
}

// ListDocumentsParams defines query parameters for listing invoices or quotes.
type ListDocumentsParams struct {
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  string `form:"nextToken"`
	Status     string `form:"status"`
	CustomerID int64  `form:"customerID" binding:"omitempty,gt=0"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  int64  `json:"lineItemID"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
	SortOrder   int    `json:"sortOrder"`
}

// DocumentResponse defines the data returned for an invoice or quote. Money is
// rendered as fixed two place strings.
type DocumentResponse struct {
	DocumentID         int64              `json:"documentID"`
	Kind               string             `json:"kind"`
	Number             string             `json:"number"`
	CustomerID         int64              `json:"customerID"`
	Status             string             `json:"status"`
	AllowedTransitions []string           `json:"allowedTransitions"`
	IssueDate          time.Time          `json:"issueDate"`
	DueDate            *time.Time         `json:"dueDate,omitempty"`
	ValidUntil         *time.Time         `json:"validUntil,omitempty"`
	PaidDate           *time.Time         `json:"paidDate,omitempty"`
	AcceptedDate       *time.Time         `json:"acceptedDate,omitempty"`
	Notes              string             `json:"notes"`
	Terms              string             `json:"terms"`
	TaxRate            string             `json:"taxRate"`
	Subtotal           string             `json:"subtotal"`
	TaxAmount          string             `json:"taxAmount"`
	Total              string             `json:"total"`
	LineItems          []LineItemResponse `json:"lineItems"`
	SourceQuoteID      *int64             `json:"sourceQuoteID,omitempty"`
	ConvertedInvoiceID *int64             `json:"convertedInvoiceID,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	Version            int64              `json:"version"`
}

// ListDocumentsResponse wraps a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken string             `json:"nextToken,omitempty"`
}

// SweepResponse reports how many documents a maintenance sweep moved.
type SweepResponse struct {
	Overdue int `json:"overdue"`
	Expired int `json:"expired"`
}

// ToLineItemInputs converts request rows into calculator inputs.
func ToLineItemInputs(reqs []LineItemRequest) []billing.LineItemInput {
	inputs := make([]billing.LineItemInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = billing.LineItemInput{
			Description: r.Description,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			SortOrder:   r.SortOrder,
		}
	}
	return inputs
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	items := make([]LineItemResponse, len(d.LineItems))
	for i, li := range d.LineItems {
		items[i] = LineItemResponse{
			LineItemID:  li.LineItemID,
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			Rate:        li.Rate.String(),
			Amount:      li.Amount.StringFixed(2),
			SortOrder:   li.SortOrder,
		}
	}
	next := domain.AllowedTransitions(d.Kind, d.Status)
	allowed := make([]string, len(next))
	for i, s := range next {
		allowed[i] = string(s)
	}

	return DocumentResponse{
		DocumentID:         d.DocumentID,
		Kind:               string(d.Kind),
		Number:             d.Number,
		CustomerID:         d.CustomerID,
		Status:             string(d.Status),
		AllowedTransitions: allowed,
		IssueDate:          d.IssueDate,
		DueDate:            d.DueDate,
		ValidUntil:         d.ValidUntil,
		PaidDate:           d.PaidDate,
		AcceptedDate:       d.AcceptedDate,
		Notes:              d.Notes,
		Terms:              d.Terms,
		TaxRate:            d.TaxRate.String(),
		Subtotal:           d.Subtotal.StringFixed(2),
		TaxAmount:          d.TaxAmount.StringFixed(2),
		Total:              d.Total.StringFixed(2),
		LineItems:          items,
		SourceQuoteID:      d.SourceQuoteID,
		ConvertedInvoiceID: d.ConvertedInvoiceID,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
		Version:            d.Version,
	}
}

// ToListDocumentResponse converts a slice of domain.Document.
func ToListDocumentResponse(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
