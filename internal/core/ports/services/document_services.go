package services

import (
	"context"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
)

// DocumentReaderSvc defines read operations for invoices and quotes
type DocumentReaderSvc interface {
	// GetDocument retrieves a document of kind by ID.
	GetDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) (*domain.Document, error)

	// ListDocuments retrieves a page of documents of kind.
	ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error)
}

// DocumentWriterSvc defines write operations for invoices and quotes
type DocumentWriterSvc interface {
	// CreateDocument creates a draft document with a freshly assigned number.
	CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest) (*domain.Document, error)

	// UpdateDocument applies a partial metadata update and recomputes totals.
	UpdateDocument(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.UpdateDocumentRequest) (*domain.Document, error)

	// UpdateLineItems replaces every line item and recomputes totals.
	UpdateLineItems(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.UpdateLineItemsRequest) (*domain.Document, error)

	// DeleteDocument removes a document in any state.
	DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) error
}

// DocumentLifecycleSvc defines status changes for invoices and quotes
type DocumentLifecycleSvc interface {
	// TransitionStatus moves a document along its state machine.
	TransitionStatus(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.TransitionStatusRequest) (*domain.Document, error)

	// ConvertQuoteToInvoice creates a draft invoice from an accepted quote.
	ConvertQuoteToInvoice(ctx context.Context, quoteID int64) (*domain.Document, error)

	// SweepExpired marks lapsed sent invoices overdue and lapsed sent quotes expired.
	SweepExpired(ctx context.Context, now time.Time) (*dto.SweepResponse, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentLifecycleSvc
}
