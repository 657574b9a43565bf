package repositories

import (
	"context"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
)

// DocumentFilter narrows a document listing. Kind is required.
type DocumentFilter struct {
	Kind       domain.DocumentKind
	Status     *domain.DocumentStatus
	CustomerID *int64
	Limit      int
	After      *pagination.Cursor
}

// DocumentReader defines read operations for invoices and quotes
type DocumentReader interface {
	// FindDocumentByID loads a document of kind with its line items in sort order.
	FindDocumentByID(ctx context.Context, kind domain.DocumentKind, documentID int64) (*domain.Document, error)

	// ListDocuments returns documents matching filter ordered newest first. Line items are loaded.
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)

	// FindLapsedDocuments returns documents of kind in status whose expiry date
	// (due date or valid-until) is strictly before cutoff.
	FindLapsedDocuments(ctx context.Context, kind domain.DocumentKind, status domain.DocumentStatus, cutoff time.Time) ([]domain.Document, error)
}

// DocumentWriter defines write operations for invoices and quotes
type DocumentWriter interface {
	// SaveDocument persists a new document with its line items, assigning IDs.
	// A (kind, number) collision returns apperrors.ErrConflict.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// UpdateDocument writes doc iff the stored version equals doc.Version and replaces its
	// line items. On success doc.Version is incremented. A stale version returns
	// apperrors.ErrConflict, a missing row apperrors.ErrNotFound.
	UpdateDocument(ctx context.Context, doc *domain.Document) error

	// SaveConvertedInvoice atomically saves invoice and links quote to it. The quote write is
	// version checked and fails with apperrors.ErrConflict if the quote was already converted.
	SaveConvertedInvoice(ctx context.Context, quote *domain.Document, invoice *domain.Document) error

	// DeleteDocument removes a document with its line items and payments.
	DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
