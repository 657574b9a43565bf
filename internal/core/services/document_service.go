package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/billing"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/numbering"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
)

// DefaultNumberRetryAttempts bounds how often a colliding number is regenerated.
const DefaultNumberRetryAttempts = 5

// documentService implements the shared invoice and quote ledger.
type documentService struct {
	BaseService
	documentRepo  portsrepo.DocumentRepositoryFacade
	customerRepo  portsrepo.CustomerReader
	settingsRepo  portsrepo.SettingsRepositoryFacade
	paymentRepo   portsrepo.PaymentReader
	numbers       *numbering.Generator
	retryAttempts int
}

// DocumentServiceOption is a functional option for configuring the document service
type DocumentServiceOption func(*documentService)

// WithNumberGenerator replaces the default counter based generator.
func WithNumberGenerator(g *numbering.Generator) DocumentServiceOption {
	return func(s *documentService) {
		s.numbers = g
	}
}

// WithNumberRetryAttempts sets how many numbers are tried before giving up with ErrConflict.
func WithNumberRetryAttempts(n int) DocumentServiceOption {
	return func(s *documentService) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

// WithPaymentLedger lets total-changing edits settle invoices that existing payments
// already cover.
func WithPaymentLedger(payments portsrepo.PaymentReader) DocumentServiceOption {
	return func(s *documentService) {
		s.paymentRepo = payments
	}
}

// WithDocumentClock pins the service clock.
func WithDocumentClock(now func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.Now = now
	}
}

// NewDocumentService creates a new DocumentService with the provided options
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	options ...DocumentServiceOption,
) portssvc.DocumentSvcFacade {
	svc := &documentService{
		BaseService:   newBaseService(),
		documentRepo:  documentRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		numbers:       numbering.NewGenerator(numbering.PolicyCounter),
		retryAttempts: DefaultNumberRetryAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest) (*domain.Document, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.ensureCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	items, err := billing.BuildLineItems(dto.ToLineItemInputs(req.LineItems))
	if err != nil {
		return nil, err
	}
	taxRate := settings.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	now := s.now()
	doc := &domain.Document{
		Kind:       kind,
		CustomerID: req.CustomerID,
		Status:     domain.StatusDraft,
		IssueDate:  startOfDay(now),
		Notes:      req.Notes,
		Terms:      req.Terms,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
			Version:       1,
		},
	}
	if req.IssueDate != nil {
		doc.IssueDate = req.IssueDate.UTC()
	}

	switch kind {
	case domain.KindInvoice:
		if req.ValidUntil != nil {
			return nil, fmt.Errorf("%w: validUntil applies to quotes only", apperrors.ErrValidation)
		}
		due := doc.IssueDate.AddDate(0, 0, settings.PaymentTermsDays)
		if req.DueDate != nil {
			due = req.DueDate.UTC()
		}
		doc.DueDate = &due
	case domain.KindQuote:
		if req.DueDate != nil {
			return nil, fmt.Errorf("%w: dueDate applies to invoices only", apperrors.ErrValidation)
		}
		validUntil := doc.IssueDate.AddDate(0, 0, settings.QuoteValidityDays)
		if req.ValidUntil != nil {
			validUntil = req.ValidUntil.UTC()
		}
		doc.ValidUntil = &validUntil
	}
	if err := validateDates(doc); err != nil {
		return nil, err
	}

	if err := billing.ApplyTotals(doc, items, taxRate); err != nil {
		return nil, err
	}

	if err := s.saveWithNumber(ctx, doc, settings.PrefixFor(kind), s.documentRepo.SaveDocument); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document created",
		slog.String("kind", string(kind)),
		slog.Int64("document_id", doc.DocumentID),
		slog.String("number", doc.Number),
		slog.String("total", doc.Total.StringFixed(2)))
	return doc, nil
}

// saveWithNumber assigns a number and calls save, regenerating the number when storage
// reports a collision.
func (s *documentService) saveWithNumber(ctx context.Context, doc *domain.Document, prefix string, save func(context.Context, *domain.Document) error) error {
	var lastErr error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		number, err := s.nextNumber(ctx, doc.Kind, prefix)
		if err != nil {
			return err
		}
		doc.Number = number

		err = save(ctx, doc)
		if err == nil {
			return nil
		}
		var stop *stopRetry
		if errors.As(err, &stop) {
			return stop.err
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save document", slog.String("kind", string(doc.Kind)))
			return fmt.Errorf("failed to save %s: %w", doc.Kind, err)
		}
		lastErr = err
		s.LogWarn(ctx, err, "Document number collision, retrying",
			slog.String("number", number), slog.Int("attempt", attempt))
	}
	return fmt.Errorf("could not allocate a unique %s number after %d attempts: %w", doc.Kind, s.retryAttempts, lastErr)
}

// stopRetry ends saveWithNumber early with err, even when err is a conflict.
type stopRetry struct{ err error }

func (e *stopRetry) Error() string { return e.err.Error() }

func (e *stopRetry) Unwrap() error { return e.err }

func (s *documentService) nextNumber(ctx context.Context, kind domain.DocumentKind, prefix string) (string, error) {
	var counter int64
	if s.numbers.UsesCounter() {
		var err error
		counter, err = s.settingsRepo.NextSequence(ctx, kind)
		if err != nil {
			return "", fmt.Errorf("failed to advance %s sequence: %w", kind, err)
		}
	}
	return s.numbers.Generate(prefix, counter)
}

func (s *documentService) ensureCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: customer %d does not exist", apperrors.ErrNotFound, customerID)
		}
		return fmt.Errorf("failed to load customer %d: %w", customerID, err)
	}
	return nil
}

func validateDates(doc *domain.Document) error {
	if expiry := doc.ExpiryDate(); expiry != nil && expiry.Before(doc.IssueDate) {
		return fmt.Errorf("%w: %s date must not precede the issue date", apperrors.ErrValidation, expiryLabel(doc.Kind))
	}
	return nil
}

func expiryLabel(kind domain.DocumentKind) string {
	if kind == domain.KindQuote {
		return "valid-until"
	}
	return "due"
}

func (s *documentService) GetDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, kind, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", kind, documentID, err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	filter := portsrepo.DocumentFilter{Kind: kind, Limit: limit + 1}

	if params.Status != "" {
		status, err := domain.ParseStatus(kind, params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if params.CustomerID > 0 {
		customerID := params.CustomerID
		filter.CustomerID = &customerID
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = &cursor
	}

	docs, err := s.documentRepo.ListDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", kind, err)
	}

	resp := &dto.ListDocumentsResponse{}
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		resp.NextToken = pagination.EncodeToken(last.CreatedAt, last.DocumentID)
	}
	resp.Documents = dto.ToListDocumentResponse(docs)
	return resp, nil
}

// loadForWrite fetches a document and checks the caller's expected version.
func (s *documentService) loadForWrite(ctx context.Context, kind domain.DocumentKind, documentID int64, expectedVersion *int64) (*domain.Document, error) {
	doc, err := s.GetDocument(ctx, kind, documentID)
	if err != nil {
		return nil, err
	}
	if expectedVersion != nil && *expectedVersion != doc.Version {
		return nil, fmt.Errorf("%w: %s %s is at version %d, expected %d",
			apperrors.ErrConflict, kind, doc.Number, doc.Version, *expectedVersion)
	}
	return doc, nil
}

func requireEditable(doc *domain.Document) error {
	if !doc.IsEditable() {
		return fmt.Errorf("%w: %s %s is %s and can no longer be edited",
			apperrors.ErrInvalidState, doc.Kind, doc.Number, doc.Status)
	}
	return nil
}

// markPaidIfCovered moves a sent or overdue invoice to paid when the payments already
// recorded cover its recomputed total. The change rides on the caller's versioned write.
func (s *documentService) markPaidIfCovered(ctx context.Context, doc *domain.Document) error {
	if s.paymentRepo == nil || doc.Kind != domain.KindInvoice {
		return nil
	}
	if doc.Status != domain.StatusSent && doc.Status != domain.StatusOverdue {
		return nil
	}
	paid, err := s.paymentRepo.SumPaymentsByInvoice(ctx, doc.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to sum payments for invoice %d: %w", doc.DocumentID, err)
	}
	if !paid.IsPositive() || paid.LessThan(doc.Total) {
		return nil
	}
	if err := doc.Transition(domain.StatusPaid, s.now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Invoice covered by existing payments after edit",
		slog.Int64("invoice_id", doc.DocumentID), slog.String("paid", paid.StringFixed(2)))
	return nil
}

// persist writes doc with its optimistic version check.
func (s *documentService) persist(ctx context.Context, doc *domain.Document, action string) error {
	doc.LastUpdatedAt = s.now()
	if err := s.documentRepo.UpdateDocument(ctx, doc); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Document write rejected",
				slog.String("action", action), slog.Int64("document_id", doc.DocumentID))
			return err
		}
		s.LogError(ctx, err, "Failed to update document",
			slog.String("action", action), slog.Int64("document_id", doc.DocumentID))
		return fmt.Errorf("failed to %s %s %d: %w", action, doc.Kind, doc.DocumentID, err)
	}
	return nil
}

func (s *documentService) UpdateDocument(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.UpdateDocumentRequest) (*domain.Document, error) {
	doc, err := s.loadForWrite(ctx, kind, documentID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(doc); err != nil {
		return nil, err
	}

	if req.CustomerID != nil && *req.CustomerID != doc.CustomerID {
		if err := s.ensureCustomer(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
		doc.CustomerID = *req.CustomerID
	}
	if req.IssueDate != nil {
		doc.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		if kind != domain.KindInvoice {
			return nil, fmt.Errorf("%w: dueDate applies to invoices only", apperrors.ErrValidation)
		}
		due := req.DueDate.UTC()
		doc.DueDate = &due
	}
	if req.ValidUntil != nil {
		if kind != domain.KindQuote {
			return nil, fmt.Errorf("%w: validUntil applies to quotes only", apperrors.ErrValidation)
		}
		validUntil := req.ValidUntil.UTC()
		doc.ValidUntil = &validUntil
	}
	if err := validateDates(doc); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.Terms != nil {
		doc.Terms = *req.Terms
	}

	taxRate := doc.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	if err := billing.ApplyTotals(doc, doc.LineItems, taxRate); err != nil {
		return nil, err
	}
	if err := s.markPaidIfCovered(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, doc, "update"); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Document updated", slog.String("kind", string(kind)), slog.Int64("document_id", documentID))
	return doc, nil
}

func (s *documentService) UpdateLineItems(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.UpdateLineItemsRequest) (*domain.Document, error) {
	doc, err := s.loadForWrite(ctx, kind, documentID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(doc); err != nil {
		return nil, err
	}

	items, err := billing.BuildLineItems(dto.ToLineItemInputs(req.LineItems))
	if err != nil {
		return nil, err
	}
	if err := billing.ApplyTotals(doc, items, doc.TaxRate); err != nil {
		return nil, err
	}
	if err := s.markPaidIfCovered(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, doc, "replace line items of"); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Document line items replaced",
		slog.String("kind", string(kind)),
		slog.Int64("document_id", documentID),
		slog.Int("line_items", len(items)),
		slog.String("total", doc.Total.StringFixed(2)))
	return doc, nil
}

func (s *documentService) TransitionStatus(ctx context.Context, kind domain.DocumentKind, documentID int64, req dto.TransitionStatusRequest) (*domain.Document, error) {
	to, err := domain.ParseStatus(kind, req.Status)
	if err != nil {
		return nil, err
	}
	doc, err := s.loadForWrite(ctx, kind, documentID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	from := doc.Status
	if err := doc.Transition(to, s.now()); err != nil {
		s.LogWarn(ctx, err, "Status transition refused", slog.Int64("document_id", documentID))
		return nil, err
	}
	if err := s.persist(ctx, doc, "transition"); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Document status changed",
		slog.String("kind", string(kind)),
		slog.Int64("document_id", documentID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return doc, nil
}

// DeleteDocument is an administrative removal and is allowed in every status.
func (s *documentService) DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) error {
	if err := s.documentRepo.DeleteDocument(ctx, kind, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete document", slog.Int64("document_id", documentID))
		return fmt.Errorf("failed to delete %s %d: %w", kind, documentID, err)
	}
	s.LogInfo(ctx, "Document deleted", slog.String("kind", string(kind)), slog.Int64("document_id", documentID))
	return nil
}

func (s *documentService) ConvertQuoteToInvoice(ctx context.Context, quoteID int64) (*domain.Document, error) {
	quote, err := s.GetDocument(ctx, domain.KindQuote, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.ConvertedInvoiceID != nil {
		return nil, fmt.Errorf("%w: quote %s was already converted to invoice %d",
			apperrors.ErrConflict, quote.Number, *quote.ConvertedInvoiceID)
	}
	if quote.Status != domain.StatusAccepted {
		return nil, fmt.Errorf("%w: quote %s is %s, only accepted quotes can be converted",
			apperrors.ErrInvalidState, quote.Number, quote.Status)
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	now := s.now()
	issue := startOfDay(now)
	due := issue.AddDate(0, 0, settings.PaymentTermsDays)
	sourceID := quote.DocumentID
	invoice := &domain.Document{
		Kind:          domain.KindInvoice,
		CustomerID:    quote.CustomerID,
		Status:        domain.StatusDraft,
		IssueDate:     issue,
		DueDate:       &due,
		Notes:         quote.Notes,
		Terms:         quote.Terms,
		SourceQuoteID: &sourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
			Version:       1,
		},
	}

	items := make([]domain.LineItem, len(quote.LineItems))
	for i, li := range quote.LineItems {
		items[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			SortOrder:   li.SortOrder,
		}
	}
	if err := billing.ApplyTotals(invoice, items, quote.TaxRate); err != nil {
		return nil, err
	}

	quote.LastUpdatedAt = now
	save := func(ctx context.Context, inv *domain.Document) error {
		err := s.documentRepo.SaveConvertedInvoice(ctx, quote, inv)
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		// the conflict is either the invoice number or the quote itself
		current, loadErr := s.GetDocument(ctx, domain.KindQuote, quoteID)
		if loadErr != nil {
			return &stopRetry{err: loadErr}
		}
		if current.Version != quote.Version || current.ConvertedInvoiceID != nil {
			return &stopRetry{err: fmt.Errorf("%w: quote %s changed during conversion", apperrors.ErrConflict, quote.Number)}
		}
		return err
	}
	if err := s.saveWithNumber(ctx, invoice, settings.InvoicePrefix, save); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Quote converted to invoice",
		slog.Int64("quote_id", quoteID),
		slog.Int64("invoice_id", invoice.DocumentID),
		slog.String("invoice_number", invoice.Number))
	return invoice, nil
}

// SweepExpired moves sent documents whose due or valid-until date lies before today.
// Documents that change concurrently are skipped and picked up by the next sweep.
func (s *documentService) SweepExpired(ctx context.Context, now time.Time) (*dto.SweepResponse, error) {
	cutoff := startOfDay(now)
	result := &dto.SweepResponse{}

	overdue, errOverdue := s.sweep(ctx, domain.KindInvoice, domain.StatusOverdue, cutoff, now)
	result.Overdue = overdue
	expired, errExpired := s.sweep(ctx, domain.KindQuote, domain.StatusExpired, cutoff, now)
	result.Expired = expired

	if err := errors.Join(errOverdue, errExpired); err != nil {
		return result, err
	}
	if result.Overdue > 0 || result.Expired > 0 {
		s.LogInfo(ctx, "Expiry sweep finished", slog.Int("overdue", result.Overdue), slog.Int("expired", result.Expired))
	}
	return result, nil
}

func (s *documentService) sweep(ctx context.Context, kind domain.DocumentKind, to domain.DocumentStatus, cutoff, now time.Time) (int, error) {
	docs, err := s.documentRepo.FindLapsedDocuments(ctx, kind, domain.StatusSent, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find lapsed %ss: %w", kind, err)
	}

	moved := 0
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return moved, err
		}
		doc := &docs[i]
		if err := doc.Transition(to, now); err != nil {
			s.LogWarn(ctx, err, "Skipping lapsed document", slog.Int64("document_id", doc.DocumentID))
			continue
		}
		doc.LastUpdatedAt = now.UTC()
		if err := s.documentRepo.UpdateDocument(ctx, doc); err != nil {
			if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
				s.LogWarn(ctx, err, "Lapsed document changed during sweep", slog.Int64("document_id", doc.DocumentID))
				continue
			}
			return moved, fmt.Errorf("failed to mark %s %d %s: %w", kind, doc.DocumentID, to, err)
		}
		moved++
	}
	return moved, nil
}
