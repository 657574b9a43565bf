// Package memory is a map backed implementation of every repository port. It serves
// development and demo runs without Postgres and backs service scenario tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Store holds all entities behind one lock, so multi-entity writes are atomic.
// Values are copied in and out; callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	customers map[int64]*domain.Customer

	documents map[int64]*domain.Document
	// numbers indexes document ids by kind and number
	numbers map[domain.DocumentKind]map[string]int64

	payments map[int64]*domain.Payment
	// paymentRefs indexes payment ids by invoice and external reference
	paymentRefs map[int64]map[string]int64

	settings *domain.Settings

	nextCustomerID int64
	nextDocumentID int64
	nextLineItemID int64
	nextPaymentID  int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		customers:   make(map[int64]*domain.Customer),
		documents:   make(map[int64]*domain.Document),
		numbers:     make(map[domain.DocumentKind]map[string]int64),
		payments:    make(map[int64]*domain.Payment),
		paymentRefs: make(map[int64]map[string]int64),
	}
}

// NewRepositoryProvider wires one Store into every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: store,
		DocumentRepo: store,
		PaymentRepo:  store,
		SettingsRepo: store,
	}
}

var (
	_ portsrepo.CustomerRepositoryFacade = (*Store)(nil)
	_ portsrepo.DocumentRepositoryFacade = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade  = (*Store)(nil)
	_ portsrepo.SettingsRepositoryFacade = (*Store)(nil)
)

// Customer storage

func (s *Store) FindCustomerByID(_ context.Context, customerID int64) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	out := *c
	return &out, nil
}

func (s *Store) ListCustomers(_ context.Context, limit int, after *pagination.Cursor) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if after != nil && !after.After(c.CreatedAt, c.CustomerID) {
			continue
		}
		result = append(result, *c)
	}
	slices.SortFunc(result, func(a, b domain.Customer) int {
		return newestFirst(a.CreatedAt, a.CustomerID, b.CreatedAt, b.CustomerID)
	})
	return truncate(result, limit), nil
}

func (s *Store) SaveCustomer(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCustomerID++
	customer.CustomerID = s.nextCustomerID
	if customer.Version == 0 {
		customer.Version = 1
	}
	stored := *customer
	s.customers[stored.CustomerID] = &stored
	return nil
}

func (s *Store) UpdateCustomer(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.customers[customer.CustomerID]
	if !ok {
		return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customer.CustomerID)
	}
	if current.Version != customer.Version {
		return fmt.Errorf("%w: customer %d is at version %d", apperrors.ErrConflict, customer.CustomerID, current.Version)
	}
	customer.Version++
	customer.CreatedAt = current.CreatedAt
	stored := *customer
	s.customers[stored.CustomerID] = &stored
	return nil
}

func (s *Store) DeleteCustomer(_ context.Context, customerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	delete(s.customers, customerID)
	return nil
}

// Document storage

func (s *Store) FindDocumentByID(_ context.Context, kind domain.DocumentKind, documentID int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[documentID]
	if !ok || d.Kind != kind {
		return nil, fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, documentID)
	}
	return cloneDocument(d), nil
}

func (s *Store) ListDocuments(_ context.Context, filter portsrepo.DocumentFilter) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Document, 0)
	for _, d := range s.documents {
		if d.Kind != filter.Kind {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && d.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.After != nil && !filter.After.After(d.CreatedAt, d.DocumentID) {
			continue
		}
		result = append(result, *cloneDocument(d))
	}
	slices.SortFunc(result, func(a, b domain.Document) int {
		return newestFirst(a.CreatedAt, a.DocumentID, b.CreatedAt, b.DocumentID)
	})
	return truncate(result, filter.Limit), nil
}

func (s *Store) FindLapsedDocuments(_ context.Context, kind domain.DocumentKind, status domain.DocumentStatus, cutoff time.Time) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Document, 0)
	for _, d := range s.documents {
		if d.Kind != kind || d.Status != status {
			continue
		}
		if expiry := d.ExpiryDate(); expiry != nil && expiry.Before(cutoff) {
			result = append(result, *cloneDocument(d))
		}
	}
	slices.SortFunc(result, func(a, b domain.Document) int {
		return cmp.Compare(a.DocumentID, b.DocumentID)
	})
	return result, nil
}

func (s *Store) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertDocumentLocked(doc)
}

func (s *Store) insertDocumentLocked(doc *domain.Document) error {
	if _, taken := s.numbers[doc.Kind][doc.Number]; taken {
		return fmt.Errorf("%w: %s number %s already exists", apperrors.ErrConflict, doc.Kind, doc.Number)
	}

	s.nextDocumentID++
	doc.DocumentID = s.nextDocumentID
	if doc.Version == 0 {
		doc.Version = 1
	}
	s.assignLineItemIDsLocked(doc)

	if s.numbers[doc.Kind] == nil {
		s.numbers[doc.Kind] = make(map[string]int64)
	}
	s.numbers[doc.Kind][doc.Number] = doc.DocumentID
	s.documents[doc.DocumentID] = cloneDocument(doc)
	return nil
}

func (s *Store) assignLineItemIDsLocked(doc *domain.Document) {
	for i := range doc.LineItems {
		s.nextLineItemID++
		doc.LineItems[i].LineItemID = s.nextLineItemID
		doc.LineItems[i].DocumentID = doc.DocumentID
	}
}

func (s *Store) UpdateDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateDocumentLocked(doc)
}

func (s *Store) updateDocumentLocked(doc *domain.Document) error {
	current, ok := s.documents[doc.DocumentID]
	if !ok || current.Kind != doc.Kind {
		return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, doc.Kind, doc.DocumentID)
	}
	if current.Version != doc.Version {
		return fmt.Errorf("%w: %s %s is at version %d, write was based on %d",
			apperrors.ErrConflict, doc.Kind, current.Number, current.Version, doc.Version)
	}

	// number and creation time are immutable
	doc.Number = current.Number
	doc.CreatedAt = current.CreatedAt
	doc.Version++
	s.assignLineItemIDsLocked(doc)
	s.documents[doc.DocumentID] = cloneDocument(doc)
	return nil
}

func (s *Store) SaveConvertedInvoice(_ context.Context, quote *domain.Document, invoice *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.documents[quote.DocumentID]
	if !ok || current.Kind != domain.KindQuote {
		return fmt.Errorf("%w: quote %d", apperrors.ErrNotFound, quote.DocumentID)
	}
	if current.Version != quote.Version || current.ConvertedInvoiceID != nil {
		return fmt.Errorf("%w: quote %s changed or was already converted", apperrors.ErrConflict, current.Number)
	}
	if _, taken := s.numbers[domain.KindInvoice][invoice.Number]; taken {
		return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrConflict, invoice.Number)
	}

	if err := s.insertDocumentLocked(invoice); err != nil {
		return err
	}
	linked := cloneDocument(current)
	invoiceID := invoice.DocumentID
	linked.ConvertedInvoiceID = &invoiceID
	linked.LastUpdatedAt = quote.LastUpdatedAt
	linked.Version++
	s.documents[linked.DocumentID] = linked

	quote.ConvertedInvoiceID = &invoiceID
	quote.Version = linked.Version
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, kind domain.DocumentKind, documentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[documentID]
	if !ok || d.Kind != kind {
		return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, documentID)
	}
	delete(s.numbers[kind], d.Number)
	delete(s.documents, documentID)

	if kind == domain.KindInvoice {
		for id, p := range s.payments {
			if p.InvoiceID == documentID {
				delete(s.payments, id)
			}
		}
		delete(s.paymentRefs, documentID)
	}
	return nil
}

// Payment storage

func (s *Store) FindPaymentByReference(_ context.Context, invoiceID int64, externalReference string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.paymentRefs[invoiceID][externalReference]
	if !ok {
		return nil, fmt.Errorf("%w: payment %q on invoice %d", apperrors.ErrNotFound, externalReference, invoiceID)
	}
	out := *s.payments[id]
	return &out, nil
}

func (s *Store) ListPaymentsByInvoice(_ context.Context, invoiceID int64) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Payment, 0)
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			result = append(result, *p)
		}
	}
	slices.SortFunc(result, func(a, b domain.Payment) int {
		return cmp.Compare(a.PaymentID, b.PaymentID)
	})
	return result, nil
}

func (s *Store) SumPaymentsByInvoice(_ context.Context, invoiceID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (s *Store) SavePayment(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ExternalReference != "" {
		if _, exists := s.paymentRefs[payment.InvoiceID][payment.ExternalReference]; exists {
			return fmt.Errorf("%w: payment %q on invoice %d", apperrors.ErrDuplicate, payment.ExternalReference, payment.InvoiceID)
		}
	}

	s.nextPaymentID++
	payment.PaymentID = s.nextPaymentID
	stored := *payment
	s.payments[stored.PaymentID] = &stored

	if stored.ExternalReference != "" {
		if s.paymentRefs[stored.InvoiceID] == nil {
			s.paymentRefs[stored.InvoiceID] = make(map[string]int64)
		}
		s.paymentRefs[stored.InvoiceID][stored.ExternalReference] = stored.PaymentID
	}
	return nil
}

// Settings storage

func (s *Store) GetSettings(_ context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, fmt.Errorf("%w: settings have not been initialised", apperrors.ErrNotFound)
	}
	out := *s.settings
	return &out, nil
}

func (s *Store) EnsureSettings(_ context.Context, defaults domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings != nil {
		return nil
	}
	if defaults.NextInvoiceNumber < 1 {
		defaults.NextInvoiceNumber = 1
	}
	if defaults.NextQuoteNumber < 1 {
		defaults.NextQuoteNumber = 1
	}
	s.settings = &defaults
	return nil
}

func (s *Store) UpdateSettings(_ context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return fmt.Errorf("%w: settings have not been initialised", apperrors.ErrNotFound)
	}
	// counters belong to NextSequence
	settings.NextInvoiceNumber = s.settings.NextInvoiceNumber
	settings.NextQuoteNumber = s.settings.NextQuoteNumber
	s.settings = &settings
	return nil
}

func (s *Store) NextSequence(_ context.Context, kind domain.DocumentKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return 0, fmt.Errorf("%w: settings have not been initialised", apperrors.ErrNotFound)
	}
	var n int64
	switch kind {
	case domain.KindInvoice:
		n = s.settings.NextInvoiceNumber
		s.settings.NextInvoiceNumber++
	case domain.KindQuote:
		n = s.settings.NextQuoteNumber
		s.settings.NextQuoteNumber++
	default:
		return 0, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	return n, nil
}

// helpers

func cloneDocument(d *domain.Document) *domain.Document {
	out := *d
	out.LineItems = slices.Clone(d.LineItems)
	out.DueDate = cloneTime(d.DueDate)
	out.ValidUntil = cloneTime(d.ValidUntil)
	out.PaidDate = cloneTime(d.PaidDate)
	out.AcceptedDate = cloneTime(d.AcceptedDate)
	out.SourceQuoteID = cloneID(d.SourceQuoteID)
	out.ConvertedInvoiceID = cloneID(d.ConvertedInvoiceID)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// newestFirst orders by creation time descending, then id descending.
func newestFirst(aTime time.Time, aID int64, bTime time.Time, bID int64) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}
	switch {
	case aID > bID:
		return -1
	case aID < bID:
		return 1
	}
	return 0
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
