package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
)

// DocumentKind distinguishes invoices from quotes. Both share one document shape.
type DocumentKind string

const (
	KindInvoice DocumentKind = "invoice"
	KindQuote   DocumentKind = "quote"
)

// IsValid reports whether k is a known document kind.
func (k DocumentKind) IsValid() bool {
	return k == KindInvoice || k == KindQuote
}

// DocumentStatus is a lifecycle state. The valid subset depends on the DocumentKind.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusSent     DocumentStatus = "sent"
	StatusPaid     DocumentStatus = "paid"
	StatusOverdue  DocumentStatus = "overdue"
	StatusAccepted DocumentStatus = "accepted"
	StatusRejected DocumentStatus = "rejected"
	StatusExpired  DocumentStatus = "expired"
)

// invoiceTransitions is the invoice state machine. A status with no entry is terminal.
var invoiceTransitions = map[DocumentStatus][]DocumentStatus{
	StatusDraft:   {StatusSent},
	StatusSent:    {StatusPaid, StatusOverdue},
	StatusOverdue: {StatusPaid},
	StatusPaid:    nil,
}

// quoteTransitions is the quote state machine. Expired quotes are not re-opened.
var quoteTransitions = map[DocumentStatus][]DocumentStatus{
	StatusDraft:    {StatusSent},
	StatusSent:     {StatusAccepted, StatusRejected, StatusExpired},
	StatusAccepted: nil,
	StatusRejected: nil,
	StatusExpired:  nil,
}

func transitionsFor(kind DocumentKind) map[DocumentStatus][]DocumentStatus {
	switch kind {
	case KindInvoice:
		return invoiceTransitions
	case KindQuote:
		return quoteTransitions
	}
	return nil
}

// IsKnownStatus reports whether s belongs to the status vocabulary of kind.
func IsKnownStatus(kind DocumentKind, s DocumentStatus) bool {
	_, ok := transitionsFor(kind)[s]
	return ok
}

// ParseStatus converts a raw label into a status of the given kind.
// Labels outside the kind's closed set fail with ErrValidation.
func ParseStatus(kind DocumentKind, raw string) (DocumentStatus, error) {
	s := DocumentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !IsKnownStatus(kind, s) {
		return "", fmt.Errorf("%w: unknown %s status %q", apperrors.ErrValidation, kind, raw)
	}
	return s, nil
}

// AllowedTransitions returns the outgoing edges from status from. Terminal states return none.
func AllowedTransitions(kind DocumentKind, from DocumentStatus) []DocumentStatus {
	edges := transitionsFor(kind)[from]
	out := make([]DocumentStatus, len(edges))
	copy(out, edges)
	return out
}

// CanTransition reports whether from -> to is an edge of kind's state machine.
func CanTransition(kind DocumentKind, from, to DocumentStatus) bool {
	for _, next := range transitionsFor(kind)[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing edges for kind.
func IsTerminal(kind DocumentKind, s DocumentStatus) bool {
	edges, ok := transitionsFor(kind)[s]
	return ok && len(edges) == 0
}

// Transition moves the document to status to, applying the timestamp side effects:
// invoices reaching paid get PaidDate, quotes reaching accepted get AcceptedDate.
func (d *Document) Transition(to DocumentStatus, at time.Time) error {
	if !IsKnownStatus(d.Kind, to) {
		return fmt.Errorf("%w: unknown %s status %q", apperrors.ErrValidation, d.Kind, to)
	}
	if !CanTransition(d.Kind, d.Status, to) {
		return fmt.Errorf("%w: %s %s cannot move from %s to %s",
			apperrors.ErrInvalidTransition, d.Kind, d.Number, d.Status, to)
	}
	d.Status = to
	switch {
	case d.Kind == KindInvoice && to == StatusPaid:
		d.PaidDate = &at
	case d.Kind == KindQuote && to == StatusAccepted:
		d.AcceptedDate = &at
	}
	return nil
}
