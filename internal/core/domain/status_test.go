package domain_test

import (
	"testing"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_Invoice(t *testing.T) {
	tests := []struct {
		name string
		from domain.DocumentStatus
		to   domain.DocumentStatus
		want bool
	}{
		{"draft to sent", domain.StatusDraft, domain.StatusSent, true},
		{"sent to paid", domain.StatusSent, domain.StatusPaid, true},
		{"sent to overdue", domain.StatusSent, domain.StatusOverdue, true},
		{"overdue to paid", domain.StatusOverdue, domain.StatusPaid, true},
		{"draft to paid skips sent", domain.StatusDraft, domain.StatusPaid, false},
		{"paid to draft", domain.StatusPaid, domain.StatusDraft, false},
		{"paid to sent", domain.StatusPaid, domain.StatusSent, false},
		{"overdue to sent", domain.StatusOverdue, domain.StatusSent, false},
		{"quote status on invoice", domain.StatusSent, domain.StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(domain.KindInvoice, tt.from, tt.to))
		})
	}
}

func TestCanTransition_Quote(t *testing.T) {
	tests := []struct {
		name string
		from domain.DocumentStatus
		to   domain.DocumentStatus
		want bool
	}{
		{"draft to sent", domain.StatusDraft, domain.StatusSent, true},
		{"sent to accepted", domain.StatusSent, domain.StatusAccepted, true},
		{"sent to rejected", domain.StatusSent, domain.StatusRejected, true},
		{"sent to expired", domain.StatusSent, domain.StatusExpired, true},
		{"rejected to accepted", domain.StatusRejected, domain.StatusAccepted, false},
		{"accepted to rejected", domain.StatusAccepted, domain.StatusRejected, false},
		{"expired to sent", domain.StatusExpired, domain.StatusSent, false},
		{"invoice status on quote", domain.StatusSent, domain.StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(domain.KindQuote, tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.IsTerminal(domain.KindInvoice, domain.StatusPaid))
	assert.False(t, domain.IsTerminal(domain.KindInvoice, domain.StatusOverdue))
	assert.True(t, domain.IsTerminal(domain.KindQuote, domain.StatusAccepted))
	assert.True(t, domain.IsTerminal(domain.KindQuote, domain.StatusRejected))
	assert.True(t, domain.IsTerminal(domain.KindQuote, domain.StatusExpired))
	assert.False(t, domain.IsTerminal(domain.KindQuote, domain.StatusSent))
	// unknown labels are not terminal, they are invalid
	assert.False(t, domain.IsTerminal(domain.KindQuote, domain.StatusPaid))
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	edges := domain.AllowedTransitions(domain.KindQuote, domain.StatusSent)
	require.Len(t, edges, 3)
	edges[0] = domain.StatusDraft

	assert.True(t, domain.CanTransition(domain.KindQuote, domain.StatusSent, domain.StatusAccepted))
	assert.Empty(t, domain.AllowedTransitions(domain.KindInvoice, domain.StatusPaid))
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus(domain.KindInvoice, " Overdue ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, s)

	_, err = domain.ParseStatus(domain.KindInvoice, "accepted")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.ParseStatus(domain.KindQuote, "archived")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDocument_Transition(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("invoice lifecycle sets paid date", func(t *testing.T) {
		doc := &domain.Document{Kind: domain.KindInvoice, Number: "INV-001", Status: domain.StatusDraft}

		require.NoError(t, doc.Transition(domain.StatusSent, at))
		assert.Nil(t, doc.PaidDate)
		require.NoError(t, doc.Transition(domain.StatusPaid, at))
		require.NotNil(t, doc.PaidDate)
		assert.True(t, at.Equal(*doc.PaidDate))

		err := doc.Transition(domain.StatusDraft, at)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, domain.StatusPaid, doc.Status)
		assert.False(t, doc.IsEditable())
	})

	t.Run("quote acceptance sets accepted date", func(t *testing.T) {
		doc := &domain.Document{Kind: domain.KindQuote, Number: "QUO-001", Status: domain.StatusSent}

		require.NoError(t, doc.Transition(domain.StatusAccepted, at))
		require.NotNil(t, doc.AcceptedDate)
		assert.True(t, at.Equal(*doc.AcceptedDate))
	})

	t.Run("rejected quote cannot be accepted", func(t *testing.T) {
		doc := &domain.Document{Kind: domain.KindQuote, Number: "QUO-002", Status: domain.StatusRejected}

		err := doc.Transition(domain.StatusAccepted, at)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Nil(t, doc.AcceptedDate)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		doc := &domain.Document{Kind: domain.KindInvoice, Status: domain.StatusSent}

		err := doc.Transition(domain.StatusExpired, at)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
