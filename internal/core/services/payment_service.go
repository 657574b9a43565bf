package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/billing"
)

// settleAttempts bounds the reload-and-retry loop when marking an invoice paid races another writer.
const settleAttempts = 3

type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentClock pins the service clock.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.Now = now
	}
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		BaseService:  newBaseService(),
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) loadInvoice(ctx context.Context, invoiceID int64) (*domain.Document, error) {
	invoice, err := s.documentRepo.FindDocumentByID(ctx, domain.KindInvoice, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load invoice %d: %w", invoiceID, err)
	}
	return invoice, nil
}

// RecordPayment stores a payment against an invoice.
//
// A non-empty external reference makes the call idempotent: a second call with the same
// reference returns the first payment and creates nothing. Once the payments cover the
// invoice total the invoice moves to paid, exactly once.
func (s *paymentService) RecordPayment(ctx context.Context, invoiceID int64, req dto.RecordPaymentRequest) (*domain.Payment, bool, error) {
	if !req.Amount.IsPositive() {
		return nil, false, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}
	amount := req.Amount.Round(billing.MoneyPlaces)
	if !amount.IsPositive() {
		return nil, false, fmt.Errorf("%w: payment amount rounds to zero", apperrors.ErrValidation)
	}
	if err := billing.CheckMoney("payment amount", amount); err != nil {
		return nil, false, err
	}
	method := domain.PaymentMethod(req.Method)
	if method == "" {
		method = domain.PaymentOther
	}
	if !method.IsValid() {
		return nil, false, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}
	reference := strings.TrimSpace(req.ExternalReference)
	if utf8.RuneCountInString(reference) > domain.MaxReferenceLength {
		return nil, false, fmt.Errorf("%w: external reference must be at most %d characters",
			apperrors.ErrValidation, domain.MaxReferenceLength)
	}

	invoice, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, false, err
	}

	if reference != "" {
		existing, err := s.paymentRepo.FindPaymentByReference(ctx, invoiceID, reference)
		switch {
		case err == nil:
			s.LogInfo(ctx, "Duplicate payment notification ignored",
				slog.Int64("invoice_id", invoiceID), slog.String("external_reference", reference))
			// a previous call may have failed between saving and settling
			if err := s.settleInvoice(ctx, invoiceID); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, false, fmt.Errorf("failed to look up payment reference: %w", err)
		}
	}

	if invoice.Status != domain.StatusSent && invoice.Status != domain.StatusOverdue {
		return nil, false, fmt.Errorf("%w: invoice %s is %s, payments are accepted only when sent or overdue",
			apperrors.ErrInvalidState, invoice.Number, invoice.Status)
	}

	now := s.now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}
	payment := &domain.Payment{
		InvoiceID:         invoiceID,
		Amount:            amount,
		Method:            method,
		ExternalReference: reference,
		Notes:             req.Notes,
		PaidAt:            paidAt,
		CreatedAt:         now,
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && reference != "" {
			// lost a race with a concurrent delivery of the same notification
			existing, findErr := s.paymentRepo.FindPaymentByReference(ctx, invoiceID, reference)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to load duplicate payment: %w", findErr)
			}
			return existing, false, nil
		}
		s.LogError(ctx, err, "Failed to save payment", slog.Int64("invoice_id", invoiceID))
		return nil, false, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.Int64("invoice_id", invoiceID),
		slog.Int64("payment_id", payment.PaymentID),
		slog.String("amount", amount.StringFixed(2)))

	if err := s.settleInvoice(ctx, invoiceID); err != nil {
		return nil, false, err
	}
	return payment, true, nil
}

// settleInvoice marks the invoice paid when its payments cover the total. It reloads and
// retries on version conflicts and is a no-op for invoices already paid.
func (s *paymentService) settleInvoice(ctx context.Context, invoiceID int64) error {
	for attempt := 1; attempt <= settleAttempts; attempt++ {
		invoice, err := s.loadInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != domain.StatusSent && invoice.Status != domain.StatusOverdue {
			return nil
		}

		paid, err := s.paymentRepo.SumPaymentsByInvoice(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to sum payments for invoice %d: %w", invoiceID, err)
		}
		if paid.LessThan(invoice.Total) {
			return nil
		}

		if err := invoice.Transition(domain.StatusPaid, s.now()); err != nil {
			return err
		}
		invoice.LastUpdatedAt = s.now()
		err = s.documentRepo.UpdateDocument(ctx, invoice)
		if err == nil {
			s.LogInfo(ctx, "Invoice paid in full",
				slog.Int64("invoice_id", invoiceID), slog.String("paid", paid.StringFixed(2)))
			return nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("failed to mark invoice %d paid: %w", invoiceID, err)
		}
		s.LogWarn(ctx, err, "Invoice changed while settling, retrying",
			slog.Int64("invoice_id", invoiceID), slog.Int("attempt", attempt))
	}
	return fmt.Errorf("%w: invoice %d kept changing while being marked paid", apperrors.ErrConflict, invoiceID)
}

func (s *paymentService) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	if _, err := s.loadInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %d: %w", invoiceID, err)
	}
	return payments, nil
}

// HandleGatewayEvent is the boundary to the payment gateway. Only succeeded events
// become payments; the gateway reference doubles as the idempotency key.
func (s *paymentService) HandleGatewayEvent(ctx context.Context, event domain.GatewayEvent) (*domain.Payment, error) {
	if strings.TrimSpace(event.PaymentReference) == "" {
		return nil, fmt.Errorf("%w: gateway events need a payment reference", apperrors.ErrValidation)
	}
	if event.Status != domain.GatewaySucceeded {
		s.LogInfo(ctx, "Gateway event ignored",
			slog.String("payment_reference", event.PaymentReference),
			slog.String("status", string(event.Status)))
		return nil, nil
	}

	occurred := event.OccurredAt
	payment, _, err := s.RecordPayment(ctx, event.InvoiceID, dto.RecordPaymentRequest{
		Amount:            event.Amount,
		Method:            string(event.Method),
		ExternalReference: event.PaymentReference,
		PaidAt:            &occurred,
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
