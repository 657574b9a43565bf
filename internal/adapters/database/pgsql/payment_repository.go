package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, invoice_id, amount, method, external_reference, notes, paid_at, created_at`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(&m.PaymentID, &m.InvoiceID, &m.Amount, &m.Method, &m.ExternalReference, &m.Notes, &m.PaidAt, &m.CreatedAt)
	return m, err
}

// FindPaymentByReference looks a payment up by its external reference within an invoice.
func (r *PgxPaymentRepository) FindPaymentByReference(ctx context.Context, invoiceID int64, externalReference string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 AND external_reference = $2;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, invoiceID, externalReference))
	if err != nil {
		return nil, notFoundOr(err, "find payment %q on invoice %d", externalReference, invoiceID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

// ListPaymentsByInvoice returns an invoice's payments oldest first.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// SumPaymentsByInvoice returns the total amount paid against an invoice.
func (r *PgxPaymentRepository) SumPaymentsByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, invoiceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments of invoice %d: %w", invoiceID, err)
	}
	return sum, nil
}

// SavePayment inserts a payment. The partial unique index on (invoice_id, external_reference)
// turns a replayed reference into apperrors.ErrDuplicate.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment *domain.Payment) error {
	m := mapping.ToModelPayment(*payment)
	query := `
		INSERT INTO payments (invoice_id, amount, method, external_reference, notes, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING payment_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.InvoiceID, m.Amount, m.Method, m.ExternalReference, m.Notes, m.PaidAt, m.CreatedAt,
	).Scan(&payment.PaymentID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %q on invoice %d", apperrors.ErrDuplicate, payment.ExternalReference, payment.InvoiceID)
		}
		return fmt.Errorf("failed to save payment on invoice %d: %w", payment.InvoiceID, err)
	}
	return nil
}
