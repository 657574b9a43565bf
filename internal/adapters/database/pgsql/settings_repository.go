package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/mapping"
)

// settingsID is the primary key of the single settings row.
const settingsID = 1

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSettings returns the settings row.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT business_name, invoice_prefix, quote_prefix, next_invoice_number, next_quote_number,
			default_tax_rate, payment_terms_days, quote_validity_days, last_updated_at
		FROM settings
		WHERE settings_id = $1;
	`
	var m models.Settings
	err := r.Pool.QueryRow(ctx, query, settingsID).Scan(
		&m.BusinessName,
		&m.InvoicePrefix,
		&m.QuotePrefix,
		&m.NextInvoiceNumber,
		&m.NextQuoteNumber,
		&m.DefaultTaxRate,
		&m.PaymentTermsDays,
		&m.QuoteValidityDays,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "load settings")
	}
	s := mapping.ToDomainSettings(m)
	return &s, nil
}

// EnsureSettings inserts defaults unless the settings row already exists.
func (r *PgxSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.Settings) error {
	m := mapping.ToModelSettings(defaults)
	query := `
		INSERT INTO settings (settings_id, business_name, invoice_prefix, quote_prefix, next_invoice_number,
			next_quote_number, default_tax_rate, payment_terms_days, quote_validity_days, last_updated_at)
		VALUES ($1, $2, $3, $4, GREATEST($5, 1), GREATEST($6, 1), $7, $8, $9, $10)
		ON CONFLICT (settings_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		settingsID, m.BusinessName, m.InvoicePrefix, m.QuotePrefix, m.NextInvoiceNumber,
		m.NextQuoteNumber, m.DefaultTaxRate, m.PaymentTermsDays, m.QuoteValidityDays, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// UpdateSettings writes every field except the numbering counters.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)
	query := `
		UPDATE settings
		SET business_name = $2, invoice_prefix = $3, quote_prefix = $4, default_tax_rate = $5,
			payment_terms_days = $6, quote_validity_days = $7, last_updated_at = $8
		WHERE settings_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		settingsID, m.BusinessName, m.InvoicePrefix, m.QuotePrefix, m.DefaultTaxRate,
		m.PaymentTermsDays, m.QuoteValidityDays, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: settings have not been initialised", apperrors.ErrNotFound)
	}
	return nil
}

// NextSequence advances the counter for kind with a single row-locking update and
// returns the value it held before.
func (r *PgxSettingsRepository) NextSequence(ctx context.Context, kind domain.DocumentKind) (int64, error) {
	var query string
	switch kind {
	case domain.KindInvoice:
		query = `UPDATE settings SET next_invoice_number = next_invoice_number + 1
			WHERE settings_id = $1 RETURNING next_invoice_number - 1;`
	case domain.KindQuote:
		query = `UPDATE settings SET next_quote_number = next_quote_number + 1
			WHERE settings_id = $1 RETURNING next_quote_number - 1;`
	default:
		return 0, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	var n int64
	if err := r.Pool.QueryRow(ctx, query, settingsID).Scan(&n); err != nil {
		return 0, notFoundOr(err, "advance %s counter", kind)
	}
	return n, nil
}
