package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/mapping"
)

const documentColumns = `document_id, kind, number, customer_id, status, issue_date, due_date, valid_until,
	paid_date, accepted_date, notes, terms, tax_rate, subtotal, tax_amount, total,
	source_quote_id, converted_invoice_id, created_at, last_updated_at, version`

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.Kind,
		&m.Number,
		&m.CustomerID,
		&m.Status,
		&m.IssueDate,
		&m.DueDate,
		&m.ValidUntil,
		&m.PaidDate,
		&m.AcceptedDate,
		&m.Notes,
		&m.Terms,
		&m.TaxRate,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Total,
		&m.SourceQuoteID,
		&m.ConvertedInvoiceID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.Version,
	)
	return m, err
}

// FindDocumentByID retrieves a document of the given kind with its line items.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, kind domain.DocumentKind, documentID int64) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND kind = $2;`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID, string(kind)))
	if err != nil {
		return nil, notFoundOr(err, "find %s %d", kind, documentID)
	}
	docs, err := r.withLineItems(ctx, []models.Document{m})
	if err != nil {
		return nil, err
	}
	return &docs[0], nil
}

// ListDocuments returns documents matching the filter, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentFilter) ([]domain.Document, error) {
	conditions := []string{"kind = $1"}
	args := []any{string(filter.Kind)}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+next(string(*filter.Status)))
	}
	if filter.CustomerID != nil {
		conditions = append(conditions, "customer_id = "+next(*filter.CustomerID))
	}
	if filter.After != nil {
		conditions = append(conditions, fmt.Sprintf("(created_at, document_id) < (%s, %s)",
			next(filter.After.CreatedAt), next(filter.After.ID)))
	}

	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, document_id DESC
		LIMIT ` + next(filter.Limit) + `;`

	return r.queryDocuments(ctx, query, args...)
}

// FindLapsedDocuments returns documents in status whose expiry date is before cutoff.
func (r *PgxDocumentRepository) FindLapsedDocuments(ctx context.Context, kind domain.DocumentKind, status domain.DocumentStatus, cutoff time.Time) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE kind = $1 AND status = $2
			AND COALESCE(CASE WHEN kind = 'quote' THEN valid_until ELSE due_date END, 'infinity') < $3
		ORDER BY document_id;`

	return r.queryDocuments(ctx, query, string(kind), string(status), cutoff)
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var ms []models.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return r.withLineItems(ctx, ms)
}

// withLineItems loads the line items of every document in one query.
func (r *PgxDocumentRepository) withLineItems(ctx context.Context, ms []models.Document) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(ms))
	if len(ms) == 0 {
		return docs, nil
	}

	ids := make([]int64, len(ms))
	for i, m := range ms {
		ids[i] = m.DocumentID
	}
	query := `
		SELECT line_item_id, document_id, description, quantity, rate, amount, sort_order
		FROM line_items
		WHERE document_id = ANY($1)
		ORDER BY document_id, sort_order, line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	byDocument := make(map[int64][]models.LineItem, len(ms))
	for rows.Next() {
		var li models.LineItem
		if err := rows.Scan(&li.LineItemID, &li.DocumentID, &li.Description, &li.Quantity, &li.Rate, &li.Amount, &li.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		byDocument[li.DocumentID] = append(byDocument[li.DocumentID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}

	for _, m := range ms {
		docs = append(docs, mapping.ToDomainDocument(m, byDocument[m.DocumentID]))
	}
	return docs, nil
}

// SaveDocument inserts a document and its line items in one transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertDocument(ctx, tx, doc); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertDocument(ctx context.Context, q querier, doc *domain.Document) error {
	if doc.Version == 0 {
		doc.Version = 1
	}
	m := mapping.ToModelDocument(*doc)
	query := `
		INSERT INTO documents (kind, number, customer_id, status, issue_date, due_date, valid_until,
			paid_date, accepted_date, notes, terms, tax_rate, subtotal, tax_amount, total,
			source_quote_id, converted_invoice_id, created_at, last_updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING document_id;
	`
	err := q.QueryRow(ctx, query,
		m.Kind, m.Number, m.CustomerID, m.Status, m.IssueDate, m.DueDate, m.ValidUntil,
		m.PaidDate, m.AcceptedDate, m.Notes, m.Terms, m.TaxRate, m.Subtotal, m.TaxAmount, m.Total,
		m.SourceQuoteID, m.ConvertedInvoiceID, m.CreatedAt, m.LastUpdatedAt, m.Version,
	).Scan(&doc.DocumentID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s number %s already exists", apperrors.ErrConflict, doc.Kind, doc.Number)
		}
		return fmt.Errorf("failed to save %s %s: %w", doc.Kind, doc.Number, err)
	}
	return insertLineItems(ctx, q, doc)
}

// insertLineItems writes doc's line items with a batch and assigns their IDs.
func insertLineItems(ctx context.Context, q querier, doc *domain.Document) error {
	if len(doc.LineItems) == 0 {
		return nil
	}

	query := `
		INSERT INTO line_items (document_id, description, quantity, rate, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING line_item_id;
	`
	batch := &pgx.Batch{}
	for i := range doc.LineItems {
		doc.LineItems[i].DocumentID = doc.DocumentID
		li := mapping.ToModelLineItem(doc.LineItems[i])
		batch.Queue(query, li.DocumentID, li.Description, li.Quantity, li.Rate, li.Amount, li.SortOrder)
	}

	br := q.SendBatch(ctx, batch)
	for i := range doc.LineItems {
		if err := br.QueryRow().Scan(&doc.LineItems[i].LineItemID); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert line item %d of %s %s: %w", i+1, doc.Kind, doc.Number, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line item batch: %w", err)
	}
	return nil
}

// UpdateDocument writes doc if its version still matches and replaces its line items.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateDocument(ctx, tx, doc); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1`, doc.DocumentID); err != nil {
		return fmt.Errorf("failed to clear line items of %s %d: %w", doc.Kind, doc.DocumentID, err)
	}
	if err := insertLineItems(ctx, tx, doc); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// updateDocument performs the version-checked row update. Number and created_at are never written.
func (r *PgxDocumentRepository) updateDocument(ctx context.Context, tx pgx.Tx, doc *domain.Document) error {
	m := mapping.ToModelDocument(*doc)
	query := `
		UPDATE documents
		SET customer_id = $3, status = $4, issue_date = $5, due_date = $6, valid_until = $7,
			paid_date = $8, accepted_date = $9, notes = $10, terms = $11, tax_rate = $12,
			subtotal = $13, tax_amount = $14, total = $15, converted_invoice_id = $16,
			last_updated_at = $17, version = version + 1
		WHERE document_id = $1 AND kind = $2 AND version = $18
		RETURNING number, created_at, version;
	`
	err := tx.QueryRow(ctx, query,
		m.DocumentID, m.Kind, m.CustomerID, m.Status, m.IssueDate, m.DueDate, m.ValidUntil,
		m.PaidDate, m.AcceptedDate, m.Notes, m.Terms, m.TaxRate,
		m.Subtotal, m.TaxAmount, m.Total, m.ConvertedInvoiceID,
		m.LastUpdatedAt, m.Version,
	).Scan(&doc.Number, &doc.CreatedAt, &doc.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update %s %d: %w", doc.Kind, doc.DocumentID, err)
	}
	return r.staleOrMissing(ctx, fmt.Sprintf("%s %d", doc.Kind, doc.DocumentID),
		`SELECT version FROM documents WHERE document_id = $1 AND kind = $2`, doc.DocumentID, string(doc.Kind))
}

// SaveConvertedInvoice inserts invoice and links quote to it in one transaction.
func (r *PgxDocumentRepository) SaveConvertedInvoice(ctx context.Context, quote *domain.Document, invoice *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertDocument(ctx, tx, invoice); err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET converted_invoice_id = $2, last_updated_at = $3, version = version + 1
		WHERE document_id = $1 AND kind = 'quote' AND version = $4 AND converted_invoice_id IS NULL
		RETURNING version;
	`
	var version int64
	err = tx.QueryRow(ctx, query, quote.DocumentID, invoice.DocumentID, quote.LastUpdatedAt, quote.Version).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = r.staleOrMissing(ctx, fmt.Sprintf("quote %d", quote.DocumentID),
				`SELECT version FROM documents WHERE document_id = $1 AND kind = 'quote'`, quote.DocumentID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			return fmt.Errorf("%w: quote %s changed or was already converted", apperrors.ErrConflict, quote.Number)
		}
		return fmt.Errorf("failed to link quote %d: %w", quote.DocumentID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	invoiceID := invoice.DocumentID
	quote.ConvertedInvoiceID = &invoiceID
	quote.Version = version
	return nil
}

// DeleteDocument removes a document. Line items and payments cascade.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, kind domain.DocumentKind, documentID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1 AND kind = $2`, documentID, string(kind))
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, kind, documentID)
	}
	return nil
}
