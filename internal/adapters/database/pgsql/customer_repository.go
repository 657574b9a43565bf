package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/mapping"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
)

const customerColumns = `customer_id, name, email, phone, company, address, notes, created_at, last_updated_at, version`

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Company,
		&m.Address,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.Version,
	)
	return m, err
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		return nil, notFoundOr(err, "find customer %d", customerID)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

// ListCustomers returns customers newest first using keyset pagination.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, after *pagination.Cursor) ([]domain.Customer, error) {
	var rows pgx.Rows
	var err error
	if after != nil {
		query := `SELECT ` + customerColumns + ` FROM customers
			WHERE (created_at, customer_id) < ($1, $2)
			ORDER BY created_at DESC, customer_id DESC
			LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, after.CreatedAt, after.ID, limit)
	} else {
		query := `SELECT ` + customerColumns + ` FROM customers
			ORDER BY created_at DESC, customer_id DESC
			LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, limit)
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

// SaveCustomer inserts a new customer and assigns its ID.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Version == 0 {
		customer.Version = 1
	}
	m := mapping.ToModelCustomer(*customer)
	query := `
		INSERT INTO customers (name, email, phone, company, address, notes, created_at, last_updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING customer_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Name, m.Email, m.Phone, m.Company, m.Address, m.Notes,
		m.CreatedAt, m.LastUpdatedAt, m.Version,
	).Scan(&customer.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to save customer %q: %w", m.Name, err)
	}
	return nil
}

// UpdateCustomer writes the customer if its version still matches and bumps the version.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	m := mapping.ToModelCustomer(*customer)
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, company = $5, address = $6, notes = $7,
			last_updated_at = $8, version = version + 1
		WHERE customer_id = $1 AND version = $9
		RETURNING created_at, version;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.CustomerID, m.Name, m.Email, m.Phone, m.Company, m.Address, m.Notes,
		m.LastUpdatedAt, m.Version,
	).Scan(&customer.CreatedAt, &customer.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update customer %d: %w", m.CustomerID, err)
	}
	return r.staleOrMissing(ctx, fmt.Sprintf("customer %d", m.CustomerID),
		`SELECT version FROM customers WHERE customer_id = $1`, m.CustomerID)
}

// DeleteCustomer removes a customer. Documents keep their customer_id.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	return nil
}
