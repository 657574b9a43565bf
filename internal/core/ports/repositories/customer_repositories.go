package repositories

import (
	"context"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer. Missing customers return apperrors.ErrNotFound.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)

	// ListCustomers returns up to limit customers ordered newest first, starting after cursor when set.
	ListCustomers(ctx context.Context, limit int, after *pagination.Cursor) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer and assigns its ID.
	SaveCustomer(ctx context.Context, customer *domain.Customer) error

	// UpdateCustomer writes customer iff the stored version equals customer.Version,
	// then bumps the version. A stale version returns apperrors.ErrConflict.
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error

	// DeleteCustomer removes a customer. Documents referencing it are left in place.
	DeleteCustomer(ctx context.Context, customerID int64) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
