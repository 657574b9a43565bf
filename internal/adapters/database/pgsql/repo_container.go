package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the Postgres-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: newPgxCustomerRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
