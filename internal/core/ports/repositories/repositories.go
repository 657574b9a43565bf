package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the Postgres and the in-memory adapter build one.
type RepositoryProvider struct {
	CustomerRepo CustomerRepositoryFacade
	DocumentRepo DocumentRepositoryFacade
	PaymentRepo  PaymentRepositoryFacade
	SettingsRepo SettingsRepositoryFacade
}
