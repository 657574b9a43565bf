package services

import (
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/platform/config"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/numbering"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	policy, err := numbering.ParsePolicy(cfg.NumberingPolicy)
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.CustomerRepo,
		repos.SettingsRepo,
		WithNumberGenerator(numbering.NewGenerator(policy)),
		WithNumberRetryAttempts(cfg.NumberRetryAttempts),
		WithPaymentLedger(repos.PaymentRepo),
	)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.DocumentRepo)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade = (*customerService)(nil)
	_ portssvc.DocumentSvcFacade = (*documentService)(nil)
	_ portssvc.PaymentSvcFacade  = (*paymentService)(nil)
	_ portssvc.SettingsSvcFacade = (*settingsService)(nil)
)
