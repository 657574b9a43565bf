package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/billing"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService:  newBaseService(),
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		settings.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.InvoicePrefix != nil {
		prefix := strings.TrimSpace(*req.InvoicePrefix)
		if err := validatePrefix("invoice", prefix); err != nil {
			return nil, err
		}
		settings.InvoicePrefix = prefix
	}
	if req.QuotePrefix != nil {
		prefix := strings.TrimSpace(*req.QuotePrefix)
		if err := validatePrefix("quote", prefix); err != nil {
			return nil, err
		}
		settings.QuotePrefix = prefix
	}
	if req.DefaultTaxRate != nil {
		if err := billing.ValidateTaxRate(*req.DefaultTaxRate); err != nil {
			return nil, err
		}
		settings.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.PaymentTermsDays != nil {
		if *req.PaymentTermsDays < 0 {
			return nil, fmt.Errorf("%w: payment terms must not be negative", apperrors.ErrValidation)
		}
		settings.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.QuoteValidityDays != nil {
		if *req.QuoteValidityDays < 0 {
			return nil, fmt.Errorf("%w: quote validity must not be negative", apperrors.ErrValidation)
		}
		settings.QuoteValidityDays = *req.QuoteValidityDays
	}
	settings.LastUpdatedAt = s.now()

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to update settings")
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	s.LogInfo(ctx, "Settings updated")

	// reload so counters reflect any numbers issued meanwhile
	return s.GetSettings(ctx)
}

func validatePrefix(kind, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("%w: %s prefix must not be empty", apperrors.ErrValidation, kind)
	}
	if utf8.RuneCountInString(prefix) > domain.MaxPrefixLength {
		return fmt.Errorf("%w: %s prefix must be at most %d characters", apperrors.ErrValidation, kind, domain.MaxPrefixLength)
	}
	return nil
}
