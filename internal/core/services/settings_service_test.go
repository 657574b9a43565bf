package services_test

import (
	"context"
	"testing"

	"github.com/juud-8/ContractorPro02-sub000/internal/adapters/database/memory"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SettingsServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	service portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.New()
	suite.Require().NoError(suite.store.EnsureSettings(suite.ctx, testSettings()))
	suite.service = services.NewSettingsService(suite.store)
}

func intPtr(v int) *int {
	return &v
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestUpdateSettings_KeepsCounters() {
	_, err := suite.store.NextSequence(suite.ctx, domain.KindInvoice)
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{
		InvoicePrefix:    strPtr("BILL"),
		DefaultTaxRate:   decPtr("7.25"),
		PaymentTermsDays: intPtr(14),
	})
	suite.Require().NoError(err)
	suite.Equal("BILL", updated.InvoicePrefix)
	suite.Equal("QUO", updated.QuotePrefix)
	suite.Equal("7.25", updated.DefaultTaxRate.String())
	suite.Equal(14, updated.PaymentTermsDays)
	suite.Equal(int64(2), updated.NextInvoiceNumber)
	suite.Equal(int64(1), updated.NextQuoteNumber)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_Rejections() {
	_, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{QuotePrefix: strPtr("  ")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{DefaultTaxRate: decPtr("-1")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{QuoteValidityDays: intPtr(-3)})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{QuotePrefix: strPtr("QUOTATION01")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{DefaultTaxRate: decPtr("7.12345")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	current, err := suite.service.GetSettings(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("QUO", current.QuotePrefix)
	suite.True(current.DefaultTaxRate.IsZero())
}

func (suite *SettingsServiceTestSuite) TestGetSettings_Uninitialised() {
	svc := services.NewSettingsService(memory.New())

	_, err := svc.GetSettings(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
