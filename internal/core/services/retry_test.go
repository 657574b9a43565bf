package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RetryTestSuite struct {
	suite.Suite
	ctx          context.Context
	documentRepo *MockDocumentRepository
	paymentRepo  *MockPaymentRepository
	settingsRepo *MockSettingsRepository
	customerRepo *MockCustomerRepository
	documents    portssvc.DocumentSvcFacade
	payments     portssvc.PaymentSvcFacade
}

func (suite *RetryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.documentRepo = new(MockDocumentRepository)
	suite.paymentRepo = new(MockPaymentRepository)
	suite.settingsRepo = new(MockSettingsRepository)
	suite.customerRepo = new(MockCustomerRepository)

	clock := func() time.Time { return testClock }
	suite.documents = services.NewDocumentService(suite.documentRepo, suite.customerRepo, suite.settingsRepo, services.WithDocumentClock(clock))
	suite.payments = services.NewPaymentService(suite.paymentRepo, suite.documentRepo, services.WithPaymentClock(clock))
}

func sentInvoice() *domain.Document {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Document{
		DocumentID:  42,
		Kind:        domain.KindInvoice,
		Number:      "INV-042",
		CustomerID:  1,
		Status:      domain.StatusSent,
		DueDate:     &due,
		Total:       dec("100.00"),
		AuditFields: domain.AuditFields{Version: 2},
	}
}

func (suite *RetryTestSuite) expectSettings() {
	settings := testSettings()
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(&settings, nil)
	suite.customerRepo.On("FindCustomerByID", mock.Anything, int64(1)).Return(&domain.Customer{CustomerID: 1}, nil)
}

// --- Test Cases ---

func (suite *RetryTestSuite) TestSettleInvoice_RetriesAfterConflict() {
	suite.paymentRepo.On("SavePayment", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
	suite.paymentRepo.On("SumPaymentsByInvoice", mock.Anything, int64(42)).Return(dec("100"), nil).Twice()
	for i := 0; i < 3; i++ {
		suite.documentRepo.On("FindDocumentByID", mock.Anything, domain.KindInvoice, int64(42)).Return(sentInvoice(), nil).Once()
	}
	suite.documentRepo.On("UpdateDocument", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(apperrors.ErrConflict).Once()
	suite.documentRepo.On("UpdateDocument", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Status == domain.StatusPaid && d.PaidDate != nil
	})).Return(nil).Once()

	payment, created, err := suite.payments.RecordPayment(suite.ctx, 42, dto.RecordPaymentRequest{Amount: dec("100")})

	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(domain.PaymentOther, payment.Method)
	suite.documentRepo.AssertExpectations(suite.T())
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *RetryTestSuite) TestSettleInvoice_GivesUp() {
	suite.paymentRepo.On("SavePayment", mock.Anything, mock.Anything).Return(nil).Once()
	suite.paymentRepo.On("SumPaymentsByInvoice", mock.Anything, int64(42)).Return(dec("150"), nil)
	for i := 0; i < 4; i++ {
		suite.documentRepo.On("FindDocumentByID", mock.Anything, domain.KindInvoice, int64(42)).Return(sentInvoice(), nil).Once()
	}
	suite.documentRepo.On("UpdateDocument", mock.Anything, mock.Anything).Return(apperrors.ErrConflict)

	_, _, err := suite.payments.RecordPayment(suite.ctx, 42, dto.RecordPaymentRequest{Amount: dec("150")})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.documentRepo.AssertNumberOfCalls(suite.T(), "UpdateDocument", 3)
}

func (suite *RetryTestSuite) TestCreateDocument_SequenceFailure() {
	suite.expectSettings()
	dbErr := errors.New("connection reset")
	suite.settingsRepo.On("NextSequence", mock.Anything, domain.KindInvoice).Return(int64(0), dbErr).Once()

	_, err := suite.documents.CreateDocument(suite.ctx, domain.KindInvoice, dto.CreateDocumentRequest{CustomerID: 1})

	suite.ErrorIs(err, dbErr)
	suite.NotErrorIs(err, apperrors.ErrConflict)
	suite.documentRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *RetryTestSuite) TestCreateDocument_CounterSkipsBurnedNumber() {
	suite.expectSettings()
	suite.settingsRepo.On("NextSequence", mock.Anything, domain.KindInvoice).Return(int64(7), nil).Once()
	suite.settingsRepo.On("NextSequence", mock.Anything, domain.KindInvoice).Return(int64(8), nil).Once()
	suite.documentRepo.On("SaveDocument", mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()
	suite.documentRepo.On("SaveDocument", mock.Anything, mock.Anything).Return(nil).Once()

	doc, err := suite.documents.CreateDocument(suite.ctx, domain.KindInvoice, dto.CreateDocumentRequest{CustomerID: 1})

	suite.Require().NoError(err)
	suite.Equal("INV-008", doc.Number)
	suite.settingsRepo.AssertExpectations(suite.T())
}

func (suite *RetryTestSuite) TestCreateDocument_StorageFailureIsNotRetried() {
	suite.expectSettings()
	suite.settingsRepo.On("NextSequence", mock.Anything, domain.KindQuote).Return(int64(1), nil).Once()
	suite.documentRepo.On("SaveDocument", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := suite.documents.CreateDocument(suite.ctx, domain.KindQuote, dto.CreateDocumentRequest{CustomerID: 1})

	suite.Error(err)
	suite.settingsRepo.AssertNumberOfCalls(suite.T(), "NextSequence", 1)
}

func (suite *RetryTestSuite) TestConvertQuote_LosesRaceToConcurrentConversion() {
	suite.expectSettings()
	quote := func(converted *int64) *domain.Document {
		return &domain.Document{
			DocumentID:         5,
			Kind:               domain.KindQuote,
			Number:             "QUO-005",
			CustomerID:         1,
			Status:             domain.StatusAccepted,
			ConvertedInvoiceID: converted,
			AuditFields:        domain.AuditFields{Version: 3},
		}
	}
	suite.documentRepo.On("FindDocumentByID", mock.Anything, domain.KindQuote, int64(5)).Return(quote(nil), nil).Once()
	suite.documentRepo.On("FindDocumentByID", mock.Anything, domain.KindQuote, int64(5)).Return(quote(int64Ptr(77)), nil).Once()
	suite.settingsRepo.On("NextSequence", mock.Anything, domain.KindInvoice).Return(int64(3), nil).Once()
	suite.documentRepo.On("SaveConvertedInvoice", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.documents.ConvertQuoteToInvoice(suite.ctx, 5)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.settingsRepo.AssertNumberOfCalls(suite.T(), "NextSequence", 1)
	suite.documentRepo.AssertExpectations(suite.T())
}

func (suite *RetryTestSuite) TestSweepExpired_SkipsConcurrentlyChangedDocuments() {
	cutoff := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	first, second := sentInvoice(), sentInvoice()
	first.DocumentID, second.DocumentID = 1, 2
	suite.documentRepo.On("FindLapsedDocuments", mock.Anything, domain.KindInvoice, domain.StatusSent, cutoff).
		Return([]domain.Document{*first, *second}, nil).Once()
	suite.documentRepo.On("FindLapsedDocuments", mock.Anything, domain.KindQuote, domain.StatusSent, cutoff).
		Return([]domain.Document{}, nil).Once()
	suite.documentRepo.On("UpdateDocument", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool { return d.DocumentID == 1 })).
		Return(apperrors.ErrConflict).Once()
	suite.documentRepo.On("UpdateDocument", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.DocumentID == 2 && d.Status == domain.StatusOverdue
	})).Return(nil).Once()

	result, err := suite.documents.SweepExpired(suite.ctx, testClock)

	suite.Require().NoError(err)
	suite.Equal(1, result.Overdue)
	suite.Equal(0, result.Expired)
	suite.documentRepo.AssertExpectations(suite.T())
}

func (suite *RetryTestSuite) TestSweepExpired_ReportsStorageFailure() {
	suite.documentRepo.On("FindLapsedDocuments", mock.Anything, domain.KindInvoice, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout")).Once()
	suite.documentRepo.On("FindLapsedDocuments", mock.Anything, domain.KindQuote, mock.Anything, mock.Anything).
		Return([]domain.Document{}, nil).Once()

	result, err := suite.documents.SweepExpired(suite.ctx, testClock)

	suite.Error(err)
	suite.Require().NotNil(result)
	suite.Equal(0, result.Overdue)
}

// --- Run Test Suite ---
func TestRetry(t *testing.T) {
	suite.Run(t, new(RetryTestSuite))
}
