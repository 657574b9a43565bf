package services_test

import (
	"context"
	"testing"

	"github.com/juud-8/ContractorPro02-sub000/internal/adapters/database/memory"
	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.service = services.NewCustomerService(memory.New())
}

func strPtr(s string) *string {
	return &s
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateAndGetCustomer() {
	created, err := suite.service.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{
		Name:  "  Jane Smith ",
		Email: "jane@example.test",
	})
	suite.Require().NoError(err)
	suite.Equal("Jane Smith", created.Name)
	suite.Equal(int64(1), created.Version)
	suite.NotZero(created.CustomerID)

	found, err := suite.service.GetCustomer(suite.ctx, created.CustomerID)
	suite.Require().NoError(err)
	suite.Equal(created.Email, found.Email)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_BlankName() {
	_, err := suite.service.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "   "})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_PartialUpdate() {
	created, err := suite.service.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "Jane", Phone: "555-0100"})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateCustomer(suite.ctx, created.CustomerID, dto.UpdateCustomerRequest{Company: strPtr("Smith & Co")})
	suite.Require().NoError(err)
	suite.Equal("Smith & Co", updated.Company)
	suite.Equal("555-0100", updated.Phone)
	suite.Equal(int64(2), updated.Version)

	_, err = suite.service.UpdateCustomer(suite.ctx, created.CustomerID, dto.UpdateCustomerRequest{Name: strPtr(" ")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateCustomer(suite.ctx, 404, dto.UpdateCustomerRequest{Name: strPtr("x")})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_Pages() {
	for _, name := range []string{"A", "B", "C"} {
		_, err := suite.service.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: name})
		suite.Require().NoError(err)
	}

	page, err := suite.service.ListCustomers(suite.ctx, dto.ListCustomersParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(page.Customers, 2)
	suite.NotEmpty(page.NextToken)

	rest, err := suite.service.ListCustomers(suite.ctx, dto.ListCustomersParams{Limit: 2, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Len(rest.Customers, 1)
	suite.Empty(rest.NextToken)

	_, err = suite.service.ListCustomers(suite.ctx, dto.ListCustomersParams{NextToken: "not-a-token"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer() {
	created, err := suite.service.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "Gone Soon"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteCustomer(suite.ctx, created.CustomerID))
	_, err = suite.service.GetCustomer(suite.ctx, created.CustomerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.service.DeleteCustomer(suite.ctx, created.CustomerID), apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
