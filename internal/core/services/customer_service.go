package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portsrepo "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/repositories"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils/pagination"
)

// customerService manages the customer records documents point at.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService:  newBaseService(),
		customerRepo: customerRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	now := s.now()
	customer := &domain.Customer{
		Name:    name,
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Address: req.Address,
		Notes:   req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
			Version:       1,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer")
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.Int64("customer_id", customer.CustomerID))
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	var after *pagination.Cursor
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = &cursor
	}

	// one extra row tells us whether another page exists
	customers, err := s.customerRepo.ListCustomers(ctx, limit+1, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	resp := &dto.ListCustomersResponse{}
	if len(customers) > limit {
		customers = customers[:limit]
		last := customers[len(customers)-1]
		resp.NextToken = pagination.EncodeToken(last.CreatedAt, last.CustomerID)
	}
	resp.Customers = dto.ToListCustomerResponse(customers)
	return resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: customer name must not be blank", apperrors.ErrValidation)
		}
		customer.Name = name
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		customer.Company = strings.TrimSpace(*req.Company)
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	customer.LastUpdatedAt = s.now()

	if err := s.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Customer update rejected", slog.Int64("customer_id", customerID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update customer", slog.Int64("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	s.LogInfo(ctx, "Customer updated", slog.Int64("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer removes the customer only. Invoices and quotes keep their customer id.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete customer", slog.Int64("customer_id", customerID))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}
	s.LogInfo(ctx, "Customer deleted", slog.Int64("customer_id", customerID))
	return nil
}
