package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/grupo99/customer-service/internal/domain"
	"github.com/grupo99/customer-service/internal/events"
	"github.com/grupo99/customer-service/internal/persistence"
	"github.com/grupo99/customer-service/internal/repository"
	apperrors "github.com/grupo99/customer-service/pkg/util"
)

// CustomerService orchestrates customer use cases. Every successful mutation
// ends with an event publish; a publish failure fails the use case.
type CustomerService struct {
	customers repository.CustomerRepository
	publisher events.Publisher
	cache     *persistence.Redis
	logger    *zap.Logger
}

// CustomerDependencies bundles constructor arguments.
type CustomerDependencies struct {
	Customers repository.CustomerRepository
	Publisher events.Publisher
	Cache     *persistence.Redis
	Logger    *zap.Logger
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers: deps.Customers,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		logger:    deps.Logger,
	}
}

// Create registers a customer for a person that already exists in the People
// Service.
func (s *CustomerService) Create(ctx context.Context, personID uuid.UUID) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(personID)
	if err != nil {
		return nil, apperrors.NewBusinessError("pessoaId is required")
	}

	exists, err := s.customers.Exists(ctx, personID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewBusinessError("a customer already exists for this person")
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.publisher.Publish(ctx, events.NewCustomerCreated(customer)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("customer created", zap.String("pessoaId", personID.String()))
	return customer, nil
}

// Get returns a customer, serving from the cache when possible.
func (s *CustomerService) Get(ctx context.Context, personID uuid.UUID) (*domain.Customer, error) {
	if cached, ok := s.cache.GetCustomer(ctx, personID); ok {
		return cached, nil
	}

	customer, err := s.customers.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"pessoaId": personID.String()})
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.SetCustomer(ctx, customer)
	return customer, nil
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}

// Update marks a customer as updated. Personal data changes flow through the
// People Service, so the customer row itself only tracks the touch.
func (s *CustomerService) Update(ctx context.Context, personID uuid.UUID) (*domain.Customer, error) {
	if err := s.customers.Touch(ctx, personID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"pessoaId": personID.String()})
		}
		return nil, apperrors.MapError(err)
	}

	customer, err := s.customers.GetByID(ctx, personID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewCustomerUpdated(customer)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return customer, nil
}

// Delete removes a customer and, via the schema, its vehicles.
func (s *CustomerService) Delete(ctx context.Context, personID uuid.UUID) error {
	if err := s.customers.Delete(ctx, personID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", map[string]any{"pessoaId": personID.String()})
		}
		return apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewCustomerDeleted(personID)); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("customer deleted", zap.String("pessoaId", personID.String()))
	return nil
}
