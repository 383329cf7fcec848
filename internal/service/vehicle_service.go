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

// VehicleInput carries the mutable vehicle fields from the HTTP layer.
type VehicleInput struct {
	Plate   string
	Renavam string
	Brand   string
	Model   string
	Year    int
	Color   string
	Chassis string
}

// VehicleService orchestrates vehicle use cases.
type VehicleService struct {
	vehicles  repository.VehicleRepository
	customers repository.CustomerRepository
	publisher events.Publisher
	cache     *persistence.Redis
	logger    *zap.Logger
}

// VehicleDependencies bundles constructor arguments.
type VehicleDependencies struct {
	Vehicles  repository.VehicleRepository
	Customers repository.CustomerRepository
	Publisher events.Publisher
	Cache     *persistence.Redis
	Logger    *zap.Logger
}

// NewVehicleService constructs the service.
func NewVehicleService(deps VehicleDependencies) *VehicleService {
	return &VehicleService{
		vehicles:  deps.Vehicles,
		customers: deps.Customers,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		logger:    deps.Logger,
	}
}

// Create attaches a new vehicle to an existing customer.
func (s *VehicleService) Create(ctx context.Context, personID uuid.UUID, input VehicleInput) (*domain.Vehicle, error) {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return nil, err
	}

	vehicle, err := domain.NewVehicle(input.Plate, input.Brand, input.Model, input.Year)
	if err != nil {
		return nil, apperrors.NewBusinessError(err.Error())
	}
	vehicle.Renavam = input.Renavam
	vehicle.Color = input.Color
	vehicle.Chassis = input.Chassis
	vehicle.CustomerID = personID

	taken, err := s.vehicles.ExistsByPlate(ctx, vehicle.Plate)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if taken {
		return nil, apperrors.NewBusinessError("a vehicle with this plate already exists")
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewVehicleAdded(vehicle)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("vehicle added",
		zap.String("veiculoId", vehicle.ID.String()),
		zap.String("pessoaId", personID.String()),
	)
	return vehicle, nil
}

// Get returns one vehicle of the given customer.
func (s *VehicleService) Get(ctx context.Context, personID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return nil, err
	}
	return s.getOwned(ctx, personID, vehicleID)
}

// List returns all vehicles of a customer.
func (s *VehicleService) List(ctx context.Context, personID uuid.UUID) ([]*domain.Vehicle, error) {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.ListByCustomer(ctx, personID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicles, nil
}

// Update replaces the mutable fields of a vehicle.
func (s *VehicleService) Update(ctx context.Context, personID, vehicleID uuid.UUID, input VehicleInput) (*domain.Vehicle, error) {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return nil, err
	}
	vehicle, err := s.getOwned(ctx, personID, vehicleID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NewVehicle(input.Plate, input.Brand, input.Model, input.Year); err != nil {
		return nil, apperrors.NewBusinessError(err.Error())
	}

	if vehicle.Plate != input.Plate {
		taken, err := s.vehicles.ExistsByPlate(ctx, input.Plate)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if taken {
			return nil, apperrors.NewBusinessError("a vehicle with this plate already exists")
		}
	}

	vehicle.Plate = input.Plate
	vehicle.Brand = input.Brand
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	if input.Renavam != "" {
		vehicle.Renavam = input.Renavam
	}
	if input.Color != "" {
		vehicle.Color = input.Color
	}
	if input.Chassis != "" {
		vehicle.Chassis = input.Chassis
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewVehicleUpdated(vehicle)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return vehicle, nil
}

// Delete removes a vehicle from a customer.
func (s *VehicleService) Delete(ctx context.Context, personID, vehicleID uuid.UUID) error {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return err
	}
	if _, err := s.getOwned(ctx, personID, vehicleID); err != nil {
		return err
	}

	if err := s.vehicles.Delete(ctx, vehicleID); err != nil {
		return apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewVehicleDeleted(vehicleID)); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("vehicle deleted", zap.String("veiculoId", vehicleID.String()))
	return nil
}

// Register records the registration authority data (renavam, chassi) for a
// vehicle and announces it to the mesh.
func (s *VehicleService) Register(ctx context.Context, personID, vehicleID uuid.UUID, renavam, chassis string) (*domain.Vehicle, error) {
	if err := s.requireCustomer(ctx, personID); err != nil {
		return nil, err
	}
	vehicle, err := s.getOwned(ctx, personID, vehicleID)
	if err != nil {
		return nil, err
	}

	if renavam == "" {
		return nil, apperrors.NewBusinessError("renavam is required")
	}
	vehicle.Renavam = renavam
	if chassis != "" {
		vehicle.Chassis = chassis
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.InvalidateCustomer(ctx, personID)

	if err := s.publisher.Publish(ctx, events.NewVehicleRegistered(vehicle)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("vehicle registered", zap.String("veiculoId", vehicleID.String()))
	return vehicle, nil
}

func (s *VehicleService) requireCustomer(ctx context.Context, personID uuid.UUID) error {
	exists, err := s.customers.Exists(ctx, personID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		return apperrors.NewNotFound("customer", map[string]any{"pessoaId": personID.String()})
	}
	return nil
}

func (s *VehicleService) getOwned(ctx context.Context, personID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("vehicle", map[string]any{"veiculoId": vehicleID.String()})
		}
		return nil, apperrors.MapError(err)
	}
	if vehicle.CustomerID != personID {
		return nil, apperrors.NewNotFound("vehicle", map[string]any{"veiculoId": vehicleID.String()})
	}
	return vehicle, nil
}
