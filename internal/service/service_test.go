package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/grupo99/customer-service/internal/domain"
	"github.com/grupo99/customer-service/internal/events"
)

// In-memory repository fakes shared by the service tests.

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*domain.Customer
	failWith  error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.customers[customer.PersonID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, personID uuid.UUID) (*domain.Customer, error) {
	customer, ok := r.customers[personID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return customer, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		out = append(out, customer)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Touch(_ context.Context, personID uuid.UUID) error {
	if _, ok := r.customers[personID]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, personID uuid.UUID) error {
	if _, ok := r.customers[personID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.customers, personID)
	return nil
}

func (r *fakeCustomerRepo) Exists(_ context.Context, personID uuid.UUID) (bool, error) {
	_, ok := r.customers[personID]
	return ok, nil
}

type fakeVehicleRepo struct {
	vehicles map[uuid.UUID]*domain.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*domain.Vehicle)}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) error {
	vehicle.ID = uuid.New()
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) error {
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *vehicle
	return &copied, nil
}

func (r *fakeVehicleRepo) ListByCustomer(_ context.Context, personID uuid.UUID) ([]*domain.Vehicle, error) {
	var out []*domain.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.CustomerID == personID {
			copied := *vehicle
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.vehicles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) ExistsByPlate(_ context.Context, plate string) (bool, error) {
	for _, vehicle := range r.vehicles {
		if vehicle.Plate == plate {
			return true, nil
		}
	}
	return false, nil
}

// failingPublisher simulates a broken queue.
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, *events.Event) error {
	return &events.PublishError{Type: events.EventCustomerCreated, Err: errors.New("queue unreachable")}
}

func nopLogger() *zap.Logger { return zap.NewNop() }
