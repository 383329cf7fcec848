package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grupo99/customer-service/internal/domain"
)

// CustomerRepository defines persistence access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, personID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Touch(ctx context.Context, personID uuid.UUID) error
	Delete(ctx context.Context, personID uuid.UUID) error
	Exists(ctx context.Context, personID uuid.UUID) (bool, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (person_id)
        VALUES ($1)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, customer.PersonID).
		Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) GetByID(ctx context.Context, personID uuid.UUID) (*domain.Customer, error) {
	const query = `
        SELECT person_id, created_at, updated_at
        FROM customers WHERE person_id=$1`

	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, personID).Scan(
		&customer.PersonID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}

	vehicles, err := r.vehiclesFor(ctx, personID)
	if err != nil {
		return nil, err
	}
	customer.Vehicles = vehicles
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	const query = `
        SELECT person_id, created_at, updated_at
        FROM customers ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.PersonID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Touch(ctx context.Context, personID uuid.UUID) error {
	const query = `UPDATE customers SET updated_at=NOW() WHERE person_id=$1`

	cmd, err := r.pool.Exec(ctx, query, personID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, personID uuid.UUID) error {
	// Vehicles cascade via the FK constraint.
	const query = `DELETE FROM customers WHERE person_id=$1`

	cmd, err := r.pool.Exec(ctx, query, personID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Exists(ctx context.Context, personID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM customers WHERE person_id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, personID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) vehiclesFor(ctx context.Context, personID uuid.UUID) ([]domain.Vehicle, error) {
	const query = `
        SELECT id, plate, COALESCE(renavam, ''), brand, model, year,
               COALESCE(color, ''), COALESCE(chassis, ''), customer_id
        FROM vehicles WHERE customer_id=$1 ORDER BY plate`

	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Plate,
			&v.Renavam,
			&v.Brand,
			&v.Model,
			&v.Year,
			&v.Color,
			&v.Chassis,
			&v.CustomerID,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
