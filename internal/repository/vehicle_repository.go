package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grupo99/customer-service/internal/domain"
)

// VehicleRepository defines persistence access for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, personID uuid.UUID) ([]*domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByPlate(ctx context.Context, plate string) (bool, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository returns a Postgres-backed implementation.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, plate, COALESCE(renavam, ''), brand, model, year,
               COALESCE(color, ''), COALESCE(chassis, ''), customer_id`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (plate, renavam, brand, model, year, color, chassis, customer_id)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		vehicle.Plate,
		vehicle.Renavam,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Chassis,
		vehicle.CustomerID,
	).Scan(&vehicle.ID)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles
        SET plate=$1, renavam=NULLIF($2, ''), brand=$3, model=$4, year=$5,
            color=NULLIF($6, ''), chassis=NULLIF($7, '')
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		vehicle.Plate,
		vehicle.Renavam,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Chassis,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id=$1`

	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Plate,
		&vehicle.Renavam,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Color,
		&vehicle.Chassis,
		&vehicle.CustomerID,
	); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, personID uuid.UUID) ([]*domain.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE customer_id=$1 ORDER BY plate`

	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.Plate,
			&vehicle.Renavam,
			&vehicle.Brand,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.Color,
			&vehicle.Chassis,
			&vehicle.CustomerID,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM vehicles WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) ExistsByPlate(ctx context.Context, plate string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM vehicles WHERE plate=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, plate).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
