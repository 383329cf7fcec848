package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrPlateRequired  = errors.New("vehicle plate must not be empty")
	ErrBrandRequired  = errors.New("vehicle brand must not be empty")
	ErrModelRequired  = errors.New("vehicle model must not be empty")
	ErrYearOutOfRange = errors.New("vehicle year must be between 1900 and 2100")
)

// Vehicle belongs to exactly one customer. Plate is unique across the fleet;
// renavam and chassi are filled when the vehicle registration is recorded.
type Vehicle struct {
	ID         uuid.UUID
	Plate      string
	Renavam    string
	Brand      string
	Model      string
	Year       int
	Color      string
	Chassis    string
	CustomerID uuid.UUID
}

// NewVehicle validates the required fields and builds a vehicle not yet bound
// to a customer.
func NewVehicle(plate, brand, model string, year int) (*Vehicle, error) {
	if strings.TrimSpace(plate) == "" {
		return nil, ErrPlateRequired
	}
	if strings.TrimSpace(brand) == "" {
		return nil, ErrBrandRequired
	}
	if strings.TrimSpace(model) == "" {
		return nil, ErrModelRequired
	}
	if year < 1900 || year > 2100 {
		return nil, ErrYearOutOfRange
	}
	return &Vehicle{Plate: plate, Brand: brand, Model: model, Year: year}, nil
}

// Registered reports whether the registration authority data was recorded.
func (v *Vehicle) Registered() bool {
	return v.Renavam != ""
}
