package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNilPersonID rejects customers created without a People Service identity.
var ErrNilPersonID = errors.New("person id must not be nil")

// Customer represents a customer of the workshop. Personal data (name,
// document, contacts) lives in the People Service; this service only keys the
// customer by its person id and owns the vehicle relationship.
type Customer struct {
	PersonID  uuid.UUID
	Vehicles  []Vehicle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer for a person already registered in the People
// Service.
func NewCustomer(personID uuid.UUID) (*Customer, error) {
	if personID == uuid.Nil {
		return nil, ErrNilPersonID
	}
	return &Customer{PersonID: personID}, nil
}

// VehicleCount is the denormalized count carried on customer events.
func (c *Customer) VehicleCount() int {
	return len(c.Vehicles)
}
