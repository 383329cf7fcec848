package dto

import (
	"time"

	"github.com/grupo99/customer-service/internal/domain"
)

// CustomerRequest payload for creating/updating a customer.
type CustomerRequest struct {
	PersonID string `json:"pessoaId"`
}

// CustomerResponse is the outbound customer representation.
type CustomerResponse struct {
	PersonID  string            `json:"pessoaId"`
	Vehicles  []VehicleResponse `json:"veiculos"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CustomerFromDomain maps the domain model to the response shape.
func CustomerFromDomain(customer *domain.Customer) CustomerResponse {
	vehicles := make([]VehicleResponse, 0, len(customer.Vehicles))
	for i := range customer.Vehicles {
		vehicles = append(vehicles, VehicleFromDomain(&customer.Vehicles[i]))
	}
	return CustomerResponse{
		PersonID:  customer.PersonID.String(),
		Vehicles:  vehicles,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
