package dto

import "github.com/grupo99/customer-service/internal/domain"

// VehicleRequest payload for creating/updating a vehicle.
type VehicleRequest struct {
	Plate   string `json:"placa"`
	Renavam string `json:"renavam,omitempty"`
	Brand   string `json:"marca"`
	Model   string `json:"modelo"`
	Year    int    `json:"ano"`
	Color   string `json:"cor,omitempty"`
	Chassis string `json:"chassi,omitempty"`
}

// VehicleRegistrationRequest payload for recording registration data.
type VehicleRegistrationRequest struct {
	Renavam string `json:"renavam"`
	Chassis string `json:"chassi,omitempty"`
}

// VehicleResponse is the outbound vehicle representation.
type VehicleResponse struct {
	ID      string `json:"id"`
	Plate   string `json:"placa"`
	Renavam string `json:"renavam,omitempty"`
	Brand   string `json:"marca"`
	Model   string `json:"modelo"`
	Year    int    `json:"ano"`
	Color   string `json:"cor,omitempty"`
	Chassis string `json:"chassi,omitempty"`
}

// VehicleFromDomain maps the domain model to the response shape.
func VehicleFromDomain(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:      vehicle.ID.String(),
		Plate:   vehicle.Plate,
		Renavam: vehicle.Renavam,
		Brand:   vehicle.Brand,
		Model:   vehicle.Model,
		Year:    vehicle.Year,
		Color:   vehicle.Color,
		Chassis: vehicle.Chassis,
	}
}
