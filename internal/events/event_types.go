package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/grupo99/customer-service/internal/domain"
)

// EventType enumerates the saga event discriminators published by this
// service. Values are part of the wire contract with the other services.
type EventType string

const (
	EventCustomerCreated   EventType = "CLIENTE_CRIADO"
	EventCustomerUpdated   EventType = "CLIENTE_ATUALIZADO"
	EventCustomerDeleted   EventType = "CLIENTE_DELETADO"
	EventVehicleAdded      EventType = "VEICULO_ADICIONADO"
	EventVehicleUpdated    EventType = "VEICULO_ATUALIZADO"
	EventVehicleDeleted    EventType = "VEICULO_DELETADO"
	EventVehicleRegistered EventType = "VEICULO_REGISTRADO"
)

// Event is one choreographed domain event. Timestamp stays zero until the
// first publish attempt; once set it never changes, so republishing the same
// event keeps the same deduplication key.
type Event struct {
	Type      EventType      `json:"tipo"`
	SubjectID uuid.UUID      `json:"-"`
	Fields    map[string]any `json:"-"`
	Timestamp time.Time      `json:"timestamp"`
}

// DeduplicationKey is deterministic for a given (subject id, timestamp) pair.
// It rides as message metadata so the broker or a consumer can collapse
// duplicate deliveries.
func (e *Event) DeduplicationKey() string {
	return e.SubjectID.String() + "-" + e.Timestamp.UTC().Format(time.RFC3339Nano)
}

// Body renders the self-describing payload: discriminator, timestamp and the
// event-specific fields flattened alongside them.
func (e *Event) Body() map[string]any {
	body := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		body[k] = v
	}
	body["tipo"] = string(e.Type)
	body["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339Nano)
	return body
}

// NewCustomerCreated announces a new customer.
func NewCustomerCreated(customer *domain.Customer) *Event {
	return customerEvent(EventCustomerCreated, customer)
}

// NewCustomerUpdated announces a customer update.
func NewCustomerUpdated(customer *domain.Customer) *Event {
	return customerEvent(EventCustomerUpdated, customer)
}

// NewCustomerDeleted announces a customer removal.
func NewCustomerDeleted(personID uuid.UUID) *Event {
	return &Event{
		Type:      EventCustomerDeleted,
		SubjectID: personID,
		Fields: map[string]any{
			"clienteId": personID.String(),
		},
	}
}

// NewVehicleAdded announces a vehicle attached to a customer.
func NewVehicleAdded(vehicle *domain.Vehicle) *Event {
	return vehicleEvent(EventVehicleAdded, vehicle)
}

// NewVehicleUpdated announces a vehicle update.
func NewVehicleUpdated(vehicle *domain.Vehicle) *Event {
	return vehicleEvent(EventVehicleUpdated, vehicle)
}

// NewVehicleDeleted announces a vehicle removal.
func NewVehicleDeleted(vehicleID uuid.UUID) *Event {
	return &Event{
		Type:      EventVehicleDeleted,
		SubjectID: vehicleID,
		Fields: map[string]any{
			"veiculoId": vehicleID.String(),
		},
	}
}

// NewVehicleRegistered announces that registration authority data was
// recorded for a vehicle.
func NewVehicleRegistered(vehicle *domain.Vehicle) *Event {
	event := vehicleEvent(EventVehicleRegistered, vehicle)
	event.Fields["renavam"] = vehicle.Renavam
	return event
}

func customerEvent(eventType EventType, customer *domain.Customer) *Event {
	return &Event{
		Type:      eventType,
		SubjectID: customer.PersonID,
		Fields: map[string]any{
			"pessoaId":           customer.PersonID.String(),
			"quantidadeVeiculos": customer.VehicleCount(),
		},
	}
}

func vehicleEvent(eventType EventType, vehicle *domain.Vehicle) *Event {
	return &Event{
		Type:      eventType,
		SubjectID: vehicle.ID,
		Fields: map[string]any{
			"veiculoId": vehicle.ID.String(),
			"clienteId": vehicle.CustomerID.String(),
			"placa":     vehicle.Plate,
			"marca":     vehicle.Brand,
			"modelo":    vehicle.Model,
			"ano":       vehicle.Year,
		},
	}
}
