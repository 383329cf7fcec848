package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/grupo99/customer-service/internal/api/dto"
	"github.com/grupo99/customer-service/internal/service"
	apperrors "github.com/grupo99/customer-service/pkg/util"
)

// VehiclesHandler exposes the vehicle endpoints nested under a customer.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// Create handles POST /api/v1/clientes/:pessoaId/veiculos.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	personID, err := pathPersonID(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	vehicle, err := h.vehicles.Create(c.UserContext(), personID, vehicleInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.VehicleFromDomain(vehicle)})
}

// Get handles GET /api/v1/clientes/:pessoaId/veiculos/:veiculoId.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	personID, vehicleID, err := pathIDs(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	vehicle, err := h.vehicles.Get(c.UserContext(), personID, vehicleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.VehicleFromDomain(vehicle)})
}

// List handles GET /api/v1/clientes/:pessoaId/veiculos.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	personID, err := pathPersonID(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	vehicles, err := h.vehicles.List(c.UserContext(), personID)
	if err != nil {
		return err
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, dto.VehicleFromDomain(vehicle))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Update handles PUT /api/v1/clientes/:pessoaId/veiculos/:veiculoId.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	personID, vehicleID, err := pathIDs(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	vehicle, err := h.vehicles.Update(c.UserContext(), personID, vehicleID, vehicleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.VehicleFromDomain(vehicle)})
}

// Delete handles DELETE /api/v1/clientes/:pessoaId/veiculos/:veiculoId.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	personID, vehicleID, err := pathIDs(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	if err := h.vehicles.Delete(c.UserContext(), personID, vehicleID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Register handles POST /api/v1/clientes/:pessoaId/veiculos/:veiculoId/registro.
func (h *VehiclesHandler) Register(c *fiber.Ctx) error {
	personID, vehicleID, err := pathIDs(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	var req dto.VehicleRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	vehicle, err := h.vehicles.Register(c.UserContext(), personID, vehicleID, req.Renavam, req.Chassis)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.VehicleFromDomain(vehicle)})
}

func pathIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	personID, err := pathPersonID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	vehicleID, err := uuid.Parse(c.Params("veiculoId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.NewValidationError("veiculoId must be a valid uuid", nil)
	}
	return personID, vehicleID, nil
}

func vehicleInput(req dto.VehicleRequest) service.VehicleInput {
	return service.VehicleInput{
		Plate:   req.Plate,
		Renavam: req.Renavam,
		Brand:   req.Brand,
		Model:   req.Model,
		Year:    req.Year,
		Color:   req.Color,
		Chassis: req.Chassis,
	}
}
