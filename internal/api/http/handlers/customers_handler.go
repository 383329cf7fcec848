package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/grupo99/customer-service/internal/api/dto"
	"github.com/grupo99/customer-service/internal/auth"
	"github.com/grupo99/customer-service/internal/service"
	apperrors "github.com/grupo99/customer-service/pkg/util"
)

// CustomersHandler exposes the customer CRUD endpoints.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// Create handles POST /api/v1/clientes.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return apperrors.NewValidationError("pessoaId must be a valid uuid", nil)
	}

	customer, err := h.customers.Create(c.UserContext(), personID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CustomerFromDomain(customer)})
}

// Get handles GET /api/v1/clientes/:pessoaId.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	personID, err := pathPersonID(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	customer, err := h.customers.Get(c.UserContext(), personID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CustomerFromDomain(customer)})
}

// List handles GET /api/v1/clientes.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, dto.CustomerFromDomain(customer))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Update handles PUT /api/v1/clientes/:pessoaId.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	personID, err := pathPersonID(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	customer, err := h.customers.Update(c.UserContext(), personID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CustomerFromDomain(customer)})
}

// Delete handles DELETE /api/v1/clientes/:pessoaId.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	personID, err := pathPersonID(c)
	if err != nil {
		return err
	}
	if err := requireOwnership(c, personID); err != nil {
		return err
	}

	if err := h.customers.Delete(c.UserContext(), personID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func pathPersonID(c *fiber.Ctx) (uuid.UUID, error) {
	personID, err := uuid.Parse(c.Params("pessoaId"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("pessoaId must be a valid uuid", nil)
	}
	return personID, nil
}

// requireOwnership enforces that a CLIENTE caller only reaches its own
// record, using the attributes the authorization filter resolved instead of
// re-parsing the token.
func requireOwnership(c *fiber.Ctx, personID uuid.UUID) error {
	if auth.CallerProfile(c) != auth.ProfileCustomer {
		return nil
	}
	if auth.CallerPersonID(c) != personID.String() {
		return apperrors.NewForbidden("customers may only access their own data")
	}
	return nil
}
