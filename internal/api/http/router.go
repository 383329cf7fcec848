package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupo99/customer-service/internal/api/http/handlers"
	"github.com/grupo99/customer-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Customers      *handlers.CustomersHandler
	Vehicles       *handlers.VehiclesHandler
	Authentication *auth.AuthenticationFilter
	Authorization  *auth.AuthorizationFilter
}

// RegisterRoutes wires HTTP routes. The authentication filter always runs
// before the authorization filter; health probes stay outside the chain.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.Authentication.Handle, cfg.Authorization.Handle)

	clientes := api.Group("/clientes")
	clientes.Post("", cfg.Customers.Create)
	clientes.Get("", cfg.Customers.List)
	clientes.Get("/:pessoaId", cfg.Customers.Get)
	clientes.Put("/:pessoaId", cfg.Customers.Update)
	clientes.Delete("/:pessoaId", cfg.Customers.Delete)

	veiculos := clientes.Group("/:pessoaId/veiculos")
	veiculos.Post("", cfg.Vehicles.Create)
	veiculos.Get("", cfg.Vehicles.List)
	veiculos.Get("/:veiculoId", cfg.Vehicles.Get)
	veiculos.Put("/:veiculoId", cfg.Vehicles.Update)
	veiculos.Delete("/:veiculoId", cfg.Vehicles.Delete)
	veiculos.Post("/:veiculoId/registro", cfg.Vehicles.Register)
}
