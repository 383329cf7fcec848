package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/grupo99/customer-service/internal/api/http"
	"github.com/grupo99/customer-service/internal/api/http/handlers"
	"github.com/grupo99/customer-service/internal/auth"
	"github.com/grupo99/customer-service/internal/config"
	"github.com/grupo99/customer-service/internal/events"
	"github.com/grupo99/customer-service/internal/observability"
	"github.com/grupo99/customer-service/internal/persistence"
	"github.com/grupo99/customer-service/internal/repository"
	"github.com/grupo99/customer-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	publisher, err := newPublisher(cfg.Events, logger)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)

	customerService := service.NewCustomerService(service.CustomerDependencies{
		Customers: customerRepo,
		Publisher: publisher,
		Cache:     redis,
		Logger:    logger,
	})
	vehicleService := service.NewVehicleService(service.VehicleDependencies{
		Vehicles:  vehicleRepo,
		Customers: customerRepo,
		Publisher: publisher,
		Cache:     redis,
		Logger:    logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authentication := auth.NewAuthenticationFilter(tokens, logger)
	authorization := auth.NewAuthorizationFilter(tokens, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Customers:      handlers.NewCustomersHandler(customerService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Authentication: authentication,
		Authorization:  authorization,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newPublisher selects the queue-backed publisher when a NATS URL is
// configured, falling back to the in-process publisher for local runs.
func newPublisher(cfg config.EventsConfig, logger *zap.Logger) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Warn("EVENTS_NATS_URL not provided; events stay in-process")
		return events.NewInMemoryPublisher(), nil
	}
	return events.NewQueuePublisher(cfg, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
