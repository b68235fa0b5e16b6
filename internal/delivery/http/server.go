package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/delivery/http/handler"
	"github.com/place-resolver/internal/delivery/http/middleware"
	"github.com/place-resolver/internal/pkg/errors"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, доступность которой проверяется в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	placeHandler           *handler.PlaceHandler
	locationHandler        *handler.LocationHandler
	pickupPointHandler     *handler.PickupPointHandler
	personalizationHandler *handler.PersonalizationHandler

	healthChecks map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placeHandler *handler.PlaceHandler,
	locationHandler *handler.LocationHandler,
	pickupPointHandler *handler.PickupPointHandler,
	personalizationHandler *handler.PersonalizationHandler,
	healthChecks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Place Resolver",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                    app,
		config:                 cfg,
		logger:                 logger,
		placeHandler:           placeHandler,
		locationHandler:        locationHandler,
		pickupPointHandler:     pickupPointHandler,
		personalizationHandler: personalizationHandler,
		healthChecks:           healthChecks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.User())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Places
	places := api.Group("/places")
	places.Get("/search", s.placeHandler.Search)
	places.Get("/reverse", s.placeHandler.Reverse)
	places.Post("/:id/select", s.placeHandler.Select)
	places.Get("/:id/pickup-points", s.pickupPointHandler.List)
	places.Post("/:id/pickup-points", s.pickupPointHandler.Suggest)

	// Pickup points
	api.Post("/pickup-points/:id/confirm", s.pickupPointHandler.Confirm)
	api.Post("/pickup-points/:id/select", s.pickupPointHandler.Select)

	// Coordinate validation
	api.Post("/locations/validate", s.locationHandler.Validate)

	// Current user
	api.Get("/me/inferred-places", s.personalizationHandler.InferredPlaces)
}

// health - liveness и состояние зависимостей
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(fiber.Map, len(s.healthChecks))
	for name, checker := range s.healthChecks {
		if err := checker.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"time":         time.Now(),
		"dependencies": deps,
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New(errors.HTTPCode(code), e.Message, code)
		} else if ae, ok := errors.As(err); ok {
			code = ae.StatusCode
			appErr = ae
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": appErr,
		})
	}
}
