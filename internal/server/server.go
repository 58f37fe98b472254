package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"productapi/internal/authz"
	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/dto"
	"productapi/internal/events"
	"productapi/internal/handlers"
	"productapi/internal/metrics"
	"productapi/internal/middleware"
	"productapi/internal/services"
)

const healthTimeout = 2 * time.Second

// Deps are the collaborators New wires into the HTTP app. Publisher and Metrics may be nil.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Store     *Store
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

// New builds the Fiber app with every route mounted.
func New(d Deps) (*fiber.App, error) {
	az, err := authz.New()
	if err != nil {
		return nil, err
	}

	validate := dto.NewValidator()
	productService := services.NewProductService(d.Store.Products, az, d.Publisher, d.Metrics, d.Log)
	authService := services.NewAuthService(d.Store.Users, d.Config.JWT.Secret, d.Config.JWT.TTL, d.Log)

	productHandler := handlers.NewProductHandler(productService, validate, d.Log)
	authHandler := handlers.NewAuthHandler(authService, validate, d.Log)

	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(d.Log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log, d.Metrics))
	app.Use(recover.New())

	app.Get("/health", healthHandler(d.Store))
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	authRequired := middleware.AuthRequired(authService, d.Log)
	limiter := middleware.RateLimit(d.Config.Auth.RateMax, d.Config.Auth.RateWindow)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired, limiter)
	productHandler.RegisterRoutes(api, authRequired)

	return app, nil
}

func healthHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}
		if store.DB == nil {
			status["database"] = "memory"
			return c.JSON(status)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := database.Ping(ctx, store.DB); err != nil {
			status["status"] = "unhealthy"
			status["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "connected"
		return c.JSON(status)
	}
}

// errorHandler renders errors that escaped a handler, including unknown routes and recovered
// panics.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
