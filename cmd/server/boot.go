package main

import (
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/middleware"
)

func checkRequired(cfg *config.Config) error {
	var errs []error
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		errs = append(errs, errors.New("DB_PASSWORD is required for postgres"))
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set"))
	}
	return errors.Join(errs...)
}

// openPublisher connects to RabbitMQ when AMQP_URL is set. Without a
// broker the server still runs and events are dropped.
func openPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, domain events disabled")
		return events.Noop{}
	}
	p, err := events.Dial(cfg.AMQPURL)
	if err != nil {
		slog.Error("event broker unavailable, domain events disabled", "error", err)
		return events.Noop{}
	}
	slog.Info("event publisher connected", "exchange", events.Exchange)
	return p
}

func initSentry(cfg *config.Config) bool {
	if cfg.SentryDSN == "" {
		return false
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      cfg.AppEnv,
	}); err != nil {
		slog.Error("sentry init failed", "error", err)
		return false
	}
	return true
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "kerala-kitchen",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(securityHeaders)
	return app
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	return c.Next()
}

// errorHandler catches errors no handler mapped itself: unknown routes,
// bad methods, oversized bodies and panics. 5xx details stay in the logs.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"method", c.Method(), "path", c.Path(), "request_id", c.Locals("requestid"), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
