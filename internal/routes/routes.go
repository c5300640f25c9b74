package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/features"
	"github.com/keralakitchen/kitchen-backend/internal/features/broadcasts"
	"github.com/keralakitchen/kitchen-backend/internal/features/deliveries"
	"github.com/keralakitchen/kitchen-backend/internal/features/feedback"
	"github.com/keralakitchen/kitchen-backend/internal/features/menu"
	"github.com/keralakitchen/kitchen-backend/internal/handlers"
	"github.com/keralakitchen/kitchen-backend/internal/middleware"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

// Features returns every feature module served by the API.
func Features() []features.Feature {
	return []features.Feature{
		menu.New(),
		deliveries.New(),
		feedback.New(),
		broadcasts.New(),
	}
}

// FeatureModels collects the models of feats for migration.
func FeatureModels(feats []features.Feature) []interface{} {
	var out []interface{}
	for _, f := range feats {
		out = append(out, f.Models()...)
	}
	return out
}

// Services are the core services the API is built on.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Payments  *services.PaymentService
	Analytics *services.AnalyticsService
}

func NewServices(db *gorm.DB, cfg *config.Config, publisher events.Publisher) *Services {
	return &Services{
		Auth:      services.NewAuthService(db, cfg),
		Users:     services.NewUserService(db, publisher),
		Payments:  services.NewPaymentService(db, cfg, publisher),
		Analytics: services.NewAnalyticsService(db),
	}
}

func limit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, deps features.Deps, svc *Services, feats []features.Feature) {
	cfg := deps.Config

	// Records owned by feature modules go when their user is deleted.
	for _, f := range feats {
		if owned, ok := f.(features.UserOwned); ok {
			svc.Users.OwnRecords(owned.OwnedModels()...)
		}
	}

	authHandler := handlers.NewAuthHandler(svc.Auth)
	healthHandler := handlers.NewHealthHandler(deps.DB)
	meHandler := handlers.NewMeHandler(svc.Users, svc.Payments)
	userHandler := handlers.NewAdminUserHandler(svc.Users)
	paymentHandler := handlers.NewAdminPaymentHandler(svc.Payments, svc.Analytics)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limit(60))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limit(10))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/", meHandler.Profile)
	me.Get("/plan", meHandler.Plan)
	me.Get("/payment", meHandler.Payment)
	me.Post("/payments", meHandler.SubmitPayment)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(deps.DB, cfg))

	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Post("/users/:id/approve", userHandler.Approve)
	admin.Post("/users/:id/reject", userHandler.Reject)
	admin.Post("/users/:id/payment-status/advance", userHandler.AdvancePayment)
	admin.Put("/users/:id/delivery-time", userHandler.SetDeliveryTime)
	admin.Post("/users/:id/payment-reminder", paymentHandler.Remind)

	admin.Get("/payments", paymentHandler.Overview)
	admin.Get("/payments/records", paymentHandler.Records)
	admin.Post("/payments/records/:id/confirm", paymentHandler.Confirm)
	admin.Get("/analytics", paymentHandler.Analytics)

	for _, f := range feats {
		f.RegisterRoutes(me, deps)
		f.RegisterAdminRoutes(admin, deps)
	}
}
