package broadcasts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/features"
)

// Feature publishes kitchen-wide banners and notifications.
type Feature struct{}

func New() *Feature { return &Feature{} }

func (f *Feature) ID() string { return "broadcasts" }

func (f *Feature) Models() []interface{} {
	return []interface{}{&Banner{}, &Notification{}}
}

func (f *Feature) RegisterRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Events))
	router.Get("/broadcasts", h.Active)
}

func (f *Feature) RegisterAdminRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Events))

	router.Get("/banners", h.ListBanners)
	router.Post("/banners", h.CreateBanner)
	router.Put("/banners/:id", h.UpdateBanner)
	router.Post("/banners/:id/toggle", h.ToggleBanner)
	router.Delete("/banners/:id", h.DeleteBanner)

	router.Get("/notifications", h.ListNotifications)
	router.Post("/notifications", h.CreateNotification)
	router.Put("/notifications/:id", h.UpdateNotification)
	router.Post("/notifications/:id/toggle", h.ToggleNotification)
	router.Delete("/notifications/:id", h.DeleteNotification)
}
