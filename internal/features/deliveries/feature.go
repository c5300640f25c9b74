package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/features"
)

// Feature lets single-slot subscribers ask for a different delivery time.
type Feature struct{}

func New() *Feature { return &Feature{} }

func (f *Feature) ID() string { return "deliveries" }

func (f *Feature) Models() []interface{} {
	return []interface{}{&Request{}}
}

func (f *Feature) OwnedModels() []interface{} {
	return []interface{}{&Request{}}
}

func (f *Feature) RegisterRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Events, deps.Now))
	router.Get("/delivery-requests", h.Mine)
	router.Post("/delivery-requests", h.Submit)
}

func (f *Feature) RegisterAdminRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Events, deps.Now))
	router.Get("/delivery-requests", h.List)
	router.Post("/delivery-requests/:id/approve", h.Approve)
	router.Post("/delivery-requests/:id/reject", h.Reject)
}
