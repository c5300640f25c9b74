package feedback

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/features"
)

// Feature collects moderated subscriber reviews.
type Feature struct{}

func New() *Feature { return &Feature{} }

func (f *Feature) ID() string { return "feedback" }

func (f *Feature) Models() []interface{} {
	return []interface{}{&Feedback{}}
}

func (f *Feature) OwnedModels() []interface{} {
	return []interface{}{&Feedback{}}
}

func (f *Feature) RegisterRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Filter, deps.Now))
	router.Get("/feedback", h.Approved)
	router.Get("/feedback/mine", h.Mine)
	router.Post("/feedback", h.Submit)
}

func (f *Feature) RegisterAdminRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Filter, deps.Now))
	router.Get("/feedback", h.List)
	router.Post("/feedback/:id/approve", h.Approve)
	router.Post("/feedback/:id/reject", h.Reject)
}
