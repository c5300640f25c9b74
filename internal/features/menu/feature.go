package menu

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/features"
)

// Feature serves daily menus and next-day meal customisation.
type Feature struct{}

func New() *Feature { return &Feature{} }

func (f *Feature) ID() string { return "menu" }

func (f *Feature) Models() []interface{} {
	return []interface{}{
		&DailyMenu{},
		&MenuItem{},
		&Selection{},
	}
}

func (f *Feature) OwnedModels() []interface{} {
	return []interface{}{&Selection{}}
}

func (f *Feature) RegisterRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Now))
	router.Get("/menus", h.Menus)
	router.Put("/menus/tomorrow/selection", h.SubmitSelection)
}

func (f *Feature) RegisterAdminRoutes(router fiber.Router, deps features.Deps) {
	h := NewHandler(NewService(deps.DB, deps.Now))
	router.Get("/menus", h.List)
	router.Get("/menus/selections", h.Selections)
	router.Post("/menus", h.Create)
	router.Get("/menus/:id", h.Get)
	router.Put("/menus/:id", h.Update)
	router.Delete("/menus/:id", h.Delete)
}
