// Package features defines how self-contained parts of the kitchen (menus,
// delivery requests, feedback, broadcasts) plug into the server.
package features

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

// Deps are the shared collaborators handed to every feature.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Events events.Publisher
	Filter *services.ContentFilter
	// Now returns the current time in the kitchen's time zone.
	Now func() time.Time
}

// KitchenClock returns a clock reporting time.Now in loc.
func KitchenClock(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}

// Feature is implemented by every feature module.
type Feature interface {
	// ID is a short unique name used in logs.
	ID() string

	// Models returns the GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts subscriber routes. The group is /api/me with JWT applied.
	RegisterRoutes(router fiber.Router, deps Deps)

	// RegisterAdminRoutes mounts routes on /api/admin, behind JWT and the admin check.
	RegisterAdminRoutes(router fiber.Router, deps Deps)
}

// UserOwned is implemented by features whose records are deleted with their user.
type UserOwned interface {
	OwnedModels() []interface{}
}
