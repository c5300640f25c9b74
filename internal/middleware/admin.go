package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/session"
)

// AdminRequired lets a request through when the caller:
// 1. carries the admin role claim, or
// 2. is listed in ADMIN_EMAILS / ADMIN_EMAIL, or
// 3. has the admin role in the users table (covers tokens issued before a promotion).
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := cfg.AdminEmailList()

	return func(c *fiber.Ctx) error {
		userID, err := session.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if session.GetRole(c) == models.RoleAdmin {
			return c.Next()
		}

		if slices.Contains(adminEmails, strings.ToLower(session.GetEmail(c))) {
			return c.Next()
		}

		var user models.User
		if err := db.Select("role").First(&user, "id = ?", userID).Error; err == nil && user.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
