package broadcasts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/handlers"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Active handles GET /api/me/broadcasts
func (h *Handler) Active(c *fiber.Ctx) error {
	resp, err := h.service.Active()
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *Handler) ListBanners(c *fiber.Ctx) error {
	list, err := h.service.Banners()
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) CreateBanner(c *fiber.Ctx) error {
	var req BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	b, err := h.service.CreateBanner(req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *Handler) UpdateBanner(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	var req BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	b, err := h.service.UpdateBanner(id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(b)
}

// ToggleBanner handles POST /api/admin/banners/:id/toggle
func (h *Handler) ToggleBanner(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	b, err := h.service.ToggleBanner(id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) DeleteBanner(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if err := h.service.DeleteBanner(id); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	list, err := h.service.Notifications()
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) CreateNotification(c *fiber.Ctx) error {
	var req NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	n, err := h.service.CreateNotification(req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *Handler) UpdateNotification(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	var req NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	n, err := h.service.UpdateNotification(id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(n)
}

func (h *Handler) ToggleNotification(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	n, err := h.service.ToggleNotification(id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(n)
}

func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if err := h.service.DeleteNotification(id); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
