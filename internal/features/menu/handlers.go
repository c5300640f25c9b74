package menu

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/handlers"
	"github.com/keralakitchen/kitchen-backend/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Menus handles GET /api/me/menus
func (h *Handler) Menus(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return handlers.Unauthorized(c)
	}
	resp, err := h.service.Menus(userID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(resp)
}

// SubmitSelection handles PUT /api/me/menus/tomorrow/selection
func (h *Handler) SubmitSelection(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return handlers.Unauthorized(c)
	}
	var req SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	sel, err := h.service.SubmitSelection(userID, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(sel)
}

// List handles GET /api/admin/menus?from=YYYY-MM-DD
func (h *Handler) List(c *fiber.Ctx) error {
	menus, err := h.service.List(c.Query("from"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(menus)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	m, err := h.service.Get(id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(m)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req MenuRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	m, err := h.service.Create(req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	var req MenuRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	m, err := h.service.Update(id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(m)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return handlers.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Selections handles GET /api/admin/menus/selections?date=YYYY-MM-DD
func (h *Handler) Selections(c *fiber.Ctx) error {
	sels, err := h.service.Selections(c.Query("date"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(sels)
}
