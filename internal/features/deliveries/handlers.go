package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/handlers"
	"github.com/keralakitchen/kitchen-backend/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/me/delivery-requests
func (h *Handler) Submit(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return handlers.Unauthorized(c)
	}
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadBody(c)
	}
	r, err := h.service.Submit(userID, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// Mine handles GET /api/me/delivery-requests
func (h *Handler) Mine(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return handlers.Unauthorized(c)
	}
	list, err := h.service.Mine(userID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(list)
}

// List handles GET /api/admin/delivery-requests?status=
func (h *Handler) List(c *fiber.Ctx) error {
	var q ListQuery
	if err := c.QueryParser(&q); err != nil {
		return handlers.BadBody(c)
	}
	resp, err := h.service.List(q)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *Handler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.service.Approve)
}

func (h *Handler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.service.Reject)
}

func (h *Handler) review(c *fiber.Ctx, fn func(uuid.UUID) (*Request, error)) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return handlers.RespondError(c, err)
	}
	r, err := fn(id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.JSON(r)
}
