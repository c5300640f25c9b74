package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

// AdminUserHandler serves user management on the admin dashboard.
type AdminUserHandler struct {
	users *services.UserService
}

func NewAdminUserHandler(users *services.UserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

// List handles GET /api/admin/users?status=&time_preference=&search=
func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return BadBody(c)
	}
	resp, err := h.users.List(q)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminUserHandler) Get(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	u, err := h.users.Get(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(u)
}

func (h *AdminUserHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.users.Approve)
}

func (h *AdminUserHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.users.Reject)
}

// AdvancePayment handles POST /api/admin/users/:id/payment-status/advance
func (h *AdminUserHandler) AdvancePayment(c *fiber.Ctx) error {
	return h.transition(c, h.users.AdvancePayment)
}

func (h *AdminUserHandler) transition(c *fiber.Ctx, fn func(uuid.UUID) (*models.User, error)) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	u, err := fn(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(u)
}

// SetDeliveryTime handles PUT /api/admin/users/:id/delivery-time
func (h *AdminUserHandler) SetDeliveryTime(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.SetDeliveryTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}
	u, err := h.users.SetDeliveryTime(id, req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(u)
}

// Update handles PUT /api/admin/users/:id
func (h *AdminUserHandler) Update(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}
	u, err := h.users.Update(id, req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(u)
}

func (h *AdminUserHandler) Delete(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	if err := h.users.Delete(id); err != nil {
		return RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
