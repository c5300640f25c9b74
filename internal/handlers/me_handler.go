package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/services"
	"github.com/keralakitchen/kitchen-backend/internal/session"
)

// MeHandler serves the subscriber's own dashboard.
type MeHandler struct {
	users    *services.UserService
	payments *services.PaymentService
}

func NewMeHandler(users *services.UserService, payments *services.PaymentService) *MeHandler {
	return &MeHandler{users: users, payments: payments}
}

// Profile handles GET /api/me
func (h *MeHandler) Profile(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Unauthorized(c)
	}
	u, err := h.users.Get(userID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(u)
}

// Plan handles GET /api/me/plan
func (h *MeHandler) Plan(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Unauthorized(c)
	}
	resp, err := h.users.PlanDetails(userID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}

// Payment handles GET /api/me/payment
func (h *MeHandler) Payment(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Unauthorized(c)
	}
	resp, err := h.payments.Status(userID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}

// SubmitPayment handles POST /api/me/payments
func (h *MeHandler) SubmitPayment(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Unauthorized(c)
	}
	var req dto.PaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}
	p, err := h.payments.SubmitIntent(userID, req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}
