package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

type AdminPaymentHandler struct {
	payments  *services.PaymentService
	analytics *services.AnalyticsService
}

func NewAdminPaymentHandler(payments *services.PaymentService, analytics *services.AnalyticsService) *AdminPaymentHandler {
	return &AdminPaymentHandler{payments: payments, analytics: analytics}
}

// Overview handles GET /api/admin/payments?payment_status=&search=
func (h *AdminPaymentHandler) Overview(c *fiber.Ctx) error {
	var q dto.PaymentOverviewQuery
	if err := c.QueryParser(&q); err != nil {
		return BadBody(c)
	}
	resp, err := h.payments.Overview(q)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}

// Records handles GET /api/admin/payments/records?status=
func (h *AdminPaymentHandler) Records(c *fiber.Ctx) error {
	records, err := h.payments.Records(models.PaymentRecordStatus(c.Query("status")))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(records)
}

// Confirm handles POST /api/admin/payments/records/:id/confirm
func (h *AdminPaymentHandler) Confirm(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	p, err := h.payments.Confirm(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(p)
}

// Remind handles POST /api/admin/users/:id/payment-reminder
func (h *AdminPaymentHandler) Remind(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	evt, err := h.payments.SendReminder(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(evt)
}

// Analytics handles GET /api/admin/analytics
func (h *AdminPaymentHandler) Analytics(c *fiber.Ctx) error {
	resp, err := h.analytics.Dashboard()
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}
