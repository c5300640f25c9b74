package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return BadBody(c)
	}

	if err := h.authService.Logout(&req); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
