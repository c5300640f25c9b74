package dto

import (
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type RegisterRequest struct {
	Name           string                `json:"name" validate:"required,max=120"`
	Phone          string                `json:"phone" validate:"required,max=40"`
	Email          string                `json:"email" validate:"required,email,max=255"`
	Password       string                `json:"password" validate:"required,min=6,max=72"`
	Address        string                `json:"address" validate:"required"`
	Location       *LocationInput        `json:"location" validate:"omitempty"`
	TimePreference models.TimePreference `json:"time_preference" validate:"required,enum"`
}

type LocationInput struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID     uuid.UUID                 `json:"id"`
	Name   string                    `json:"name"`
	Email  string                    `json:"email"`
	Role   models.Role               `json:"role"`
	Status models.RegistrationStatus `json:"status"`
}

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
