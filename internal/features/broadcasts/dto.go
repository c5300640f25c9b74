package broadcasts

import (
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type BannerRequest struct {
	Title    string            `json:"title" validate:"required,max=120"`
	Content  string            `json:"content" validate:"required,max=1000"`
	Type     models.BannerType `json:"type" validate:"required,enum"`
	IsActive bool              `json:"is_active"`
}

type NotificationRequest struct {
	Title    string                  `json:"title" validate:"required,max=120"`
	Message  string                  `json:"message" validate:"required,max=2000"`
	Type     models.NotificationType `json:"type" validate:"required,enum"`
	IsActive bool                    `json:"is_active"`
}

// Active is the subscriber's view: only broadcasts currently switched on.
type Active struct {
	Banners       []Banner       `json:"banners"`
	Notifications []Notification `json:"notifications"`
}

// Event is the payload of broadcast.activated.
type Event struct {
	ID    uuid.UUID `json:"id"`
	Kind  string    `json:"kind"`
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Body  string    `json:"body"`
}
