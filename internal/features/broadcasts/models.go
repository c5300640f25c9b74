package broadcasts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// Banner is a strip shown across the top of the subscriber dashboard.
type Banner struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string            `gorm:"size:120;not null" json:"title"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	Type      models.BannerType `gorm:"size:20;not null;default:'info'" json:"type"`
	IsActive  bool              `gorm:"default:false;index" json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Notification is a dismissible message in the subscriber's inbox.
type Notification struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string                  `gorm:"size:120;not null" json:"title"`
	Message   string                  `gorm:"type:text;not null" json:"message"`
	Type      models.NotificationType `gorm:"size:20;not null;default:'info'" json:"type"`
	IsActive  bool                    `gorm:"default:false;index" json:"is_active"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
