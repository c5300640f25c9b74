package deliveries

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// Request asks the kitchen to move a subscriber's delivery time.
type Request struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName          string              `gorm:"size:120" json:"user_name"`
	CurrentTime       string              `gorm:"size:20" json:"current_time"`
	RequestedTimeSlot models.TimeSlot     `gorm:"size:20;not null" json:"requested_time_slot"`
	RequestedTime     string              `gorm:"size:20;not null" json:"requested_time"`
	Reason            string              `gorm:"type:text" json:"reason"`
	Status            models.ReviewStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SubmittedAt       time.Time           `json:"submitted_at"`
	ProcessedAt       *time.Time          `json:"processed_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (Request) TableName() string { return "delivery_requests" }

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
