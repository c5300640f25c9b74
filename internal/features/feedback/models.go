package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// Feedback is a rated review. It is shown to other subscribers once approved.
type Feedback struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName    string              `gorm:"size:120" json:"user_name"`
	Rating      int                 `gorm:"not null" json:"rating"`
	Message     string              `gorm:"type:text;not null" json:"message"`
	Status      models.ReviewStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
	ApprovedAt  *time.Time          `json:"approved_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
