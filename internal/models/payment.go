package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a recorded (or announced) payment. It informs, but never drives, User.PaymentStatus.
type Payment struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName      string              `gorm:"size:120" json:"user_name"`
	Amount        decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method        PaymentMethod       `gorm:"size:20;not null" json:"method"`
	Status        PaymentRecordStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TransactionID string              `gorm:"size:100" json:"transaction_id,omitempty"`
	PaidAt        time.Time           `json:"paid_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
