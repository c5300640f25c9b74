package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is the delivery coordinate captured at registration.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// User is a subscriber (or a kitchen admin when Role is admin).
type User struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name                  string             `gorm:"size:120;not null" json:"name"`
	Phone                 string             `gorm:"size:40;not null" json:"phone"`
	Email                 string             `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password              string             `gorm:"not null" json:"-"`
	Role                  Role               `gorm:"size:20;default:'user'" json:"role"`
	Address               string             `gorm:"type:text" json:"address"`
	Location              Location           `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Status                RegistrationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PlanType              PlanType           `gorm:"size:20;not null;default:'monthly'" json:"plan_type"`
	PaymentStatus         PaymentStatus      `gorm:"size:20;not null;default:'unpaid';index" json:"payment_status"`
	TimePreference        TimePreference     `gorm:"size:20;not null;default:'afternoon'" json:"time_preference"`
	EstimatedDeliveryTime string             `gorm:"size:20" json:"estimated_delivery_time"`
	JoinedDate            time.Time          `json:"joined_date"`
	ExpiryDate            *time.Time         `json:"expiry_date,omitempty"`
	DaysActive            int                `gorm:"default:0" json:"days_active"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
