package menu

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// DailyMenu is what the kitchen serves in one slot on one date.
type DailyMenu struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Date       string          `gorm:"size:10;not null;uniqueIndex:idx_menu_date_slot" json:"date"`
	TimeSlot   models.TimeSlot `gorm:"size:20;not null;uniqueIndex:idx_menu_date_slot" json:"time_slot"`
	Items      []MenuItem      `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"items"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CutoffTime string          `gorm:"size:5" json:"cutoff_time"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (m *DailyMenu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MenuItem is one dish. Optional dishes may be swapped for an alternative.
type MenuItem struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"-"`
	Position     int                         `gorm:"not null" json:"-"`
	Name         string                      `gorm:"size:120;not null" json:"name"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	IsOptional   bool                        `gorm:"default:false" json:"is_optional"`
	Alternatives datatypes.JSONSlice[string] `json:"alternatives"`
}

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Offers reports whether option is the dish itself or one of its alternatives.
func (i *MenuItem) Offers(option string) bool {
	if option == i.Name {
		return true
	}
	for _, alt := range i.Alternatives {
		if alt == option {
			return true
		}
	}
	return false
}

type ItemChoice struct {
	ItemID         uuid.UUID `json:"item_id"`
	SelectedOption string    `json:"selected_option"`
}

// Selection is a subscriber's customisation of a next-day menu.
type Selection struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                       `gorm:"type:uuid;not null;uniqueIndex:idx_selection_user_date_slot" json:"user_id"`
	UserName    string                          `gorm:"size:120" json:"user_name"`
	Date        string                          `gorm:"size:10;not null;uniqueIndex:idx_selection_user_date_slot;index" json:"date"`
	TimeSlot    models.TimeSlot                 `gorm:"size:20;not null;uniqueIndex:idx_selection_user_date_slot" json:"time_slot"`
	Choices     datatypes.JSONSlice[ItemChoice] `json:"selections"`
	SpecialNote string                          `gorm:"type:text" json:"special_note,omitempty"`
	SubmittedAt time.Time                       `json:"submitted_at"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func (Selection) TableName() string { return "menu_selections" }

func (s *Selection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
