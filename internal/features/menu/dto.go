package menu

import (
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type ItemInput struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Description  string   `json:"description"`
	IsOptional   bool     `json:"is_optional"`
	Alternatives []string `json:"alternatives" validate:"dive,required,max=120"`
}

type MenuRequest struct {
	Date       string          `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot   models.TimeSlot `json:"time_slot" validate:"required,enum"`
	Items      []ItemInput     `json:"items" validate:"required,min=1,dive"`
	Notes      string          `json:"notes"`
	CutoffTime string          `json:"cutoff_time" validate:"omitempty,datetime=15:04"`
}

type ChoiceInput struct {
	ItemID         uuid.UUID `json:"item_id" validate:"required"`
	SelectedOption string    `json:"selected_option" validate:"required"`
}

type SelectionRequest struct {
	TimeSlot    models.TimeSlot `json:"time_slot" validate:"required,enum"`
	Selections  []ChoiceInput   `json:"selections" validate:"dive"`
	SpecialNote string          `json:"special_note" validate:"max=500"`
}

// SlotView is one slot of one day as a subscriber sees it.
type SlotView struct {
	Menu      *DailyMenu `json:"menu"`
	Selection *Selection `json:"selection,omitempty"`
}

// DayView holds both slots for one date.
type DayView struct {
	Date      string    `json:"date"`
	Afternoon *SlotView `json:"afternoon"`
	Night     *SlotView `json:"night"`
}

type MenusResponse struct {
	Today           DayView `json:"today"`
	Tomorrow        DayView `json:"tomorrow"`
	CanEditTomorrow bool    `json:"can_edit_tomorrow"`
	CutoffHour      int     `json:"cutoff_hour"`
}
