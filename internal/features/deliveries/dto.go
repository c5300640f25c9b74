package deliveries

import (
	"github.com/google/uuid"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type SubmitRequest struct {
	RequestedTimeSlot models.TimeSlot `json:"requested_time_slot" validate:"required,enum"`
	RequestedTime     string          `json:"requested_time" validate:"required,clock"`
	Reason            string          `json:"reason" validate:"required,max=500"`
}

type ListQuery struct {
	Status models.ReviewStatus `query:"status" json:"status" validate:"omitempty,enum"`
}

type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type ListResponse struct {
	Requests []Request `json:"requests"`
	Counts   Counts    `json:"counts"`
}

// Event is the payload of delivery.* events.
type Event struct {
	RequestID         uuid.UUID           `json:"request_id"`
	UserID            uuid.UUID           `json:"user_id"`
	UserName          string              `json:"user_name"`
	RequestedTimeSlot models.TimeSlot     `json:"requested_time_slot"`
	RequestedTime     string              `json:"requested_time"`
	Status            models.ReviewStatus `json:"status"`
}
