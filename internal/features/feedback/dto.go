package feedback

import (
	"time"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type SubmitRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Message string `json:"message" validate:"required,max=1000"`
}

type ListQuery struct {
	Status models.ReviewStatus `query:"status" json:"status" validate:"omitempty,enum"`
}

// PublicFeedback is what other subscribers see.
type PublicFeedback struct {
	UserName    string    `json:"user_name"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type PublicList struct {
	Feedback      []PublicFeedback `json:"feedback"`
	AverageRating float64          `json:"average_rating"`
}
