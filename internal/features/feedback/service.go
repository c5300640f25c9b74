package feedback

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/services"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

type Service struct {
	db       *gorm.DB
	feedback *store.Repository[Feedback]
	users    *store.Repository[models.User]
	filter   *services.ContentFilter
	now      func() time.Time
}

func NewService(db *gorm.DB, filter *services.ContentFilter, now func() time.Time) *Service {
	if filter == nil {
		filter = services.NewContentFilter()
	}
	return &Service{
		db:       db,
		feedback: store.New[Feedback](db, "feedback"),
		users:    store.New[models.User](db, "user"),
		filter:   filter,
		now:      now,
	}
}

// Submit stores a rating for moderation. Messages failing the content
// filter are refused outright.
func (s *Service) Submit(userID uuid.UUID, req SubmitRequest) (*Feedback, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if ok, reason := s.filter.Check(req.Message); !ok {
		slog.Info("feedback blocked by content filter", "user_id", userID.String(), "reason", reason)
		return nil, apperr.NewValidationError("message", services.RejectionMessage(reason))
	}

	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	f := Feedback{
		UserID:      u.ID,
		UserName:    u.Name,
		Rating:      req.Rating,
		Message:     req.Message,
		Status:      models.ReviewPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.feedback.Insert(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Approved returns published feedback, most recently approved first.
func (s *Service) Approved() (*PublicList, error) {
	var rows []Feedback
	if err := s.db.Where("status = ?", models.ReviewApproved).
		Order("approved_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list approved feedback: %w", err)
	}
	out := &PublicList{Feedback: make([]PublicFeedback, len(rows))}
	total := 0
	for i, f := range rows {
		out.Feedback[i] = PublicFeedback{
			UserName:    f.UserName,
			Rating:      f.Rating,
			Message:     f.Message,
			SubmittedAt: f.SubmittedAt,
		}
		total += f.Rating
	}
	if len(rows) > 0 {
		out.AverageRating = math.Round(float64(total)/float64(len(rows))*10) / 10
	}
	return out, nil
}

func (s *Service) Mine(userID uuid.UUID) ([]Feedback, error) {
	return s.feedback.Where("user_id", userID)
}

// List returns all feedback, optionally filtered by status, newest first.
func (s *Service) List(q ListQuery) ([]Feedback, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	if q.Status == "" {
		return s.feedback.All()
	}
	return s.feedback.Where("status", q.Status)
}

func (s *Service) Approve(id uuid.UUID) (*Feedback, error) {
	return s.review(id, rules.ActionApprove)
}

func (s *Service) Reject(id uuid.UUID) (*Feedback, error) {
	return s.review(id, rules.ActionReject)
}

func (s *Service) review(id uuid.UUID, action rules.Action) (*Feedback, error) {
	f, err := s.feedback.ByID(id)
	if err != nil {
		return nil, err
	}
	next, err := rules.NextReviewStatus(rules.AxisFeedback, f.Status, action)
	if err != nil {
		return nil, err
	}
	partial := map[string]any{"status": next}
	if next == models.ReviewApproved {
		partial["approved_at"] = s.now().UTC()
	}
	return s.feedback.Update(id, partial)
}
