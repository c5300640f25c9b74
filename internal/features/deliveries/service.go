package deliveries

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/services"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

var ErrRequestPending = apperr.Invariant("a delivery time request is already waiting for review")

type Service struct {
	db       *gorm.DB
	requests *store.Repository[Request]
	users    *store.Repository[models.User]
	events   events.Publisher
	now      func() time.Time
}

func NewService(db *gorm.DB, publisher events.Publisher, now func() time.Time) *Service {
	return &Service{
		db:       db,
		requests: store.New[Request](db, "delivery request"),
		users:    store.New[models.User](db, "user"),
		events:   publisher,
		now:      now,
	}
}

// Submit files a request to change the user's delivery time. Users on both
// slots have fixed times and cannot file one; only one may be pending.
func (s *Service) Submit(userID uuid.UUID, req SubmitRequest) (*Request, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := rules.ValidDeliveryTime(req.RequestedTimeSlot, req.RequestedTime); err != nil {
		return nil, apperr.NewValidationError("requested_time", err.Error())
	}

	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	if !rules.DeliveryTimeEditable(u.TimePreference) {
		return nil, services.ErrDeliveryTimeLocked
	}

	var pending int64
	if err := s.db.Model(&Request{}).
		Where("user_id = ? AND status = ?", userID, models.ReviewPending).
		Count(&pending).Error; err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}
	if pending > 0 {
		return nil, ErrRequestPending
	}

	r := Request{
		UserID:            u.ID,
		UserName:          u.Name,
		CurrentTime:       u.EstimatedDeliveryTime,
		RequestedTimeSlot: req.RequestedTimeSlot,
		RequestedTime:     req.RequestedTime,
		Reason:            req.Reason,
		Status:            models.ReviewPending,
		SubmittedAt:       s.now().UTC(),
	}
	if err := s.requests.Insert(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Mine lists the user's own requests, newest first.
func (s *Service) Mine(userID uuid.UUID) ([]Request, error) {
	return s.requests.Where("user_id", userID)
}

// List returns requests matching q, with counts over all requests.
func (s *Service) List(q ListQuery) (*ListResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	all, err := s.requests.All()
	if err != nil {
		return nil, err
	}
	resp := &ListResponse{Requests: make([]Request, 0, len(all))}
	for _, r := range all {
		resp.Counts.Total++
		switch r.Status {
		case models.ReviewPending:
			resp.Counts.Pending++
		case models.ReviewApproved:
			resp.Counts.Approved++
		case models.ReviewRejected:
			resp.Counts.Rejected++
		}
		if q.Status == "" || r.Status == q.Status {
			resp.Requests = append(resp.Requests, r)
		}
	}
	return resp, nil
}

// Approve accepts a pending request and moves the user to the requested
// slot and time in the same transaction.
func (s *Service) Approve(id uuid.UUID) (*Request, error) {
	var out *Request
	err := s.db.Transaction(func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		users := s.users.WithTx(tx)

		r, err := requests.ByID(id)
		if err != nil {
			return err
		}
		next, err := rules.NextReviewStatus(rules.AxisDeliveryRequest, r.Status, rules.ActionApprove)
		if err != nil {
			return err
		}
		u, err := users.ByID(r.UserID)
		if err != nil {
			return err
		}
		// The user may have switched to both slots since filing.
		if !rules.DeliveryTimeEditable(u.TimePreference) {
			return services.ErrDeliveryTimeLocked
		}

		if out, err = requests.Update(id, map[string]any{
			"status":       next,
			"processed_at": s.now().UTC(),
		}); err != nil {
			return err
		}
		_, err = users.Update(u.ID, map[string]any{
			"time_preference":         models.TimePreference(r.RequestedTimeSlot),
			"estimated_delivery_time": r.RequestedTime,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("delivery request approved", "request_id", id.String(), "user_id", out.UserID.String())
	events.Fire(s.events, events.DeliveryApproved, eventFor(out))
	return out, nil
}

// Reject closes a pending request without touching the user.
func (s *Service) Reject(id uuid.UUID) (*Request, error) {
	r, err := s.requests.ByID(id)
	if err != nil {
		return nil, err
	}
	next, err := rules.NextReviewStatus(rules.AxisDeliveryRequest, r.Status, rules.ActionReject)
	if err != nil {
		return nil, err
	}
	out, err := s.requests.Update(id, map[string]any{
		"status":       next,
		"processed_at": s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	events.Fire(s.events, events.DeliveryRejected, eventFor(out))
	return out, nil
}

func eventFor(r *Request) Event {
	return Event{
		RequestID:         r.ID,
		UserID:            r.UserID,
		UserName:          r.UserName,
		RequestedTimeSlot: r.RequestedTimeSlot,
		RequestedTime:     r.RequestedTime,
		Status:            r.Status,
	}
}
