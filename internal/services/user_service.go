package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

// ErrDeliveryTimeLocked is returned for users on both slots, whose times are fixed.
var ErrDeliveryTimeLocked = apperr.Invariant("users on both slots have fixed delivery times")

// UserEvent is the payload of user.* and payment.status_changed events.
type UserEvent struct {
	UserID        uuid.UUID                 `json:"user_id"`
	Name          string                    `json:"name"`
	Email         string                    `json:"email"`
	Phone         string                    `json:"phone"`
	Status        models.RegistrationStatus `json:"status"`
	PlanType      models.PlanType           `json:"plan_type"`
	PaymentStatus models.PaymentStatus      `json:"payment_status"`
}

func userEvent(u *models.User) UserEvent {
	return UserEvent{
		UserID:        u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Status:        u.Status,
		PlanType:      u.PlanType,
		PaymentStatus: u.PaymentStatus,
	}
}

type UserService struct {
	db     *gorm.DB
	users  *store.Repository[models.User]
	events events.Publisher
	now    func() time.Time

	// owned are models with a user_id column removed along with the user.
	owned []interface{}
}

func NewUserService(db *gorm.DB, publisher events.Publisher) *UserService {
	return &UserService{
		db:     db,
		users:  store.New[models.User](db, "user"),
		events: publisher,
		now:    time.Now,
	}
}

// OwnRecords registers feature models deleted together with their user.
func (s *UserService) OwnRecords(records ...interface{}) {
	s.owned = append(s.owned, records...)
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	return s.users.ByID(id)
}

// PlanDetails returns the subscriber's plan, price and delivery schedule.
func (s *UserService) PlanDetails(id uuid.UUID) (*dto.PlanDetailsResponse, error) {
	u, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PlanDetailsResponse{
		PlanType:             u.PlanType,
		Status:               u.Status,
		PaymentStatus:        u.PaymentStatus,
		Currency:             rules.Currency,
		JoinedDate:           u.JoinedDate,
		ExpiryDate:           u.ExpiryDate,
		DaysRemaining:        rules.DaysRemaining(u.ExpiryDate, s.now()),
		DaysActive:           u.DaysActive,
		TimePreference:       u.TimePreference,
		DeliveryTimes:        rules.DeliveryTimes(u.TimePreference, u.EstimatedDeliveryTime),
		DeliveryTimeEditable: rules.DeliveryTimeEditable(u.TimePreference),
	}
	if q, err := rules.PriceFor(u.PlanType, u.PaymentStatus); err == nil {
		resp.Quote = &q
	} else if !rules.IsNotPriced(err) {
		return nil, err
	}
	return resp, nil
}

// List returns users matching q, newest first, with counts over all users.
func (s *UserService) List(q dto.UserListQuery) (*dto.UserListResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	all, err := s.users.All()
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{Users: make([]models.User, 0, len(all))}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, u := range all {
		if u.IsAdmin() {
			continue
		}
		resp.Counts.Total++
		switch u.Status {
		case models.RegistrationPending:
			resp.Counts.Pending++
		case models.RegistrationApproved:
			resp.Counts.Approved++
		case models.RegistrationRejected:
			resp.Counts.Rejected++
		}

		if q.Status != "" && u.Status != q.Status {
			continue
		}
		if q.TimePreference != "" && u.TimePreference != q.TimePreference {
			continue
		}
		if search != "" && !matchesSearch(search, u.Name, u.Email, u.Phone) {
			continue
		}
		resp.Users = append(resp.Users, u)
	}
	return resp, nil
}

// Subscribers returns every non-admin user.
func (s *UserService) Subscribers() ([]models.User, error) {
	return s.users.Where("role", models.RoleUser)
}

func matchesSearch(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Approve moves a pending registration to approved.
func (s *UserService) Approve(id uuid.UUID) (*models.User, error) {
	return s.moveRegistration(id, rules.ActionApprove)
}

// Reject moves a pending registration to rejected.
func (s *UserService) Reject(id uuid.UUID) (*models.User, error) {
	return s.moveRegistration(id, rules.ActionReject)
}

func (s *UserService) moveRegistration(id uuid.UUID, action rules.Action) (*models.User, error) {
	u, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}
	next, err := rules.NextRegistrationStatus(u.Status, action)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.Update(id, map[string]any{"status": next})
	if err != nil {
		return nil, err
	}

	key := events.UserApproved
	if next == models.RegistrationRejected {
		key = events.UserRejected
	}
	events.Fire(s.events, key, userEvent(updated))
	return updated, nil
}

// AdvancePayment cycles the payment standing paid -> half_paid -> unpaid -> paid.
func (s *UserService) AdvancePayment(id uuid.UUID) (*models.User, error) {
	u, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}
	if !rules.IsPriced(u.PlanType) {
		return nil, fmt.Errorf("advance payment for %s plan: %w", u.PlanType, rules.ErrPlanNotPriced)
	}
	next, err := rules.NextPaymentStatus(u.PaymentStatus)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.Update(id, map[string]any{"payment_status": next})
	if err != nil {
		return nil, err
	}
	events.Fire(s.events, events.PaymentStatusChanged, userEvent(updated))
	return updated, nil
}

// SetDeliveryTime overrides a single-slot user's delivery time.
func (s *UserService) SetDeliveryTime(id uuid.UUID, req dto.SetDeliveryTimeRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}
	if !rules.DeliveryTimeEditable(u.TimePreference) {
		return nil, ErrDeliveryTimeLocked
	}
	if err := rules.ValidDeliveryTime(models.TimeSlot(u.TimePreference), req.Time); err != nil {
		return nil, apperr.NewValidationError("estimated_delivery_time", err.Error())
	}
	return s.users.Update(id, map[string]any{"estimated_delivery_time": req.Time})
}

// Update applies an admin's full edit. Every field is validated before anything is written.
func (s *UserService) Update(id uuid.UUID, req dto.UpdateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !rules.IsPriced(req.PlanType) {
		return nil, apperr.NewValidationError("plan_type", fmt.Sprintf("plan %q is not offered", req.PlanType))
	}

	u, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}

	deliveryTime := req.EstimatedDeliveryTime
	if req.TimePreference == models.PreferBoth {
		deliveryTime = rules.DefaultDeliveryTime(models.PreferBoth)
	} else if err := rules.ValidDeliveryTime(models.TimeSlot(req.TimePreference), deliveryTime); err != nil {
		return nil, apperr.NewValidationError("estimated_delivery_time", err.Error())
	}

	email := normalizeEmail(req.Email)
	if email != u.Email {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	partial := map[string]any{
		"name":                    strings.TrimSpace(req.Name),
		"phone":                   strings.TrimSpace(req.Phone),
		"email":                   email,
		"address":                 strings.TrimSpace(req.Address),
		"plan_type":               req.PlanType,
		"time_preference":         req.TimePreference,
		"estimated_delivery_time": deliveryTime,
		"expiry_date":             req.ExpiryDate,
	}
	if req.Location != nil {
		partial["location_lat"] = req.Location.Lat
		partial["location_lng"] = req.Location.Lng
	}
	if req.DaysActive != nil {
		partial["days_active"] = *req.DaysActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		partial["password"] = string(hash)
	}

	updated, err := s.users.Update(id, partial)
	if err != nil {
		return nil, err
	}
	slog.Info("user updated by admin", "user_id", id.String())
	return updated, nil
}

// Delete removes a subscriber with everything they own.
func (s *UserService) Delete(id uuid.UUID) error {
	owned := append([]interface{}{&models.RefreshToken{}, &models.Payment{}}, s.owned...)
	return s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if _, err := users.ByID(id); err != nil {
			return err
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("delete %T: %w", m, err)
			}
		}
		return users.Delete(id)
	})
}
