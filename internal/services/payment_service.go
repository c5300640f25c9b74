package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

var ErrNothingDue = apperr.Invariant("nothing is due for this plan period")

// PaymentEvent is the payload of payment.reminder and payment.confirmed.
type PaymentEvent struct {
	UserID    uuid.UUID            `json:"user_id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	PlanType  models.PlanType      `json:"plan_type"`
	Status    models.PaymentStatus `json:"payment_status"`
	Amount    decimal.Decimal      `json:"amount"`
	Currency  string               `json:"currency"`
	PaymentID *uuid.UUID           `json:"payment_id,omitempty"`
}

type PaymentService struct {
	cfg      *config.Config
	users    *store.Repository[models.User]
	payments *store.Repository[models.Payment]
	events   events.Publisher
	now      func() time.Time
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, publisher events.Publisher) *PaymentService {
	return &PaymentService{
		cfg:      cfg,
		users:    store.New[models.User](db, "user"),
		payments: store.New[models.Payment](db, "payment"),
		events:   publisher,
		now:      time.Now,
	}
}

func quoteOrNil(u *models.User) (*rules.Quote, error) {
	q, err := rules.PriceFor(u.PlanType, u.PaymentStatus)
	if err != nil {
		if rules.IsNotPriced(err) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// Status is the subscriber's payment screen: what is due and how to pay it.
func (s *PaymentService) Status(userID uuid.UUID) (*dto.PaymentStatusResponse, error) {
	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	q, err := quoteOrNil(u)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.Where("user_id", userID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentStatusResponse{
		PaymentStatus: u.PaymentStatus,
		Currency:      rules.Currency,
		Quote:         q,
		Bank:          s.cfg.Bank,
		Payments:      payments,
	}, nil
}

// SubmitIntent records a pending payment for the amount currently due.
// It never changes the user's payment status; an admin does that.
func (s *PaymentService) SubmitIntent(userID uuid.UUID, req dto.PaymentIntentRequest) (*models.Payment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Method == models.MethodBankTransfer && strings.TrimSpace(req.TransactionID) == "" {
		return nil, apperr.NewValidationError("transaction_id", "is required for bank transfers")
	}

	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	q, err := rules.PriceFor(u.PlanType, u.PaymentStatus)
	if err != nil {
		return nil, err
	}
	if q.Due.IsZero() {
		return nil, ErrNothingDue
	}

	p := models.Payment{
		UserID:        u.ID,
		UserName:      u.Name,
		Amount:        q.Due,
		Method:        req.Method,
		Status:        models.PaymentRecordPending,
		TransactionID: strings.TrimSpace(req.TransactionID),
		PaidAt:        s.now().UTC(),
	}
	if err := s.payments.Insert(&p); err != nil {
		return nil, err
	}
	slog.Info("payment intent submitted", "user_id", u.ID.String(), "method", p.Method, "amount", p.Amount.String())
	return &p, nil
}

// Overview lists every subscriber with their quote, plus collected and pending totals.
func (s *PaymentService) Overview(q dto.PaymentOverviewQuery) (*dto.PaymentOverviewResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	users, err := s.users.Where("role", models.RoleUser)
	if err != nil {
		return nil, err
	}

	resp := &dto.PaymentOverviewResponse{
		Currency:  rules.Currency,
		Rows:      make([]dto.PaymentOverviewRow, 0, len(users)),
		Collected: decimal.Zero,
		Pending:   decimal.Zero,
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for i := range users {
		u := &users[i]
		quote, err := quoteOrNil(u)
		if err != nil {
			return nil, err
		}
		if quote == nil {
			resp.UnpricedUsers++
		} else {
			resp.Collected = resp.Collected.Add(quote.Paid)
			resp.Pending = resp.Pending.Add(quote.Due)
		}

		if q.PaymentStatus != "" && u.PaymentStatus != q.PaymentStatus {
			continue
		}
		if search != "" && !matchesSearch(search, u.Name, u.Email, u.Phone) {
			continue
		}
		resp.Rows = append(resp.Rows, dto.PaymentOverviewRow{
			UserID:        u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Phone:         u.Phone,
			PlanType:      u.PlanType,
			PaymentStatus: u.PaymentStatus,
			Quote:         quote,
		})
	}
	return resp, nil
}

// Records lists payment records, optionally by status.
func (s *PaymentService) Records(status models.PaymentRecordStatus) ([]models.Payment, error) {
	if status == "" {
		return s.payments.All()
	}
	if !status.Valid() {
		return nil, apperr.NewValidationError("status", fmt.Sprintf("unknown value %q", status))
	}
	return s.payments.Where("status", status)
}

// Confirm marks a pending payment record as received.
func (s *PaymentService) Confirm(paymentID uuid.UUID) (*models.Payment, error) {
	p, err := s.payments.ByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentRecordPending {
		return nil, apperr.Invariant("payment is already %s", p.Status)
	}
	updated, err := s.payments.Update(paymentID, map[string]any{"status": models.PaymentRecordConfirmed})
	if err != nil {
		return nil, err
	}

	evt := PaymentEvent{
		UserID:    updated.UserID,
		Name:      updated.UserName,
		Amount:    updated.Amount,
		Currency:  rules.Currency,
		PaymentID: &updated.ID,
	}
	if u, err := s.users.ByID(updated.UserID); err == nil {
		evt.Email, evt.Phone, evt.PlanType, evt.Status = u.Email, u.Phone, u.PlanType, u.PaymentStatus
	}
	events.Fire(s.events, events.PaymentConfirmed, evt)
	return updated, nil
}

// SendReminder publishes a payment reminder for a user who owes money.
func (s *PaymentService) SendReminder(userID uuid.UUID) (*PaymentEvent, error) {
	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	q, err := rules.PriceFor(u.PlanType, u.PaymentStatus)
	if err != nil {
		return nil, err
	}
	if q.Due.IsZero() {
		return nil, ErrNothingDue
	}

	evt := &PaymentEvent{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		PlanType: u.PlanType,
		Status:   u.PaymentStatus,
		Amount:   q.Due,
		Currency: rules.Currency,
	}
	events.Fire(s.events, events.PaymentReminder, evt)
	slog.Info("payment reminder sent", "user_id", u.ID.String(), "amount", q.Due.String())
	return evt, nil
}
