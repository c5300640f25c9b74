package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
)

// PlanDetailsResponse is the subscriber's view of their plan.
type PlanDetailsResponse struct {
	PlanType             models.PlanType           `json:"plan_type"`
	Status               models.RegistrationStatus `json:"status"`
	PaymentStatus        models.PaymentStatus      `json:"payment_status"`
	Currency             string                    `json:"currency"`
	Quote                *rules.Quote              `json:"quote,omitempty"`
	JoinedDate           time.Time                 `json:"joined_date"`
	ExpiryDate           *time.Time                `json:"expiry_date,omitempty"`
	DaysRemaining        *int                      `json:"days_remaining,omitempty"`
	DaysActive           int                       `json:"days_active"`
	TimePreference       models.TimePreference     `json:"time_preference"`
	DeliveryTimes        []string                  `json:"delivery_times"`
	DeliveryTimeEditable bool                      `json:"delivery_time_editable"`
}

// PaymentStatusResponse is what a subscriber sees on the payment screen.
type PaymentStatusResponse struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Currency      string               `json:"currency"`
	Quote         *rules.Quote         `json:"quote,omitempty"`
	Bank          config.BankDetails   `json:"bank"`
	Payments      []models.Payment     `json:"payments"`
}

type PaymentIntentRequest struct {
	Method        models.PaymentMethod `json:"method" validate:"required,enum"`
	TransactionID string               `json:"transaction_id" validate:"max=100"`
}

// UserListQuery filters the admin user list. Empty fields match everything.
type UserListQuery struct {
	Status         models.RegistrationStatus `query:"status" json:"status" validate:"omitempty,enum"`
	TimePreference models.TimePreference     `query:"time_preference" json:"time_preference" validate:"omitempty,enum"`
	Search         string                    `query:"search" json:"search"`
}

type UserCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type UserListResponse struct {
	Users  []models.User `json:"users"`
	Counts UserCounts    `json:"counts"`
}

type SetDeliveryTimeRequest struct {
	Time string `json:"estimated_delivery_time" validate:"required,clock"`
}

// UpdateUserRequest is the admin's full edit of a subscriber. An empty
// password keeps the current one.
type UpdateUserRequest struct {
	Name                  string                `json:"name" validate:"required,max=120"`
	Phone                 string                `json:"phone" validate:"required,max=40"`
	Email                 string                `json:"email" validate:"required,email,max=255"`
	Password              string                `json:"password" validate:"omitempty,min=6,max=72"`
	Address               string                `json:"address" validate:"required"`
	Location              *LocationInput        `json:"location" validate:"omitempty"`
	PlanType              models.PlanType       `json:"plan_type" validate:"required,enum"`
	TimePreference        models.TimePreference `json:"time_preference" validate:"required,enum"`
	EstimatedDeliveryTime string                `json:"estimated_delivery_time" validate:"required,clock"`
	ExpiryDate            *time.Time            `json:"expiry_date"`
	DaysActive            *int                  `json:"days_active" validate:"omitempty,gte=0"`
}

// PaymentOverviewRow is one subscriber on the admin payment board.
type PaymentOverviewRow struct {
	UserID        uuid.UUID            `json:"user_id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	PlanType      models.PlanType      `json:"plan_type"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Quote         *rules.Quote         `json:"quote,omitempty"`
}

type PaymentOverviewQuery struct {
	PaymentStatus models.PaymentStatus `query:"payment_status" json:"payment_status" validate:"omitempty,enum"`
	Search        string               `query:"search" json:"search"`
}

type PaymentOverviewResponse struct {
	Currency      string               `json:"currency"`
	Rows          []PaymentOverviewRow `json:"rows"`
	Collected     decimal.Decimal      `json:"collected"`
	Pending       decimal.Decimal      `json:"pending"`
	UnpricedUsers int                  `json:"unpriced_users"`
}

type AnalyticsResponse struct {
	Currency string              `json:"currency"`
	Users    rules.Metrics       `json:"users"`
	Payments rules.PaymentLedger `json:"payments"`
}
