package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		Location:         time.UTC,
		Bank: config.BankDetails{
			BankName:  "Emirates NBD",
			IBAN:      "AE070260001234567890123",
			SwiftCode: "EBILAEAD",
		},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// seedUser inserts an approved monthly afternoon subscriber, then applies mutate.
func seedUser(t *testing.T, db *gorm.DB, email string, mutate func(*models.User)) *models.User {
	t.Helper()
	u := &models.User{
		Name:                  "Subscriber " + email,
		Phone:                 "050 000 0000",
		Email:                 email,
		Password:              "not-a-hash",
		Role:                  models.RoleUser,
		Address:               "Al Nuaimiya, Ajman",
		Status:                models.RegistrationApproved,
		PlanType:              models.PlanMonthly,
		PaymentStatus:         models.PaymentUnpaid,
		TimePreference:        models.PreferAfternoon,
		EstimatedDeliveryTime: rules.AfternoonDeliveryTime,
		JoinedDate:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
