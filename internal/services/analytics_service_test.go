package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

func TestDashboardExcludesAdmins(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAnalyticsService(db)
	seedUser(t, db, "paid@example.com", func(u *models.User) { u.PaymentStatus = models.PaymentPaid })
	seedUser(t, db, "half@example.com", func(u *models.User) { u.PaymentStatus = models.PaymentHalfPaid })
	admin := seedUser(t, db, "chef@kitchen.ae", func(u *models.User) {
		u.Role = models.RoleAdmin
		u.PaymentStatus = models.PaymentPaid
	})
	require.NoError(t, db.Create(&models.Payment{
		UserID: admin.ID, Amount: decimal.NewFromInt(375), Method: models.MethodCash, Status: models.PaymentRecordConfirmed,
	}).Error)

	got, err := svc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Users.TotalUsers)
	assert.Equal(t, "1125", got.Users.MonthlyRevenue.String())
	assert.Equal(t, "375", got.Users.PendingRevenue.String())
	assert.Equal(t, 50, got.Users.PaymentSuccessRate)
	assert.Equal(t, 1, got.Payments.ConfirmedCount)
}

func TestDashboardEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	got, err := NewAnalyticsService(db).Dashboard()
	require.NoError(t, err)
	assert.Zero(t, got.Users.TotalUsers)
	assert.Zero(t, got.Users.PaymentSuccessRate)
	assert.True(t, got.Payments.ConfirmedAmount.IsZero())
}
