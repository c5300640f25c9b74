package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

func TestApproveAndRejectAreForwardOnly(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &testutil.Recorder{}
	svc := NewUserService(db, rec)

	u := seedUser(t, db, "p@example.com", func(u *models.User) { u.Status = models.RegistrationPending })

	got, err := svc.Approve(u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, got.Status)

	_, err = svc.Reject(u.ID)
	assert.ErrorIs(t, err, apperr.ErrInvariant)

	stored, err := svc.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, stored.Status)
	assert.Equal(t, []string{events.UserApproved}, rec.Keys())
}

func TestApproveMissingUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	_, err := svc.Approve(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAdvancePaymentCycle(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &testutil.Recorder{}
	svc := NewUserService(db, rec)
	u := seedUser(t, db, "pay@example.com", func(u *models.User) { u.PaymentStatus = models.PaymentPaid })

	want := []models.PaymentStatus{models.PaymentHalfPaid, models.PaymentUnpaid, models.PaymentPaid}
	for _, w := range want {
		got, err := svc.AdvancePayment(u.ID)
		require.NoError(t, err)
		assert.Equal(t, w, got.PaymentStatus)
	}
	assert.Len(t, rec.Keys(), 3)
}

func TestAdvancePaymentWeeklyRejected(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	u := seedUser(t, db, "weekly@example.com", func(u *models.User) { u.PlanType = models.PlanWeekly })

	_, err := svc.AdvancePayment(u.ID)
	assert.ErrorIs(t, err, apperr.ErrInvariant)

	stored, _ := svc.Get(u.ID)
	assert.Equal(t, models.PaymentUnpaid, stored.PaymentStatus)
}

func TestSetDeliveryTime(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	night := seedUser(t, db, "night@example.com", func(u *models.User) {
		u.TimePreference = models.PreferNight
		u.EstimatedDeliveryTime = "09:00 PM"
	})
	both := seedUser(t, db, "both@example.com", func(u *models.User) { u.TimePreference = models.PreferBoth })

	got, err := svc.SetDeliveryTime(night.ID, dto.SetDeliveryTimeRequest{Time: "08:30 PM"})
	require.NoError(t, err)
	assert.Equal(t, "08:30 PM", got.EstimatedDeliveryTime)

	_, err = svc.SetDeliveryTime(night.ID, dto.SetDeliveryTimeRequest{Time: "01:00 PM"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.SetDeliveryTime(night.ID, dto.SetDeliveryTimeRequest{Time: "8:30pm"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.SetDeliveryTime(both.ID, dto.SetDeliveryTimeRequest{Time: "01:30 PM"})
	assert.ErrorIs(t, err, ErrDeliveryTimeLocked)
}

func TestListFiltersAndCounts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	seedUser(t, db, "anu@example.com", func(u *models.User) { u.Name = "Anu Thomas"; u.Status = models.RegistrationPending })
	seedUser(t, db, "biju@example.com", func(u *models.User) { u.Name = "Biju"; u.TimePreference = models.PreferNight })
	seedUser(t, db, "chef@kitchen.ae", func(u *models.User) { u.Role = models.RoleAdmin })

	all, err := svc.List(dto.UserListQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Users, 2)
	assert.Equal(t, dto.UserCounts{Total: 2, Pending: 1, Approved: 1}, all.Counts)

	pending, err := svc.List(dto.UserListQuery{Status: models.RegistrationPending})
	require.NoError(t, err)
	require.Len(t, pending.Users, 1)
	assert.Equal(t, "Anu Thomas", pending.Users[0].Name)

	night, err := svc.List(dto.UserListQuery{TimePreference: models.PreferNight, Search: "BIJU"})
	require.NoError(t, err)
	assert.Len(t, night.Users, 1)

	_, err = svc.List(dto.UserListQuery{Status: "archived"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func validUpdate() dto.UpdateUserRequest {
	return dto.UpdateUserRequest{
		Name:                  "Anu T",
		Phone:                 "050 111 2222",
		Email:                 "anu.t@example.com",
		Address:               "Ajman Corniche",
		PlanType:              models.PlanYearly,
		TimePreference:        models.PreferNight,
		EstimatedDeliveryTime: "07:30 PM",
	}
}

func TestUpdateUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	u := seedUser(t, db, "anu@example.com", nil)

	days := 12
	req := validUpdate()
	req.DaysActive = &days
	req.Password = "newpass"
	got, err := svc.Update(u.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.PlanYearly, got.PlanType)
	assert.Equal(t, "07:30 PM", got.EstimatedDeliveryTime)
	assert.Equal(t, 12, got.DaysActive)
	assert.Equal(t, "anu.t@example.com", got.Email)
	assert.NotEqual(t, u.Password, got.Password)
}

func TestUpdateUserRejectsBeforeWriting(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	u := seedUser(t, db, "anu@example.com", nil)
	seedUser(t, db, "taken@example.com", nil)

	bad := validUpdate()
	bad.PlanType = models.PlanWeekly
	_, err := svc.Update(u.ID, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = validUpdate()
	bad.TimePreference = "evening"
	bad.Email = "not-an-email"
	_, err = svc.Update(u.ID, bad)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Len(t, apperr.Fields(err), 2)

	bad = validUpdate()
	bad.EstimatedDeliveryTime = "01:00 PM"
	_, err = svc.Update(u.ID, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = validUpdate()
	bad.Email = "taken@example.com"
	_, err = svc.Update(u.ID, bad)
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, _ := svc.Get(u.ID)
	assert.Equal(t, "anu@example.com", stored.Email)
	assert.Equal(t, models.PlanMonthly, stored.PlanType)
}

func TestUpdateToBothFixesTime(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	u := seedUser(t, db, "anu@example.com", nil)

	req := validUpdate()
	req.TimePreference = models.PreferBoth
	req.EstimatedDeliveryTime = "11:00 AM"
	got, err := svc.Update(u.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "01:00 PM", got.EstimatedDeliveryTime)
}

func TestDeleteUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	u := seedUser(t, db, "gone@example.com", nil)
	require.NoError(t, db.Create(&models.RefreshToken{UserID: u.ID, TokenHash: "h", ExpiresAt: time.Now()}).Error)

	require.NoError(t, svc.Delete(u.ID))
	_, err := svc.Get(u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var tokens int64
	db.Model(&models.RefreshToken{}).Count(&tokens)
	assert.Zero(t, tokens)

	assert.ErrorIs(t, svc.Delete(u.ID), apperr.ErrNotFound)
}

func TestPlanDetails(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(db, events.Noop{})
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	expiry := now.Add(36 * time.Hour)
	u := seedUser(t, db, "plan@example.com", func(u *models.User) {
		u.PaymentStatus = models.PaymentHalfPaid
		u.ExpiryDate = &expiry
		u.TimePreference = models.PreferBoth
	})
	weekly := seedUser(t, db, "weekly@example.com", func(u *models.User) { u.PlanType = models.PlanWeekly })

	got, err := svc.PlanDetails(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Quote)
	assert.Equal(t, "375", got.Quote.Due.String())
	require.NotNil(t, got.DaysRemaining)
	assert.Equal(t, 2, *got.DaysRemaining)
	assert.Equal(t, []string{"01:00 PM", "09:00 PM"}, got.DeliveryTimes)
	assert.False(t, got.DeliveryTimeEditable)

	w, err := svc.PlanDetails(weekly.ID)
	require.NoError(t, err)
	assert.Nil(t, w.Quote)
	assert.Nil(t, w.DaysRemaining)
}
