package deliveries

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/services"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *gorm.DB, *testutil.Recorder) {
	db := testutil.NewDB(t, New().Models()...)
	rec := &testutil.Recorder{}
	return NewService(db, rec, func() time.Time { return now }), db, rec
}

func subscriber(t *testing.T, db *gorm.DB, pref models.TimePreference, at string) *models.User {
	t.Helper()
	u := &models.User{
		Name: "Anjali", Email: uuid.NewString() + "@example.com", Phone: "050", Password: "x",
		Role: models.RoleUser, Status: models.RegistrationApproved, PlanType: models.PlanMonthly,
		PaymentStatus: models.PaymentPaid, TimePreference: pref, EstimatedDeliveryTime: at,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestSubmitRecordsCurrentTime(t *testing.T) {
	svc, db, _ := setup(t)
	u := subscriber(t, db, models.PreferAfternoon, "01:00 PM")

	r, err := svc.Submit(u.ID, SubmitRequest{
		RequestedTimeSlot: models.SlotAfternoon,
		RequestedTime:     "02:30 PM",
		Reason:            "  office lunch break moved  ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, r.Status)
	assert.Equal(t, "01:00 PM", r.CurrentTime)
	assert.Equal(t, "Anjali", r.UserName)
	assert.Equal(t, "office lunch break moved", r.Reason)
	assert.True(t, r.SubmittedAt.Equal(now))

	_, err = svc.Submit(u.ID, SubmitRequest{RequestedTimeSlot: models.SlotAfternoon, RequestedTime: "12:30 PM", Reason: "again"})
	assert.ErrorIs(t, err, ErrRequestPending)

	mine, err := svc.Mine(u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSubmitRejections(t *testing.T) {
	svc, db, _ := setup(t)
	single := subscriber(t, db, models.PreferNight, "09:00 PM")
	both := subscriber(t, db, models.PreferBoth, "01:00 PM")

	_, err := svc.Submit(both.ID, SubmitRequest{RequestedTimeSlot: models.SlotNight, RequestedTime: "08:00 PM", Reason: "late"})
	assert.ErrorIs(t, err, services.ErrDeliveryTimeLocked)

	_, err = svc.Submit(single.ID, SubmitRequest{RequestedTimeSlot: models.SlotNight, RequestedTime: "11:00 PM", Reason: "late"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Fields(err), "requested_time")

	_, err = svc.Submit(single.ID, SubmitRequest{RequestedTimeSlot: "morning", RequestedTime: "8pm"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	fields := apperr.Fields(err)
	assert.Contains(t, fields, "requested_time_slot")
	assert.Contains(t, fields, "requested_time")
	assert.Contains(t, fields, "reason")

	_, err = svc.Submit(single.ID, SubmitRequest{RequestedTimeSlot: models.SlotNight, RequestedTime: "08:00 PM", Reason: "   "})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "is required", apperr.Fields(err)["reason"])

	_, err = svc.Submit(uuid.New(), SubmitRequest{RequestedTimeSlot: models.SlotNight, RequestedTime: "08:00 PM", Reason: "late"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestApproveWritesThroughToUser(t *testing.T) {
	svc, db, rec := setup(t)
	u := subscriber(t, db, models.PreferAfternoon, "01:00 PM")
	r, err := svc.Submit(u.ID, SubmitRequest{RequestedTimeSlot: models.SlotNight, RequestedTime: "08:00 PM", Reason: "working days"})
	require.NoError(t, err)

	got, err := svc.Approve(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, got.Status)
	require.NotNil(t, got.ProcessedAt)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	assert.Equal(t, "08:00 PM", reloaded.EstimatedDeliveryTime)
	assert.Equal(t, models.PreferNight, reloaded.TimePreference)
	assert.Equal(t, []string{events.DeliveryApproved}, rec.Keys())

	_, err = svc.Approve(r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvariant)
	_, err = svc.Reject(r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvariant)
}

func TestApproveRefusedAfterSwitchToBoth(t *testing.T) {
	svc, db, rec := setup(t)
	u := subscriber(t, db, models.PreferAfternoon, "01:00 PM")
	r, err := svc.Submit(u.ID, SubmitRequest{RequestedTimeSlot: models.SlotAfternoon, RequestedTime: "02:00 PM", Reason: "school run"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).Update("time_preference", models.PreferBoth).Error)

	_, err = svc.Approve(r.ID)
	assert.ErrorIs(t, err, services.ErrDeliveryTimeLocked)

	var stored Request
	require.NoError(t, db.First(&stored, "id = ?", r.ID).Error)
	assert.Equal(t, models.ReviewPending, stored.Status)
	assert.Empty(t, rec.Keys())
}

func TestRejectLeavesUserAlone(t *testing.T) {
	svc, db, rec := setup(t)
	u := subscriber(t, db, models.PreferAfternoon, "01:00 PM")
	r, err := svc.Submit(u.ID, SubmitRequest{RequestedTimeSlot: models.SlotAfternoon, RequestedTime: "03:00 PM", Reason: "gym"})
	require.NoError(t, err)

	got, err := svc.Reject(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, got.Status)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	assert.Equal(t, "01:00 PM", reloaded.EstimatedDeliveryTime)
	assert.Equal(t, []string{events.DeliveryRejected}, rec.Keys())

	// A closed request no longer blocks a new one.
	_, err = svc.Submit(u.ID, SubmitRequest{RequestedTimeSlot: models.SlotAfternoon, RequestedTime: "12:00 PM", Reason: "earlier"})
	require.NoError(t, err)

	list, err := svc.List(ListQuery{Status: models.ReviewPending})
	require.NoError(t, err)
	assert.Len(t, list.Requests, 1)
	assert.Equal(t, Counts{Total: 2, Pending: 1, Rejected: 1}, list.Counts)

	_, err = svc.List(ListQuery{Status: "done"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
