package feedback

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/services"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

func setup(t *testing.T) (*Service, *gorm.DB, *models.User) {
	db := testutil.NewDB(t, New().Models()...)
	u := &models.User{
		Name: "Fathima", Email: uuid.NewString() + "@example.com", Phone: "050", Password: "x",
		Role: models.RoleUser, Status: models.RegistrationApproved, PlanType: models.PlanMonthly,
		PaymentStatus: models.PaymentPaid, TimePreference: models.PreferNight,
	}
	require.NoError(t, db.Create(u).Error)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return NewService(db, nil, func() time.Time { return clock }), db, u
}

func TestSubmitRatingBounds(t *testing.T) {
	svc, _, u := setup(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(u.ID, SubmitRequest{Rating: rating, Message: "Lovely sambar"})
		require.ErrorIs(t, err, apperr.ErrValidation, "rating %d", rating)
		assert.Contains(t, apperr.Fields(err), "rating")
	}

	for _, rating := range []int{1, 5} {
		f, err := svc.Submit(u.ID, SubmitRequest{Rating: rating, Message: "Lovely sambar"})
		require.NoError(t, err)
		assert.Equal(t, models.ReviewPending, f.Status)
		assert.Equal(t, "Fathima", f.UserName)
	}

	_, err := svc.Submit(u.ID, SubmitRequest{Rating: 4, Message: "   "})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Fields(err), "message")
}

func TestSubmitRunsContentFilter(t *testing.T) {
	svc, db, u := setup(t)

	_, err := svc.Submit(u.ID, SubmitRequest{Rating: 5, Message: "Order direct at www.cheap-meals.com"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, services.RejectionMessage(services.ReasonURL), apperr.Fields(err)["message"])

	var count int64
	require.NoError(t, db.Model(&Feedback{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOnlyApprovedFeedbackIsPublic(t *testing.T) {
	svc, _, u := setup(t)

	good, err := svc.Submit(u.ID, SubmitRequest{Rating: 5, Message: "Best puttu in Ajman"})
	require.NoError(t, err)
	ok, err := svc.Submit(u.ID, SubmitRequest{Rating: 4, Message: "Avial was a bit salty"})
	require.NoError(t, err)
	bad, err := svc.Submit(u.ID, SubmitRequest{Rating: 1, Message: "Late again"})
	require.NoError(t, err)

	approved, err := svc.Approve(good.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAt)
	_, err = svc.Approve(ok.ID)
	require.NoError(t, err)
	rejected, err := svc.Reject(bad.ID)
	require.NoError(t, err)
	assert.Nil(t, rejected.ApprovedAt)

	public, err := svc.Approved()
	require.NoError(t, err)
	assert.Len(t, public.Feedback, 2)
	assert.InDelta(t, 4.5, public.AverageRating, 0.001)

	_, err = svc.Approve(bad.ID)
	assert.ErrorIs(t, err, apperr.ErrInvariant)

	rejectedOnly, err := svc.List(ListQuery{Status: models.ReviewRejected})
	require.NoError(t, err)
	require.Len(t, rejectedOnly, 1)
	assert.Equal(t, bad.ID, rejectedOnly[0].ID)

	all, err := svc.List(ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.Mine(u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestApprovedIsEmptyWithoutFeedback(t *testing.T) {
	svc, _, _ := setup(t)

	public, err := svc.Approved()
	require.NoError(t, err)
	assert.Empty(t, public.Feedback)
	assert.Zero(t, public.AverageRating)
}
