package rules

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(plan models.PlanType, pay models.PaymentStatus, pref models.TimePreference, status models.RegistrationStatus) models.User {
	return models.User{PlanType: plan, PaymentStatus: pay, TimePreference: pref, Status: status}
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil)
	assert.Zero(t, m.TotalUsers)
	assert.Zero(t, m.PaymentSuccessRate)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.PendingRevenue.IsZero())
	assert.Equal(t, RevenueShare{}, m.RevenueShare)
	for _, f := range []float64{m.PaymentShares.Paid, m.PaymentShares.HalfPaid, m.PaymentShares.Unpaid,
		m.TimePreferenceShares.Afternoon, m.TimePreferenceShares.Night, m.TimePreferenceShares.Both} {
		assert.False(t, math.IsNaN(f))
		assert.Zero(t, f)
	}
}

func TestAggregatePaidAndHalfPaid(t *testing.T) {
	users := []models.User{
		user(models.PlanMonthly, models.PaymentPaid, models.PreferAfternoon, models.RegistrationApproved),
		user(models.PlanMonthly, models.PaymentHalfPaid, models.PreferNight, models.RegistrationPending),
	}
	m := Aggregate(users)

	assert.Equal(t, 2, m.TotalUsers)
	assert.Equal(t, "1125", m.MonthlyRevenue.String())
	assert.Equal(t, "375", m.PendingRevenue.String())
	assert.Equal(t, 50, m.PaymentSuccessRate)
	assert.Equal(t, 1, m.Registration.Approved)
	assert.Equal(t, 1, m.Registration.Pending)
	assert.Equal(t, 50.0, m.TimePreferenceShares.Night)

	assert.Equal(t, "1125", m.CollectedRevenue.String())
	assert.Equal(t, "375", m.OutstandingRevenue.String())
	assert.Equal(t, 100, m.RevenueShare.Monthly+m.RevenueShare.Yearly)
}

func TestAggregateCountsUnpriced(t *testing.T) {
	users := []models.User{
		user(models.PlanWeekly, models.PaymentUnpaid, models.PreferBoth, models.RegistrationPending),
		user(models.PlanYearly, models.PaymentUnpaid, models.PreferBoth, models.RegistrationPending),
	}
	m := Aggregate(users)
	assert.Equal(t, 1, m.UnpricedUsers)
	assert.True(t, m.OutstandingRevenue.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 2, m.TimePreference.Both)
}

func TestAggregateOrderIndependent(t *testing.T) {
	plans := []models.PlanType{models.PlanMonthly, models.PlanYearly, models.PlanWeekly}
	pays := []models.PaymentStatus{models.PaymentPaid, models.PaymentHalfPaid, models.PaymentUnpaid}
	prefs := []models.TimePreference{models.PreferAfternoon, models.PreferNight, models.PreferBoth}
	regs := []models.RegistrationStatus{models.RegistrationPending, models.RegistrationApproved, models.RegistrationRejected}

	r := rand.New(rand.NewSource(7))
	users := make([]models.User, 40)
	for i := range users {
		users[i] = user(plans[r.Intn(3)], pays[r.Intn(3)], prefs[r.Intn(3)], regs[r.Intn(3)])
	}

	want, err := json.Marshal(Aggregate(users))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		r.Shuffle(len(users), func(a, b int) { users[a], users[b] = users[b], users[a] })
		got, err := json.Marshal(Aggregate(users))
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}
}

func TestSummarizePayments(t *testing.T) {
	payments := []models.Payment{
		{Amount: decimal.NewFromInt(750), Method: models.MethodCash, Status: models.PaymentRecordConfirmed},
		{Amount: decimal.NewFromInt(375), Method: models.MethodBankTransfer, Status: models.PaymentRecordPending},
		{Amount: decimal.NewFromInt(375), Method: models.MethodBankTransfer, Status: models.PaymentRecordConfirmed},
	}
	l := SummarizePayments(payments)
	assert.Equal(t, 2, l.ConfirmedCount)
	assert.Equal(t, "1125", l.ConfirmedAmount.String())
	assert.Equal(t, 1, l.PendingCount)
	assert.Equal(t, "375", l.PendingAmount.String())
	assert.Equal(t, 2, l.ByMethod[models.MethodBankTransfer].Count)
	assert.Equal(t, "750", l.ByMethod[models.MethodBankTransfer].Amount.String())
}
