package rules

import (
	"testing"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFor(t *testing.T) {
	tests := []struct {
		plan   models.PlanType
		status models.PaymentStatus
		due    string
		paid   string
	}{
		{models.PlanMonthly, models.PaymentPaid, "0", "750"},
		{models.PlanMonthly, models.PaymentHalfPaid, "375", "375"},
		{models.PlanMonthly, models.PaymentUnpaid, "750", "0"},
		{models.PlanYearly, models.PaymentPaid, "0", "8000"},
		{models.PlanYearly, models.PaymentHalfPaid, "4000", "4000"},
		{models.PlanYearly, models.PaymentUnpaid, "8000", "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan)+"/"+string(tt.status), func(t *testing.T) {
			q, err := PriceFor(tt.plan, tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.due, q.Due.String())
			assert.Equal(t, tt.paid, q.Paid.String())
			assert.True(t, q.Due.Add(q.Paid).Equal(q.Full))
			assert.Equal(t, tt.status == models.PaymentPaid, q.Due.IsZero())
		})
	}
}

func TestWeeklyIsNotPriced(t *testing.T) {
	_, err := PriceFor(models.PlanWeekly, models.PaymentPaid)
	require.Error(t, err)
	assert.True(t, IsNotPriced(err))
	assert.ErrorIs(t, err, apperr.ErrInvariant)
	assert.False(t, IsPriced(models.PlanWeekly))
	assert.True(t, IsPriced(models.PlanMonthly))
}

func TestPriceForUnknownStatus(t *testing.T) {
	_, err := PriceFor(models.PlanMonthly, "overdue")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
