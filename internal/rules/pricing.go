package rules

import (
	"errors"
	"fmt"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Currency is the single unit every amount is expressed in.
const Currency = "AED"

// ErrPlanNotPriced is returned for plans that exist in the data model but have no price tier.
var ErrPlanNotPriced = fmt.Errorf("%w: plan has no pricing entry", apperr.ErrInvariant)

// PlanPrice is one row of the pricing table.
type PlanPrice struct {
	Full decimal.Decimal `json:"full"`
	Half decimal.Decimal `json:"half"`
}

var pricing = map[models.PlanType]PlanPrice{
	models.PlanMonthly: {Full: decimal.NewFromInt(750), Half: decimal.NewFromInt(375)},
	models.PlanYearly:  {Full: decimal.NewFromInt(8000), Half: decimal.NewFromInt(4000)},
}

// Quote is what a subscriber owes and has paid for the current plan period.
type Quote struct {
	Plan   models.PlanType      `json:"plan"`
	Status models.PaymentStatus `json:"payment_status"`
	Full   decimal.Decimal      `json:"full"`
	Due    decimal.Decimal      `json:"due"`
	Paid   decimal.Decimal      `json:"paid"`
}

// PlanPriceFor returns the pricing row for plan.
func PlanPriceFor(plan models.PlanType) (PlanPrice, error) {
	p, ok := pricing[plan]
	if !ok {
		return PlanPrice{}, fmt.Errorf("plan %q: %w", plan, ErrPlanNotPriced)
	}
	return p, nil
}

// IsPriced reports whether plan has a pricing entry.
func IsPriced(plan models.PlanType) bool {
	_, ok := pricing[plan]
	return ok
}

// PriceFor splits the plan price into due and paid for the given payment standing.
func PriceFor(plan models.PlanType, status models.PaymentStatus) (Quote, error) {
	p, err := PlanPriceFor(plan)
	if err != nil {
		return Quote{}, err
	}
	q := Quote{Plan: plan, Status: status, Full: p.Full}
	switch status {
	case models.PaymentPaid:
		q.Due, q.Paid = decimal.Zero, p.Full
	case models.PaymentHalfPaid:
		q.Due, q.Paid = p.Half, p.Full.Sub(p.Half)
	case models.PaymentUnpaid:
		q.Due, q.Paid = p.Full, decimal.Zero
	default:
		return Quote{}, apperr.NewValidationError("payment_status", fmt.Sprintf("unknown value %q", status))
	}
	return q, nil
}

// IsNotPriced reports whether err comes from an unpriced plan.
func IsNotPriced(err error) bool { return errors.Is(err, ErrPlanNotPriced) }
