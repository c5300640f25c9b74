// Package rules holds the pure business rules of the kitchen: status
// transitions, plan pricing, analytics and the menu cutoff. Nothing here
// touches the store; callers load records, call a rule and persist the result.
package rules

import (
	"strings"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// Axis names one of the independent status fields an admin can move.
type Axis string

const (
	AxisRegistration    Axis = "registration"
	AxisPayment         Axis = "payment"
	AxisDeliveryRequest Axis = "delivery_request"
	AxisFeedback        Axis = "feedback"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionAdvance Action = "advance"
)

// Transition is one allowed edge of a status axis.
type Transition struct {
	Axis   Axis
	From   string
	Action Action
	To     string
}

var transitions = []Transition{
	{AxisRegistration, string(models.RegistrationPending), ActionApprove, string(models.RegistrationApproved)},
	{AxisRegistration, string(models.RegistrationPending), ActionReject, string(models.RegistrationRejected)},

	// Payment standing cycles on a single control.
	{AxisPayment, string(models.PaymentPaid), ActionAdvance, string(models.PaymentHalfPaid)},
	{AxisPayment, string(models.PaymentHalfPaid), ActionAdvance, string(models.PaymentUnpaid)},
	{AxisPayment, string(models.PaymentUnpaid), ActionAdvance, string(models.PaymentPaid)},

	{AxisDeliveryRequest, string(models.ReviewPending), ActionApprove, string(models.ReviewApproved)},
	{AxisDeliveryRequest, string(models.ReviewPending), ActionReject, string(models.ReviewRejected)},

	{AxisFeedback, string(models.ReviewPending), ActionApprove, string(models.ReviewApproved)},
	{AxisFeedback, string(models.ReviewPending), ActionReject, string(models.ReviewRejected)},
}

type transitionKey struct {
	axis   Axis
	from   string
	action Action
}

var transitionMap = func() map[transitionKey]string {
	m := make(map[transitionKey]string, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.Axis, t.From, t.Action}] = t.To
	}
	return m
}()

// NextStatus returns the status reached from current by action on axis.
// An undefined edge yields an apperr.ErrInvariant error listing what is allowed.
func NextStatus(axis Axis, current string, action Action) (string, error) {
	if next, ok := transitionMap[transitionKey{axis, current, action}]; ok {
		return next, nil
	}
	return "", apperr.Invariant("cannot %s %s status %q; allowed: %s",
		action, axis, current, describeFrom(axis, current))
}

// ActionsFrom lists the actions defined for current on axis, in table order.
func ActionsFrom(axis Axis, current string) []Action {
	var out []Action
	for _, t := range transitions {
		if t.Axis == axis && t.From == current {
			out = append(out, t.Action)
		}
	}
	return out
}

func describeFrom(axis Axis, current string) string {
	actions := ActionsFrom(axis, current)
	if len(actions) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// NextRegistrationStatus is the typed form of NextStatus for AxisRegistration.
func NextRegistrationStatus(current models.RegistrationStatus, action Action) (models.RegistrationStatus, error) {
	next, err := NextStatus(AxisRegistration, string(current), action)
	return models.RegistrationStatus(next), err
}

// NextPaymentStatus advances the payment cycle paid -> half_paid -> unpaid -> paid.
func NextPaymentStatus(current models.PaymentStatus) (models.PaymentStatus, error) {
	next, err := NextStatus(AxisPayment, string(current), ActionAdvance)
	return models.PaymentStatus(next), err
}

// NextReviewStatus moves a delivery request or a feedback entry.
func NextReviewStatus(axis Axis, current models.ReviewStatus, action Action) (models.ReviewStatus, error) {
	next, err := NextStatus(axis, string(current), action)
	return models.ReviewStatus(next), err
}
