package rules

import (
	"math"

	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Flat dashboard rates. MonthlyRevenue and YearlyRevenue apply them to every
// user regardless of plan; CollectedRevenue and OutstandingRevenue use each
// user's own plan.
var (
	dashboardMonthly = pricing[models.PlanMonthly]
	dashboardYearly  = pricing[models.PlanYearly]
)

type RegistrationCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type PaymentCounts struct {
	Paid     int `json:"paid"`
	HalfPaid int `json:"half_paid"`
	Unpaid   int `json:"unpaid"`
}

type TimePreferenceCounts struct {
	Afternoon int `json:"afternoon"`
	Night     int `json:"night"`
	Both      int `json:"both"`
}

// PaymentShares are percent-of-total values, unrounded.
type PaymentShares struct {
	Paid     float64 `json:"paid"`
	HalfPaid float64 `json:"half_paid"`
	Unpaid   float64 `json:"unpaid"`
}

type TimePreferenceShares struct {
	Afternoon float64 `json:"afternoon"`
	Night     float64 `json:"night"`
	Both      float64 `json:"both"`
}

// PaymentAmounts is the amount attached to each payment bucket at the monthly rate.
type PaymentAmounts struct {
	Paid     decimal.Decimal `json:"paid"`
	HalfPaid decimal.Decimal `json:"half_paid"`
	Unpaid   decimal.Decimal `json:"unpaid"`
}

type RevenueShare struct {
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

type Metrics struct {
	TotalUsers int `json:"total_users"`

	Registration   RegistrationCounts   `json:"registration"`
	Payment        PaymentCounts        `json:"payment"`
	TimePreference TimePreferenceCounts `json:"time_preference"`

	PaymentShares        PaymentShares        `json:"payment_shares"`
	TimePreferenceShares TimePreferenceShares `json:"time_preference_shares"`
	PaymentAmounts       PaymentAmounts       `json:"payment_amounts"`

	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	YearlyRevenue      decimal.Decimal `json:"yearly_revenue"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	PendingRevenue     decimal.Decimal `json:"pending_revenue"`
	RevenueShare       RevenueShare    `json:"revenue_share"`
	PaymentSuccessRate int             `json:"payment_success_rate"`

	CollectedRevenue   decimal.Decimal `json:"collected_revenue"`
	OutstandingRevenue decimal.Decimal `json:"outstanding_revenue"`
	UnpricedUsers      int             `json:"unpriced_users"`
}

// Aggregate folds users into dashboard metrics. Only counts and sums are
// used, so the order of users does not matter. Empty input yields zeros.
func Aggregate(users []models.User) Metrics {
	m := Metrics{
		TotalUsers:         len(users),
		CollectedRevenue:   decimal.Zero,
		OutstandingRevenue: decimal.Zero,
	}

	for i := range users {
		u := &users[i]

		switch u.Status {
		case models.RegistrationPending:
			m.Registration.Pending++
		case models.RegistrationApproved:
			m.Registration.Approved++
		case models.RegistrationRejected:
			m.Registration.Rejected++
		}

		switch u.PaymentStatus {
		case models.PaymentPaid:
			m.Payment.Paid++
		case models.PaymentHalfPaid:
			m.Payment.HalfPaid++
		case models.PaymentUnpaid:
			m.Payment.Unpaid++
		}

		switch u.TimePreference {
		case models.PreferAfternoon:
			m.TimePreference.Afternoon++
		case models.PreferNight:
			m.TimePreference.Night++
		case models.PreferBoth:
			m.TimePreference.Both++
		}

		q, err := PriceFor(u.PlanType, u.PaymentStatus)
		if err != nil {
			if IsNotPriced(err) {
				m.UnpricedUsers++
			}
			continue
		}
		m.CollectedRevenue = m.CollectedRevenue.Add(q.Paid)
		m.OutstandingRevenue = m.OutstandingRevenue.Add(q.Due)
	}

	paid := decimal.NewFromInt(int64(m.Payment.Paid))
	half := decimal.NewFromInt(int64(m.Payment.HalfPaid))
	unpaid := decimal.NewFromInt(int64(m.Payment.Unpaid))

	m.MonthlyRevenue = paid.Mul(dashboardMonthly.Full).Add(half.Mul(dashboardMonthly.Half))
	m.YearlyRevenue = paid.Mul(dashboardYearly.Full).Add(half.Mul(dashboardYearly.Half))
	m.TotalRevenue = m.MonthlyRevenue.Add(m.YearlyRevenue)
	m.PendingRevenue = unpaid.Mul(dashboardMonthly.Full).Add(half.Mul(dashboardMonthly.Half))

	m.PaymentAmounts = PaymentAmounts{
		Paid:     paid.Mul(dashboardMonthly.Full),
		HalfPaid: half.Mul(dashboardMonthly.Half),
		Unpaid:   unpaid.Mul(dashboardMonthly.Full),
	}

	m.PaymentSuccessRate = roundedPercent(m.Payment.Paid, m.TotalUsers)
	m.PaymentShares = PaymentShares{
		Paid:     percent(m.Payment.Paid, m.TotalUsers),
		HalfPaid: percent(m.Payment.HalfPaid, m.TotalUsers),
		Unpaid:   percent(m.Payment.Unpaid, m.TotalUsers),
	}
	m.TimePreferenceShares = TimePreferenceShares{
		Afternoon: percent(m.TimePreference.Afternoon, m.TotalUsers),
		Night:     percent(m.TimePreference.Night, m.TotalUsers),
		Both:      percent(m.TimePreference.Both, m.TotalUsers),
	}

	if m.TotalRevenue.IsPositive() {
		hundred := decimal.NewFromInt(100)
		m.RevenueShare = RevenueShare{
			Monthly: int(m.MonthlyRevenue.Mul(hundred).Div(m.TotalRevenue).Round(0).IntPart()),
			Yearly:  int(m.YearlyRevenue.Mul(hundred).Div(m.TotalRevenue).Round(0).IntPart()),
		}
	}

	return m
}

// percent returns n/total*100, or 0 when total is 0.
func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func roundedPercent(n, total int) int {
	return int(math.Round(percent(n, total)))
}

type MethodTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentLedger summarises recorded payments.
type PaymentLedger struct {
	ConfirmedCount  int                                  `json:"confirmed_count"`
	ConfirmedAmount decimal.Decimal                      `json:"confirmed_amount"`
	PendingCount    int                                  `json:"pending_count"`
	PendingAmount   decimal.Decimal                      `json:"pending_amount"`
	ByMethod        map[models.PaymentMethod]MethodTotal `json:"by_method"`
}

// SummarizePayments totals payment records by status and method.
func SummarizePayments(payments []models.Payment) PaymentLedger {
	l := PaymentLedger{
		ConfirmedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
		ByMethod:        make(map[models.PaymentMethod]MethodTotal),
	}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentRecordConfirmed:
			l.ConfirmedCount++
			l.ConfirmedAmount = l.ConfirmedAmount.Add(p.Amount)
		case models.PaymentRecordPending:
			l.PendingCount++
			l.PendingAmount = l.PendingAmount.Add(p.Amount)
		}
		mt := l.ByMethod[p.Method]
		mt.Count++
		mt.Amount = mt.Amount.Add(p.Amount)
		l.ByMethod[p.Method] = mt
	}
	return l
}
