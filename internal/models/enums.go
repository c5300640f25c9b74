package models

// Role separates kitchen staff from subscribers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// RegistrationStatus is the admin approval state of a subscriber.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
	PlanWeekly  PlanType = "weekly"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanMonthly, PlanYearly, PlanWeekly:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentHalfPaid PaymentStatus = "half_paid"
	PaymentUnpaid   PaymentStatus = "unpaid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentHalfPaid, PaymentUnpaid:
		return true
	}
	return false
}

// TimePreference is the set of daily delivery windows a subscriber is enrolled in.
type TimePreference string

const (
	PreferAfternoon TimePreference = "afternoon"
	PreferNight     TimePreference = "night"
	PreferBoth      TimePreference = "both"
)

func (p TimePreference) Valid() bool {
	switch p {
	case PreferAfternoon, PreferNight, PreferBoth:
		return true
	}
	return false
}

// TimeSlot is a single delivery window.
type TimeSlot string

const (
	SlotAfternoon TimeSlot = "afternoon"
	SlotNight     TimeSlot = "night"
)

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotAfternoon, SlotNight:
		return true
	}
	return false
}

// ReviewStatus is shared by delivery-time requests and feedback moderation.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

type BannerType string

const (
	BannerInfo      BannerType = "info"
	BannerWarning   BannerType = "warning"
	BannerSuccess   BannerType = "success"
	BannerEmergency BannerType = "emergency"
)

func (t BannerType) Valid() bool {
	switch t {
	case BannerInfo, BannerWarning, BannerSuccess, BannerEmergency:
		return true
	}
	return false
}

// NotificationType has no "success" variant.
type NotificationType string

const (
	NotificationInfo      NotificationType = "info"
	NotificationWarning   NotificationType = "warning"
	NotificationEmergency NotificationType = "emergency"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationEmergency:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer:
		return true
	}
	return false
}

// PaymentRecordStatus tracks a single payment record, independent of User.PaymentStatus.
type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordConfirmed PaymentRecordStatus = "confirmed"
)

func (s PaymentRecordStatus) Valid() bool {
	switch s {
	case PaymentRecordPending, PaymentRecordConfirmed:
		return true
	}
	return false
}
