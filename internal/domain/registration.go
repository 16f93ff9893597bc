package domain

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// ValidRegistrationStatus reports whether s is a known lifecycle status.
func ValidRegistrationStatus(s string) bool {
	switch RegistrationStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Institution string

const (
	InstitutionEngineering Institution = "Engineering"
	InstitutionPolytechnic Institution = "Polytechnic"
)

// ValidInstitution reports whether s is a known institution kind.
func ValidInstitution(s string) bool {
	switch Institution(s) {
	case InstitutionEngineering, InstitutionPolytechnic:
		return true
	}
	return false
}

type AcademicYear string

const (
	YearFirst  AcademicYear = "First"
	YearSecond AcademicYear = "Second"
	YearThird  AcademicYear = "Third"
	YearFourth AcademicYear = "Fourth"
	YearFinal  AcademicYear = "Final"
)

type Membership string

const (
	MemberYes Membership = "Yes"
	MemberNo  Membership = "No"
)

type StayPreference string

const (
	WithStay    StayPreference = "With Stay"
	WithoutStay StayPreference = "Without Stay"
)

type PaymentStatus string

const (
	PaymentVerified PaymentStatus = "verified"
	PaymentPending  PaymentStatus = "pending"
	PaymentFailed   PaymentStatus = "failed"
)

// Registration is the central entity: one participant's submission and its
// review state. Monetary amounts are whole currency units.
type Registration struct {
	ID            int32  `json:"id"`
	ReferenceCode string `json:"registrationId"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	Institution Institution  `json:"institution"`
	College     string       `json:"college"`
	Department  string       `json:"department"`
	Year        AcademicYear `json:"year"`

	IsMember         Membership `json:"isMember"`
	MembershipNumber string     `json:"membershipNumber,omitempty"`

	StayPreference  StayPreference `json:"stayPreference"`
	StayDates       []string       `json:"stayDates"` // yyyy-mm-dd
	StayDays        int            `json:"stayDays"`
	StayPricePerDay int            `json:"stayPricePerDay"`
	StayTotalAmount int            `json:"stayTotalAmount"`

	AmbassadorCode string `json:"ambassadorCode,omitempty"`

	BaseAmount    int           `json:"baseAmount"`
	TotalAmount   int           `json:"totalAmount"`
	TransactionID string        `json:"transactionId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	Status           RegistrationStatus `json:"registrationStatus"`
	RegistrationDate time.Time          `json:"registrationDate"`
	ApprovedBy       string             `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time         `json:"approvedAt,omitempty"`
	RejectedAt       *time.Time         `json:"rejectedAt,omitempty"`
	RejectionReason  string             `json:"rejectionReason,omitempty"`
}

// HasStay reports whether the registration holds an accommodation slot when
// its status is pending or approved.
func (r *Registration) HasStay() bool {
	return r.StayPreference == WithStay
}

// StatusSummary is the safe field subset exposed by the public
// check-status lookup.
type StatusSummary struct {
	ReferenceCode    string             `json:"registrationId"`
	FullName         string             `json:"fullName"`
	Email            string             `json:"email"`
	Institution      Institution        `json:"institution"`
	TransactionID    string             `json:"transactionId"`
	StayDates        []string           `json:"stayDates"`
	StayDays         int                `json:"stayDays"`
	BaseAmount       int                `json:"baseAmount"`
	TotalAmount      int                `json:"totalAmount"`
	AmbassadorCode   string             `json:"ambassadorCode,omitempty"`
	Status           RegistrationStatus `json:"registrationStatus"`
	RegistrationDate time.Time          `json:"registrationDate"`
}

// Summary returns the public view of a registration.
func (r *Registration) Summary() StatusSummary {
	return StatusSummary{
		ReferenceCode:    r.ReferenceCode,
		FullName:         r.FullName,
		Email:            r.Email,
		Institution:      r.Institution,
		TransactionID:    r.TransactionID,
		StayDates:        r.StayDates,
		StayDays:         r.StayDays,
		BaseAmount:       r.BaseAmount,
		TotalAmount:      r.TotalAmount,
		AmbassadorCode:   r.AmbassadorCode,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
	}
}

// ListFilter narrows admin registration listings.
type ListFilter struct {
	Status      string
	Institution string
	Search      string
}

// Stats is the aggregate snapshot served to the admin dashboard.
type Stats struct {
	Total            int64            `json:"totalRegistrations"`
	Pending          int64            `json:"pendingRegistrations"`
	Approved         int64            `json:"approvedRegistrations"`
	Rejected         int64            `json:"rejectedRegistrations"`
	ApprovedRevenue  int64            `json:"totalRevenue"`
	ByInstitution    map[string]int64 `json:"institutionStats"`
	ByStayPreference map[string]int64 `json:"stayPreferenceStats"`
	WithAmbassador   int64            `json:"ambassadorCount"`
	TopAmbassadors   []AmbassadorRank `json:"topAmbassadors"`
}

// AmbassadorRank is one referral code with its usage count.
type AmbassadorRank struct {
	Code  string `json:"code"`
	Count int64  `json:"count"`
}
