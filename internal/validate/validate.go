package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/pricing"
)

const (
	msgFieldRequired    = "field is required"
	msgInvalidFormat    = "invalid format"
	msgBelowMinLen      = "field is below minimum length"
	msgNotAllowedValue  = "value is not one of the allowed options"
	msgUnknownViolation = "unknown validation error"
)

// Validator checks a raw submission against the field rules and the event's
// business rules, returning a normalized registration ready to persist.
type Validator struct {
	event    config.EventConfig
	calc     *pricing.Calculator
	fields   *validator.Validate
	allowed  map[string]struct{}
	maxStays int
}

// New builds a submission validator bound to one event configuration.
func New(event config.EventConfig, calc *pricing.Calculator) *Validator {
	allowed := make(map[string]struct{}, len(event.AllowedStayDates))
	for _, d := range event.AllowedStayDates {
		allowed[d] = struct{}{}
	}
	return &Validator{
		event:    event,
		calc:     calc,
		fields:   validator.New(),
		allowed:  allowed,
		maxStays: event.MaxStayDays,
	}
}

// ValidateSubmission validates and normalizes a submission. On success the
// returned registration carries all derived fields (department override,
// stay totals, base and total amount) and status pending. Errors are one of
// *domain.ValidationError, *domain.InstitutionClosedError or
// *domain.AmountMismatchError.
func (v *Validator) ValidateSubmission(in *domain.Submission) (*domain.Registration, error) {
	norm := *in
	norm.FullName = strings.TrimSpace(norm.FullName)
	norm.Email = strings.ToLower(strings.TrimSpace(norm.Email))
	norm.Phone = strings.TrimSpace(norm.Phone)
	norm.Institution = strings.TrimSpace(norm.Institution)
	norm.College = strings.TrimSpace(norm.College)
	norm.Department = strings.TrimSpace(norm.Department)
	norm.OtherDepartment = strings.TrimSpace(norm.OtherDepartment)
	norm.MembershipNumber = strings.TrimSpace(norm.MembershipNumber)
	norm.AmbassadorCode = strings.TrimSpace(norm.AmbassadorCode)
	norm.TransactionID = strings.TrimSpace(norm.TransactionID)

	// Gating runs first so a closed institution gets its dedicated answer
	// even when other fields are also wrong.
	if domain.ValidInstitution(norm.Institution) &&
		!v.calc.InstitutionOpen(domain.Institution(norm.Institution)) {
		return nil, &domain.InstitutionClosedError{Institution: domain.Institution(norm.Institution)}
	}

	if err := v.fieldErrors(&norm); err != nil {
		return nil, err
	}

	if !domain.ValidInstitution(norm.Institution) {
		return nil, domain.NewValidationError("institution", msgNotAllowedValue)
	}
	institution := domain.Institution(norm.Institution)

	department := norm.Department
	if norm.Department == "Other" {
		if norm.OtherDepartment == "" {
			return nil, domain.NewValidationError("otherDepartment",
				"department name must be specified when selecting \"Other\"")
		}
		department = norm.OtherDepartment
	}

	stayPref := domain.StayPreference(norm.StayPreference)
	stayDates, err := v.checkStayDates(stayPref, norm.StayDates)
	if err != nil {
		return nil, err
	}
	stayDays := len(stayDates)

	quote, err := v.calc.Quote(institution, norm.IsMember == string(domain.MemberYes), stayDays)
	if err != nil {
		return nil, domain.NewValidationError("institution", err.Error())
	}
	if norm.TotalAmount != quote.Total {
		return nil, &domain.AmountMismatchError{Expected: quote.Total, Got: norm.TotalAmount}
	}

	return &domain.Registration{
		FullName:         norm.FullName,
		Email:            norm.Email,
		Phone:            norm.Phone,
		Institution:      institution,
		College:          norm.College,
		Department:       department,
		Year:             domain.AcademicYear(norm.Year),
		IsMember:         domain.Membership(norm.IsMember),
		MembershipNumber: norm.MembershipNumber,
		StayPreference:   stayPref,
		StayDates:        stayDates,
		StayDays:         stayDays,
		StayPricePerDay:  v.calc.StayPricePerDay(),
		StayTotalAmount:  quote.StayFee,
		AmbassadorCode:   norm.AmbassadorCode,
		BaseAmount:       quote.Base,
		TotalAmount:      quote.Total,
		TransactionID:    norm.TransactionID,
		PaymentStatus:    domain.PaymentVerified,
		Status:           domain.StatusPending,
	}, nil
}

// fieldErrors runs the struct-tag pass and converts the library's errors
// into the domain's field-error shape.
func (v *Validator) fieldErrors(in *domain.Submission) error {
	err := v.fields.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("submission", msgInvalidFormat)
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(jsonField(fe.StructField()), tagMessage(fe))
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgFieldRequired
	case "email":
		return msgInvalidFormat
	case "min":
		if fe.Kind().String() == "string" {
			return msgBelowMinLen
		}
		return fmt.Sprintf("value must be at least %s", fe.Param())
	case "oneof":
		return msgNotAllowedValue
	default:
		return msgUnknownViolation
	}
}

// jsonField maps the Go field name back to its wire name.
func jsonField(structField string) string {
	switch structField {
	case "FullName":
		return "fullName"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "Institution":
		return "institution"
	case "College":
		return "college"
	case "Department":
		return "department"
	case "OtherDepartment":
		return "otherDepartment"
	case "Year":
		return "year"
	case "IsMember":
		return "isIsteMember"
	case "MembershipNumber":
		return "isteRegistrationNumber"
	case "StayPreference":
		return "stayPreference"
	case "StayDates":
		return "stayDates"
	case "AmbassadorCode":
		return "ambassadorCode"
	case "TotalAmount":
		return "totalAmount"
	case "TransactionID":
		return "transactionId"
	}
	return structField
}

// checkStayDates enforces the whitelist and the per-registration cap. For
// without-stay submissions any supplied dates are discarded.
func (v *Validator) checkStayDates(pref domain.StayPreference, dates []string) ([]string, error) {
	if pref != domain.WithStay {
		return []string{}, nil
	}

	if len(dates) == 0 {
		return nil, domain.NewValidationError("stayDates", "at least one stay date must be selected")
	}
	if len(dates) > v.maxStays {
		return nil, domain.NewValidationError("stayDates",
			fmt.Sprintf("maximum %d stay days allowed", v.maxStays))
	}

	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, raw := range dates {
		d := strings.TrimSpace(raw)
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, domain.NewValidationError("stayDates",
				fmt.Sprintf("invalid date: %s", raw))
		}
		if _, ok := v.allowed[d]; !ok {
			return nil, domain.NewValidationError("stayDates",
				fmt.Sprintf("stay dates must be one of %s", strings.Join(v.event.AllowedStayDates, ", ")))
		}
		if _, dup := seen[d]; dup {
			return nil, domain.NewValidationError("stayDates",
				fmt.Sprintf("duplicate stay date: %s", d))
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
