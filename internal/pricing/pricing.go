package pricing

import (
	"fmt"

	"registration-backend/internal/config"
	"registration-backend/internal/domain"
)

// Quote is the server-side fee breakdown for one submission.
type Quote struct {
	Base    int
	StayFee int
	Total   int
}

// Calculator computes registration fees from the event's pricing table. It
// holds no mutable state and performs no I/O, so a single instance is safe
// to share across requests.
type Calculator struct {
	event config.EventConfig
}

// NewCalculator builds a calculator over an event configuration.
func NewCalculator(event config.EventConfig) *Calculator {
	return &Calculator{event: event}
}

// BaseFee looks up the per-institution registration fee.
func (c *Calculator) BaseFee(institution domain.Institution, isMember bool) (int, error) {
	var cell config.InstitutionConfig
	switch institution {
	case domain.InstitutionPolytechnic:
		cell = c.event.Polytechnic
	case domain.InstitutionEngineering:
		cell = c.event.Engineering
	default:
		return 0, fmt.Errorf("unknown institution: %s", institution)
	}
	if isMember {
		return cell.MemberFee, nil
	}
	return cell.NonMemberFee, nil
}

// Quote computes the full fee breakdown: base fee by (institution,
// membership) plus the nightly rate times the requested stay nights.
func (c *Calculator) Quote(institution domain.Institution, isMember bool, stayNights int) (Quote, error) {
	base, err := c.BaseFee(institution, isMember)
	if err != nil {
		return Quote{}, err
	}
	if stayNights < 0 {
		return Quote{}, fmt.Errorf("stay nights cannot be negative: %d", stayNights)
	}
	stayFee := stayNights * c.event.StayPricePerDay
	return Quote{
		Base:    base,
		StayFee: stayFee,
		Total:   base + stayFee,
	}, nil
}

// StayPricePerDay exposes the configured nightly rate.
func (c *Calculator) StayPricePerDay() int {
	return c.event.StayPricePerDay
}

// InstitutionOpen reports whether registrations for an institution are being
// accepted in this event edition.
func (c *Calculator) InstitutionOpen(institution domain.Institution) bool {
	switch institution {
	case domain.InstitutionPolytechnic:
		return c.event.Polytechnic.Open
	case domain.InstitutionEngineering:
		return c.event.Engineering.Open
	}
	return false
}
