package capacity

import (
	"context"

	"registration-backend/internal/config"
	"registration-backend/internal/repository"
)

// Availability is the public snapshot of the accommodation pool.
type Availability struct {
	Available     bool `json:"available"`
	Remaining     int  `json:"remaining"`
	TotalCapacity int  `json:"totalCapacity"`
	Used          int  `json:"used"`
	PricePerDay   int  `json:"pricePerDay"`
}

// Ledger derives stay occupancy from the registration store. A slot is held
// by every with-stay registration in pending or approved status, so rejecting
// a registration releases its slot implicitly.
type Ledger struct {
	repo  repository.RegistrationRepository
	event config.EventConfig
}

func NewLedger(repo repository.RegistrationRepository, event config.EventConfig) *Ledger {
	return &Ledger{repo: repo, event: event}
}

// Ceiling is the configured accommodation capacity.
func (l *Ledger) Ceiling() int {
	return l.event.StayCapacity
}

// Used counts the registrations currently holding a slot.
func (l *Ledger) Used(ctx context.Context) (int, error) {
	return l.repo.CountActiveStay(ctx)
}

// Remaining returns the number of free slots, clamped at zero.
func (l *Ledger) Remaining(ctx context.Context) (int, error) {
	used, err := l.repo.CountActiveStay(ctx)
	if err != nil {
		return 0, err
	}
	remaining := l.event.StayCapacity - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// HasCapacity reports whether at least one slot is free. This is advisory
// only; the authoritative check happens inside the conditional insert.
func (l *Ledger) HasCapacity(ctx context.Context) (bool, error) {
	used, err := l.repo.CountActiveStay(ctx)
	if err != nil {
		return false, err
	}
	return used < l.event.StayCapacity, nil
}

// Snapshot builds the availability view served to clients.
func (l *Ledger) Snapshot(ctx context.Context) (*Availability, error) {
	used, err := l.repo.CountActiveStay(ctx)
	if err != nil {
		return nil, err
	}
	remaining := l.event.StayCapacity - used
	if remaining < 0 {
		remaining = 0
	}
	return &Availability{
		Available:     remaining > 0,
		Remaining:     remaining,
		TotalCapacity: l.event.StayCapacity,
		Used:          used,
		PricePerDay:   l.event.StayPricePerDay,
	}, nil
}
