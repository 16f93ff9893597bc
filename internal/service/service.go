package service

import (
	"context"

	"registration-backend/internal/capacity"
	"registration-backend/internal/domain"
)

type RegistrationService interface {
	Submit(ctx context.Context, in *domain.Submission) (*domain.Registration, error)
	EmailRegistered(ctx context.Context, email string) (bool, error)
	CheckStatus(ctx context.Context, transactionID string) (*domain.StatusSummary, error)
	GetRegistration(ctx context.Context, id int32) (*domain.Registration, error)
	StayAvailability(ctx context.Context) (*capacity.Availability, error)
}

// StatsOverview is the admin dashboard payload: lifecycle aggregates plus the
// live accommodation snapshot.
type StatsOverview struct {
	*domain.Stats
	StayAvailability *capacity.Availability `json:"stayAvailability"`
}

type AdminService interface {
	Login(ctx context.Context, username, password string) (string, error) // returns a session token
	ListRegistrations(ctx context.Context, filter domain.ListFilter, page, pageSize int32) ([]domain.Registration, int64, error)
	ApproveRegistration(ctx context.Context, id int32, approver string) (*domain.Registration, bool, error) // registration, emailSent
	RejectRegistration(ctx context.Context, id int32, approver, reason string) (*domain.Registration, bool, error)
	Stats(ctx context.Context) (*StatsOverview, error)
}

type EmailService interface {
	SendReceiptNotification(ctx context.Context, reg *domain.Registration) error
	SendApprovalNotification(ctx context.Context, reg *domain.Registration) error
	SendRejectionNotification(ctx context.Context, reg *domain.Registration) error
}
