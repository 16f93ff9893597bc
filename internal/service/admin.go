package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"registration-backend/internal/capacity"
	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/logger"
	"registration-backend/internal/repository"
	"registration-backend/internal/security"
)

type adminService struct {
	repo     repository.RegistrationRepository
	tokenMgr security.TokenManager
	emailSvc EmailService
	ledger   *capacity.Ledger
	admin    config.AdminConfig
}

func NewAdminService(repo repository.RegistrationRepository, tokenMgr security.TokenManager, emailSvc EmailService, ledger *capacity.Ledger, admin config.AdminConfig) AdminService {
	return &adminService{
		repo:     repo,
		tokenMgr: tokenMgr,
		emailSvc: emailSvc,
		ledger:   ledger,
		admin:    admin,
	}
}

func (s *adminService) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.admin.Username ||
		!security.VerifyPassword(password, s.admin.Password, s.admin.PasswordHash) {
		logger.Warn("Admin login rejected", "username", username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenMgr.GenerateAdminToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	logger.Info("Admin logged in", "username", username)
	return token, nil
}

func (s *adminService) ListRegistrations(ctx context.Context, filter domain.ListFilter, page, pageSize int32) ([]domain.Registration, int64, error) {
	return s.repo.List(ctx, filter, page, pageSize)
}

// ApproveRegistration marks a registration approved and clears any earlier
// rejection audit fields, so a rejected registration can be re-reviewed.
// Returns whether the confirmation email went out.
func (s *adminService) ApproveRegistration(ctx context.Context, id int32, approver string) (*domain.Registration, bool, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	reg.Status = domain.StatusApproved
	reg.ApprovedBy = approver
	reg.ApprovedAt = &now
	reg.RejectedAt = nil
	reg.RejectionReason = ""

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, false, err
	}
	logger.Info("Registration approved", "id", reg.ID, "reference", reg.ReferenceCode, "by", approver)

	emailSent := true
	if err := s.emailSvc.SendApprovalNotification(ctx, reg); err != nil {
		logger.Warn("Failed to send approval email", "reference", reg.ReferenceCode, "error", err.Error())
		emailSent = false
	}
	return reg, emailSent, nil
}

// RejectRegistration marks a registration rejected with a reason and clears
// any earlier approval audit fields. A rejected with-stay registration
// releases its accommodation slot.
func (s *adminService) RejectRegistration(ctx context.Context, id int32, approver, reason string) (*domain.Registration, bool, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 5 {
		return nil, false, domain.NewValidationError("reason", "rejection reason must be at least 5 characters")
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	reg.Status = domain.StatusRejected
	reg.RejectedAt = &now
	reg.RejectionReason = reason
	reg.ApprovedBy = ""
	reg.ApprovedAt = nil

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, false, err
	}
	logger.Info("Registration rejected", "id", reg.ID, "reference", reg.ReferenceCode, "by", approver)

	emailSent := true
	if err := s.emailSvc.SendRejectionNotification(ctx, reg); err != nil {
		logger.Warn("Failed to send rejection email", "reference", reg.ReferenceCode, "error", err.Error())
		emailSent = false
	}
	return reg, emailSent, nil
}

func (s *adminService) Stats(ctx context.Context) (*StatsOverview, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsOverview{Stats: stats, StayAvailability: snapshot}, nil
}
