package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"registration-backend/internal/capacity"
	"registration-backend/internal/domain"
	"registration-backend/internal/logger"
	"registration-backend/internal/repository"
	"registration-backend/internal/validate"
)

type registrationService struct {
	repo      repository.RegistrationRepository
	validator *validate.Validator
	ledger    *capacity.Ledger
	emailSvc  EmailService
}

func NewRegistrationService(repo repository.RegistrationRepository, validator *validate.Validator, ledger *capacity.Ledger, emailSvc EmailService) RegistrationService {
	return &registrationService{
		repo:      repo,
		validator: validator,
		ledger:    ledger,
		emailSvc:  emailSvc,
	}
}

// generateReferenceCode builds the participant-facing registration ID.
func generateReferenceCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "NEX" + strings.ToUpper(id[:8])
}

func (s *registrationService) Submit(ctx context.Context, in *domain.Submission) (*domain.Registration, error) {
	reg, err := s.validator.ValidateSubmission(in)
	if err != nil {
		return nil, err
	}

	// Friendly duplicate checks up front. The unique indexes remain the
	// authoritative guard for concurrent submissions.
	if _, err := s.repo.GetByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.repo.GetByTransactionID(ctx, reg.TransactionID); err == nil {
		return nil, domain.ErrDuplicateTransactionID
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check transaction ID: %w", err)
	}

	reg.ReferenceCode = generateReferenceCode()

	if reg.HasStay() {
		ok, err := s.ledger.HasCapacity(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check stay capacity: %w", err)
		}
		if !ok {
			return nil, domain.ErrCapacityExhausted
		}
		if err := s.repo.CreateWithStayCapacity(ctx, reg, s.ledger.Ceiling()); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Create(ctx, reg); err != nil {
			return nil, err
		}
	}

	logger.Info("Registration submitted",
		"id", reg.ID, "reference", reg.ReferenceCode, "institution", reg.Institution, "stay", reg.HasStay())

	// Notification failures never undo a stored registration.
	if err := s.emailSvc.SendReceiptNotification(ctx, reg); err != nil {
		logger.Warn("Failed to send receipt email", "reference", reg.ReferenceCode, "error", err.Error())
	}

	return reg, nil
}

func (s *registrationService) EmailRegistered(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, domain.NewValidationError("email", "field is required")
	}
	_, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *registrationService) CheckStatus(ctx context.Context, transactionID string) (*domain.StatusSummary, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, domain.NewValidationError("transactionId", "field is required")
	}
	reg, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	summary := reg.Summary()
	return &summary, nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id int32) (*domain.Registration, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *registrationService) StayAvailability(ctx context.Context) (*capacity.Availability, error) {
	return s.ledger.Snapshot(ctx)
}
