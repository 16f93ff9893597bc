package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registration-backend/internal/capacity"
	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/security"
)

func newTestAdminService(repo *MockRegistrationRepo, emailSvc *MockEmailService) AdminService {
	tokenMgr := security.NewTokenManager("test-secret-which-is-long-enough-123456", time.Hour)
	admin := config.AdminConfig{Username: "admin", Password: "letmein"}
	return NewAdminService(repo, tokenMgr, emailSvc, capacity.NewLedger(repo, testEvent()), admin)
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestAdminService(new(MockRegistrationRepo), new(MockEmailService))

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "admin", "letmein")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "root", "letmein")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAdminService_ApproveRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("approve clears rejection audit", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestAdminService(repo, emailSvc)

		rejectedAt := time.Now().Add(-time.Hour)
		reg := &domain.Registration{
			ID:              5,
			ReferenceCode:   "NEXAB12CD34",
			Email:           "asha@example.com",
			Status:          domain.StatusRejected,
			RejectedAt:      &rejectedAt,
			RejectionReason: "payment not found",
		}
		repo.On("GetByID", ctx, int32(5)).Return(reg, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(r *domain.Registration) bool {
			return r.Status == domain.StatusApproved &&
				r.ApprovedBy == "admin" && r.ApprovedAt != nil &&
				r.RejectedAt == nil && r.RejectionReason == ""
		})).Return(nil).Once()
		emailSvc.On("SendApprovalNotification", ctx, mock.Anything).Return(nil).Once()

		updated, emailSent, err := svc.ApproveRegistration(ctx, 5, "admin")
		require.NoError(t, err)
		assert.True(t, emailSent)
		assert.Equal(t, domain.StatusApproved, updated.Status)

		repo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("email failure reported but not fatal", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestAdminService(repo, emailSvc)

		repo.On("GetByID", ctx, int32(5)).Return(&domain.Registration{ID: 5, Status: domain.StatusPending}, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()
		emailSvc.On("SendApprovalNotification", ctx, mock.Anything).Return(errors.New("smtp down")).Once()

		_, emailSent, err := svc.ApproveRegistration(ctx, 5, "admin")
		require.NoError(t, err)
		assert.False(t, emailSent)
	})

	t.Run("unknown registration", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		svc := newTestAdminService(repo, new(MockEmailService))

		repo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.ApproveRegistration(ctx, 99, "admin")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdminService_RejectRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("reject clears approval audit", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestAdminService(repo, emailSvc)

		approvedAt := time.Now().Add(-time.Hour)
		reg := &domain.Registration{
			ID:         5,
			Status:     domain.StatusApproved,
			ApprovedBy: "admin",
			ApprovedAt: &approvedAt,
		}
		repo.On("GetByID", ctx, int32(5)).Return(reg, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(r *domain.Registration) bool {
			return r.Status == domain.StatusRejected &&
				r.RejectedAt != nil && r.RejectionReason == "duplicate payment screenshot" &&
				r.ApprovedBy == "" && r.ApprovedAt == nil
		})).Return(nil).Once()
		emailSvc.On("SendRejectionNotification", ctx, mock.Anything).Return(nil).Once()

		updated, emailSent, err := svc.RejectRegistration(ctx, 5, "admin", "  duplicate payment screenshot ")
		require.NoError(t, err)
		assert.True(t, emailSent)
		assert.Equal(t, domain.StatusRejected, updated.Status)

		repo.AssertExpectations(t)
	})

	t.Run("reason too short", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		svc := newTestAdminService(repo, new(MockEmailService))

		_, _, err := svc.RejectRegistration(ctx, 5, "admin", "bad")
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestAdminService_ListRegistrations(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegistrationRepo)
	svc := newTestAdminService(repo, new(MockEmailService))

	filter := domain.ListFilter{Status: "pending", Search: "asha"}
	repo.On("List", ctx, filter, int32(2), int32(25)).
		Return([]domain.Registration{{ID: 1}, {ID: 2}}, int64(60), nil).Once()

	regs, total, err := svc.ListRegistrations(ctx, filter, 2, 25)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.Equal(t, int64(60), total)
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegistrationRepo)
	svc := newTestAdminService(repo, new(MockEmailService))

	repo.On("Stats", ctx).Return(&domain.Stats{Total: 12, Approved: 7}, nil).Once()
	repo.On("CountActiveStay", ctx).Return(340, nil).Once()

	overview, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), overview.Total)
	assert.Equal(t, int64(7), overview.Approved)
	require.NotNil(t, overview.StayAvailability)
	assert.Equal(t, 10, overview.StayAvailability.Remaining)
}
