package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registration-backend/internal/capacity"
	"registration-backend/internal/config"
	"registration-backend/internal/domain"
	"registration-backend/internal/pricing"
	"registration-backend/internal/validate"
)

func testEvent() config.EventConfig {
	return config.EventConfig{
		Name:             "NEXUS 2026",
		Polytechnic:      config.InstitutionConfig{MemberFee: 250, NonMemberFee: 300, Open: true},
		Engineering:      config.InstitutionConfig{MemberFee: 450, NonMemberFee: 500, Open: false},
		StayPricePerDay:  217,
		StayCapacity:     350,
		MaxStayDays:      3,
		AllowedStayDates: []string{"2026-01-29", "2026-01-30", "2026-01-31"},
	}
}

func newTestRegistrationService(repo *MockRegistrationRepo, emailSvc *MockEmailService) RegistrationService {
	event := testEvent()
	calc := pricing.NewCalculator(event)
	return NewRegistrationService(repo, validate.New(event, calc), capacity.NewLedger(repo, event), emailSvc)
}

func submissionWithoutStay() *domain.Submission {
	return &domain.Submission{
		FullName:       "Asha Varma",
		Email:          "asha@example.com",
		Phone:          "9876543210",
		Institution:    "Polytechnic",
		College:        "Government Polytechnic College",
		Department:     "Computer Science",
		Year:           "Third",
		IsMember:       "No",
		StayPreference: "Without Stay",
		TotalAmount:    300,
		TransactionID:  "TXN1234567",
	}
}

func submissionWithStay() *domain.Submission {
	in := submissionWithoutStay()
	in.StayPreference = "With Stay"
	in.StayDates = []string{"2026-01-29", "2026-01-30"}
	in.TotalAmount = 300 + 2*217
	return in
}

func TestRegistrationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("without stay", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, "asha@example.com").Return(nil, domain.ErrNotFound).Once()
		repo.On("GetByTransactionID", ctx, "TXN1234567").Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(r *domain.Registration) bool {
			return r.Status == domain.StatusPending && r.TotalAmount == 300
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Registration).ID = 7
		}).Return(nil).Once()
		emailSvc.On("SendReceiptNotification", ctx, mock.Anything).Return(nil).Once()

		reg, err := svc.Submit(ctx, submissionWithoutStay())
		require.NoError(t, err)
		assert.Equal(t, int32(7), reg.ID)
		assert.True(t, strings.HasPrefix(reg.ReferenceCode, "NEX"))
		assert.Len(t, reg.ReferenceCode, 11)

		repo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("with stay goes through the conditional insert", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("GetByTransactionID", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("CountActiveStay", ctx).Return(10, nil).Once()
		repo.On("CreateWithStayCapacity", ctx, mock.MatchedBy(func(r *domain.Registration) bool {
			return r.StayDays == 2 && r.StayTotalAmount == 434
		}), 350).Return(nil).Once()
		emailSvc.On("SendReceiptNotification", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Submit(ctx, submissionWithStay())
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, mock.Anything).Return(&domain.Registration{ID: 1}, nil).Once()

		_, err := svc.Submit(ctx, submissionWithoutStay())
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate transaction id", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("GetByTransactionID", ctx, mock.Anything).Return(&domain.Registration{ID: 1}, nil).Once()

		_, err := svc.Submit(ctx, submissionWithoutStay())
		assert.ErrorIs(t, err, domain.ErrDuplicateTransactionID)
	})

	t.Run("stay pool full", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("GetByTransactionID", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("CountActiveStay", ctx).Return(350, nil).Once()

		_, err := svc.Submit(ctx, submissionWithStay())
		assert.ErrorIs(t, err, domain.ErrCapacityExhausted)
		repo.AssertNotCalled(t, "CreateWithStayCapacity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email failure does not undo the registration", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		repo.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("GetByTransactionID", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		emailSvc.On("SendReceiptNotification", ctx, mock.Anything).Return(errors.New("smtp down")).Once()

		reg, err := svc.Submit(ctx, submissionWithoutStay())
		require.NoError(t, err)
		assert.NotNil(t, reg)
	})

	t.Run("invalid submission never touches the store", func(t *testing.T) {
		repo := new(MockRegistrationRepo)
		emailSvc := new(MockEmailService)
		svc := newTestRegistrationService(repo, emailSvc)

		in := submissionWithoutStay()
		in.TotalAmount = 999

		_, err := svc.Submit(ctx, in)
		var mismatchErr *domain.AmountMismatchError
		assert.ErrorAs(t, err, &mismatchErr)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestRegistrationService_EmailRegistered(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegistrationRepo)
	svc := newTestRegistrationService(repo, new(MockEmailService))

	repo.On("GetByEmail", ctx, "known@example.com").Return(&domain.Registration{ID: 1}, nil).Once()
	repo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound).Once()

	exists, err := svc.EmailRegistered(ctx, " Known@Example.com ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailRegistered(ctx, "new@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.EmailRegistered(ctx, "   ")
	assert.Error(t, err)
}

func TestRegistrationService_CheckStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegistrationRepo)
	svc := newTestRegistrationService(repo, new(MockEmailService))

	reg := &domain.Registration{
		ID:            3,
		ReferenceCode: "NEXAB12CD34",
		FullName:      "Asha Varma",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		TransactionID: "TXN1234567",
		Status:        domain.StatusApproved,
	}
	repo.On("GetByTransactionID", ctx, "TXN1234567").Return(reg, nil).Once()

	summary, err := svc.CheckStatus(ctx, "TXN1234567")
	require.NoError(t, err)
	assert.Equal(t, "NEXAB12CD34", summary.ReferenceCode)
	assert.Equal(t, domain.StatusApproved, summary.Status)

	repo.On("GetByTransactionID", ctx, "TXNUNKNOWN").Return(nil, domain.ErrNotFound).Once()
	_, err = svc.CheckStatus(ctx, "TXNUNKNOWN")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationService_StayAvailability(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegistrationRepo)
	svc := newTestRegistrationService(repo, new(MockEmailService))

	repo.On("CountActiveStay", ctx).Return(340, nil).Once()

	snapshot, err := svc.StayAvailability(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.Available)
	assert.Equal(t, 10, snapshot.Remaining)
	assert.Equal(t, 350, snapshot.TotalCapacity)
	assert.Equal(t, 217, snapshot.PricePerDay)
}
