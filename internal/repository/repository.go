package repository

import (
	"context"

	"registration-backend/internal/domain"
)

type RegistrationRepository interface {
	// Create persists a new registration and fills in its generated ID.
	Create(ctx context.Context, reg *domain.Registration) error
	// CreateWithStayCapacity persists a with-stay registration only while
	// the active stay count is below ceiling, as one conditional insert.
	// Returns domain.ErrCapacityExhausted when the pool is full.
	CreateWithStayCapacity(ctx context.Context, reg *domain.Registration, ceiling int) error
	GetByID(ctx context.Context, id int32) (*domain.Registration, error)
	GetByEmail(ctx context.Context, email string) (*domain.Registration, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Registration, error)
	// Update rewrites the lifecycle fields (status + audit columns).
	Update(ctx context.Context, reg *domain.Registration) error
	List(ctx context.Context, filter domain.ListFilter, page, pageSize int32) ([]domain.Registration, int64, error)
	// CountActiveStay counts with-stay registrations in pending or approved
	// status — the live capacity usage figure.
	CountActiveStay(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}
