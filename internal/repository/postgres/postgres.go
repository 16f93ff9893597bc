package postgres

import (
	"database/sql"

	"registration-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RegistrationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		RegistrationRepository: NewRegistrationRepository(db),
	}
}
