package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

type Store struct {
	db *sql.DB
	repository.LoanRepository
	repository.ClientRepository
	repository.PaymentRepository
	repository.LicenceRepository
}

// NewStore builds the repository set over one connection pool. Every remote
// call goes through the supplied retry policy.
func NewStore(db *sql.DB, policy retry.Policy) *Store {
	return &Store{
		db:                db,
		LoanRepository:    NewLoanRepository(db, policy),
		ClientRepository:  NewClientRepository(db, policy),
		PaymentRepository: NewPaymentRepository(db, policy),
		LicenceRepository: NewLicenceRepository(db, policy),
	}
}
