package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

type LoanRepository interface {
	// ListActiveDueBefore returns active loans whose payment due date has
	// already passed, the overdue-transition candidates.
	ListActiveDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error)
	// ListActiveDueBetween returns active loans due inside [from, to].
	ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Loan, error)
	ListOverdue(ctx context.Context) ([]domain.Loan, error)
	// MarkOverdue is one of the engine's two mutations.
	MarkOverdue(ctx context.Context, loanID int64) error
	// AddPenalty is the other: sets the accumulated penalty total and
	// stamps when it was applied.
	AddPenalty(ctx context.Context, loanID int64, totalPenalties decimal.Decimal, appliedAt time.Time) error
	CountAll(ctx context.Context) (int64, error)
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	CountAll(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	// ListForLoanBetween returns payments for one loan inside [from, to],
	// the window used for monthly sufficiency checks.
	ListForLoanBetween(ctx context.Context, loanID int64, from, to time.Time) ([]domain.LoanPayment, error)
	CountAll(ctx context.Context) (int64, error)
}

type LicenceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GunLicence, error)
	CountAll(ctx context.Context) (int64, error)
}
