package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gunneryarms/loan-notifier/internal/domain"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

const loanColumns = `id, invoice_number, loan_amount, remaining_balance, COALESCE(penalties, 0),
       interest_rate, status, payment_due_date, start_date, client_id, weapon_cost, license_id, last_penalty_at`

type loanRepository struct {
	db     *sql.DB
	policy retry.Policy
}

func NewLoanRepository(db *sql.DB, policy retry.Policy) repository.LoanRepository {
	return &loanRepository{db: db, policy: policy}
}

func (r *loanRepository) ListActiveDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 AND payment_due_date < $2`
	return r.list(ctx, "loanRepository.ListActiveDueBefore", query, domain.LoanStatusActive, cutoff)
}

func (r *loanRepository) ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE status = $1 AND payment_due_date >= $2 AND payment_due_date <= $3`
	return r.list(ctx, "loanRepository.ListActiveDueBetween", query, domain.LoanStatusActive, from, to)
}

func (r *loanRepository) ListOverdue(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1`
	return r.list(ctx, "loanRepository.ListOverdue", query, domain.LoanStatusOverdue)
}

func (r *loanRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Loan, error) {
	logger.EnterMethod(op)

	var loans []domain.Loan
	err := r.policy.Do(ctx, op, func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		loans = loans[:0]
		for rows.Next() {
			var l domain.Loan
			if err := scanLoan(rows, &l); err != nil {
				return err
			}
			loans = append(loans, l)
		}
		return rows.Err()
	})
	if err != nil {
		logger.ExitMethodWithError(op, err)
		return nil, err
	}

	logger.ExitMethod(op, "count", len(loans))
	return loans, nil
}

func scanLoan(rows *sql.Rows, l *domain.Loan) error {
	var (
		interestRate sql.Null[decimal.Decimal]
		weaponCost   sql.Null[decimal.Decimal]
		licenseID    sql.NullInt64
		lastPenalty  sql.NullTime
	)
	err := rows.Scan(
		&l.ID, &l.InvoiceNumber, &l.LoanAmount, &l.RemainingBalance, &l.Penalties,
		&interestRate, &l.Status, &l.PaymentDueDate, &l.StartDate, &l.ClientID,
		&weaponCost, &licenseID, &lastPenalty,
	)
	if err != nil {
		return err
	}
	if interestRate.Valid {
		l.InterestRate = &interestRate.V
	}
	if weaponCost.Valid {
		l.WeaponCost = &weaponCost.V
	}
	if licenseID.Valid {
		l.LicenseID = &licenseID.Int64
	}
	if lastPenalty.Valid {
		l.LastPenaltyAt = &lastPenalty.Time
	}
	return nil
}

func (r *loanRepository) MarkOverdue(ctx context.Context, loanID int64) error {
	logger.EnterMethod("loanRepository.MarkOverdue", "loanID", loanID)

	query := `UPDATE loans SET status = $1 WHERE id = $2 AND status = $3`
	err := r.policy.Do(ctx, "loanRepository.MarkOverdue", func() error {
		result, err := r.db.ExecContext(ctx, query, domain.LoanStatusOverdue, loanID, domain.LoanStatusActive)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("loanRepository.MarkOverdue", err, "loanID", loanID)
		return err
	}

	logger.ExitMethod("loanRepository.MarkOverdue", "loanID", loanID)
	return nil
}

func (r *loanRepository) AddPenalty(ctx context.Context, loanID int64, totalPenalties decimal.Decimal, appliedAt time.Time) error {
	logger.EnterMethod("loanRepository.AddPenalty", "loanID", loanID, "totalPenalties", totalPenalties.StringFixed(2))

	query := `UPDATE loans SET penalties = $1, last_penalty_at = $2 WHERE id = $3`
	err := r.policy.Do(ctx, "loanRepository.AddPenalty", func() error {
		_, err := r.db.ExecContext(ctx, query, totalPenalties, appliedAt, loanID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("loanRepository.AddPenalty", err, "loanID", loanID)
		return err
	}

	logger.ExitMethod("loanRepository.AddPenalty", "loanID", loanID)
	return nil
}

func (r *loanRepository) CountAll(ctx context.Context) (int64, error) {
	return countTable(ctx, r.db, r.policy, "loans")
}

// countTable backs the connectivity checks shared by all repositories.
func countTable(ctx context.Context, db *sql.DB, policy retry.Policy, table string) (int64, error) {
	var count int64
	err := policy.Do(ctx, "count "+table, func() error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
