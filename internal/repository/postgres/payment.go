package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gunneryarms/loan-notifier/internal/domain"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

type paymentRepository struct {
	db     *sql.DB
	policy retry.Policy
}

func NewPaymentRepository(db *sql.DB, policy retry.Policy) repository.PaymentRepository {
	return &paymentRepository{db: db, policy: policy}
}

func (r *paymentRepository) ListForLoanBetween(ctx context.Context, loanID int64, from, to time.Time) ([]domain.LoanPayment, error) {
	logger.EnterMethod("paymentRepository.ListForLoanBetween", "loanID", loanID)

	query := `SELECT id, loan_id, payment_date, amount FROM loan_payments
	          WHERE loan_id = $1 AND payment_date >= $2 AND payment_date <= $3
	          ORDER BY payment_date`

	var payments []domain.LoanPayment
	err := r.policy.Do(ctx, "paymentRepository.ListForLoanBetween", func() error {
		rows, err := r.db.QueryContext(ctx, query, loanID, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		payments = payments[:0]
		for rows.Next() {
			var p domain.LoanPayment
			if err := rows.Scan(&p.ID, &p.LoanID, &p.PaymentDate, &p.Amount); err != nil {
				return err
			}
			payments = append(payments, p)
		}
		return rows.Err()
	})
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.ListForLoanBetween", err, "loanID", loanID)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.ListForLoanBetween", "loanID", loanID, "count", len(payments))
	return payments, nil
}

func (r *paymentRepository) CountAll(ctx context.Context) (int64, error) {
	return countTable(ctx, r.db, r.policy, "loan_payments")
}
