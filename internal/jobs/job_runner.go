package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gunneryarms/loan-notifier/internal/billing"
	"github.com/gunneryarms/loan-notifier/internal/config"
	"github.com/gunneryarms/loan-notifier/internal/domain"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/service"
)

// Repositories is the slice of the store the jobs need.
type Repositories struct {
	Loans    repository.LoanRepository
	Clients  repository.ClientRepository
	Payments repository.PaymentRepository
	Licences repository.LicenceRepository
}

// JobRunner coordinates the scheduled notification jobs. Loans are processed
// one at a time; a failure on one record is logged and skipped, never
// aborting the batch.
type JobRunner struct {
	repos  Repositories
	email  service.EmailSender
	config *config.Config

	// now is stubbed in tests; production uses time.Now.
	now func() time.Time
}

// NewJobRunner creates a job runner with all dependencies.
func NewJobRunner(repos Repositories, email service.EmailSender, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:  repos,
		email:  email,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the runner's configuration, used by the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// paidThisMonth sums the loan's payments between the first of the current
// month and now. Payment dates come back too for audit logging.
func (jr *JobRunner) paidThisMonth(ctx context.Context, loanID int64, now time.Time) (decimal.Decimal, []string, error) {
	payments, err := jr.repos.Payments.ListForLoanBetween(ctx, loanID, billing.MonthStart(now), now)
	if err != nil {
		return decimal.Zero, nil, err
	}

	total := decimal.Zero
	dates := make([]string, 0, len(payments))
	for _, p := range payments {
		total = total.Add(p.Amount)
		dates = append(dates, p.PaymentDate.Format("2006-01-02"))
	}
	return total, dates, nil
}

// clientFor loads and validates the loan's client. A missing client or a
// client without an email address is a per-record validation error.
func (jr *JobRunner) clientFor(ctx context.Context, loan *domain.Loan) (*domain.Client, bool) {
	client, err := jr.repos.Clients.GetByID(ctx, loan.ClientID)
	if err != nil {
		logger.Warn("Client lookup failed, skipping loan",
			"loan_id", loan.ID,
			"client_id", loan.ClientID,
			"error", err)
		return nil, false
	}
	if client.Email == "" {
		logger.Warn("Missing email for client, skipping loan",
			"loan_id", loan.ID,
			"client_id", client.ID)
		return nil, false
	}
	return client, true
}

// licenceFor loads the loan's gun licence for display. Absence or a lookup
// failure degrades to the generic item description.
func (jr *JobRunner) licenceFor(ctx context.Context, loan *domain.Loan) *domain.GunLicence {
	if loan.LicenseID == nil {
		return nil
	}
	licence, err := jr.repos.Licences.GetByID(ctx, *loan.LicenseID)
	if err != nil {
		logger.Warn("Licence lookup failed, using generic item description",
			"loan_id", loan.ID,
			"licence_id", *loan.LicenseID,
			"error", err)
		return nil
	}
	return licence
}

// sendWithCopy delivers a client email and its accounts copy, then paces
// the next send so the SMTP server is not hammered.
func (jr *JobRunner) sendWithCopy(ctx context.Context, recipient, subject, body string) error {
	if err := jr.email.Send(ctx, recipient, subject, body); err != nil {
		return err
	}
	if err := jr.email.Send(ctx, jr.config.Email.AccountsCopyAddress, "COPY: "+subject, body); err != nil {
		logger.Error("Failed to send accounts copy", "subject", subject, "error", err)
	}
	time.Sleep(jr.config.Email.SendDelay)
	return nil
}

// validLoan screens the fields every notification needs. Records failing
// here are logged and skipped, not fatal.
func validLoan(loan *domain.Loan) bool {
	if loan.InvoiceNumber == "" {
		logger.Warn("Skipping loan - missing invoice number", "loan_id", loan.ID)
		return false
	}
	if loan.PaymentDueDate.IsZero() {
		logger.Warn("Skipping loan - missing payment due date", "loan_id", loan.ID)
		return false
	}
	if !loan.LoanAmount.IsPositive() {
		logger.Warn("Skipping loan - invalid loan amount",
			"loan_id", loan.ID,
			"loan_amount", loan.LoanAmount.String())
		return false
	}
	return true
}
