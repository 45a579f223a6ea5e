package jobs

import (
	"context"

	"github.com/gunneryarms/loan-notifier/internal/billing"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/templates"
)

// MarkOverdueLoans transitions active loans past their due date to overdue,
// unless this month's payments already cover the expected monthly payment.
// Returns the number of loans transitioned.
func (jr *JobRunner) MarkOverdueLoans(ctx context.Context) int {
	now := jr.now()
	log := logger.WithOperation("MarkOverdueLoans")

	loans, err := jr.repos.Loans.ListActiveDueBefore(ctx, now)
	if err != nil {
		log.Error("Failed to query potentially overdue loans", "error", err)
		return 0
	}
	log.Info("Found potentially overdue loans", "count", len(loans))

	updated, skipped, errored := 0, 0, 0
	for i := range loans {
		loan := &loans[i]
		if !validLoan(loan) {
			errored++
			continue
		}

		paid, paymentDates, err := jr.paidThisMonth(ctx, loan.ID, now)
		if err != nil {
			log.Error("Failed to query payments", "loan_id", loan.ID, "error", err)
			errored++
			continue
		}

		expected := billing.ExpectedMonthlyPayment(loan.LoanAmount)
		if billing.PaymentSufficient(paid, loan.LoanAmount) {
			log.Info("Skipping overdue status, sufficient payments this month",
				"invoice", loan.InvoiceNumber,
				"paid", paid.StringFixed(2),
				"expected", expected.StringFixed(2))
			skipped++
			continue
		}

		if err := jr.repos.Loans.MarkOverdue(ctx, loan.ID); err != nil {
			log.Error("Failed to mark loan overdue", "loan_id", loan.ID, "error", err)
			errored++
			continue
		}
		updated++
		log.Info("Loan marked as overdue",
			"invoice", loan.InvoiceNumber,
			"paid", paid.StringFixed(2),
			"expected", expected.StringFixed(2),
			"payment_dates", paymentDates)
	}

	log.Info("Overdue transition completed",
		"updated", updated,
		"skipped", skipped,
		"errors", errored)
	return updated
}

// ApplyPenalties adds the monthly 10%-of-principal penalty to overdue loans
// without sufficient payments. Runs only on the 3rd unless bypass is set,
// and never applies twice in one calendar month. Returns counts of applied
// and skipped loans.
func (jr *JobRunner) ApplyPenalties(ctx context.Context, bypass bool) (applied, skipped int) {
	now := jr.now()
	log := logger.WithOperation("ApplyPenalties")

	if !bypass && !billing.IsPenaltyDay(now) {
		log.Info("Today is not the 3rd day of the month, skipping penalty application")
		return 0, 0
	}

	loans, err := jr.repos.Loans.ListOverdue(ctx)
	if err != nil {
		log.Error("Failed to query overdue loans for penalties", "error", err)
		return 0, 0
	}
	log.Info("Found overdue loans to check for penalty application", "count", len(loans))

	errored := 0
	for i := range loans {
		loan := &loans[i]
		if !validLoan(loan) {
			errored++
			continue
		}

		if billing.PenaltyAppliedThisMonth(loan, now) {
			log.Info("Skipping penalty, already applied this month",
				"invoice", loan.InvoiceNumber,
				"last_penalty_at", loan.LastPenaltyAt)
			skipped++
			continue
		}

		paid, paymentDates, err := jr.paidThisMonth(ctx, loan.ID, now)
		if err != nil {
			log.Error("Failed to query payments", "loan_id", loan.ID, "error", err)
			errored++
			continue
		}

		expected := billing.ExpectedMonthlyPayment(loan.LoanAmount)
		if billing.PaymentSufficient(paid, loan.LoanAmount) {
			log.Info("Skipping penalty, sufficient payments this month",
				"invoice", loan.InvoiceNumber,
				"paid", paid.StringFixed(2),
				"expected", expected.StringFixed(2))
			skipped++
			continue
		}

		penalty := billing.PenaltyAmount(loan.LoanAmount)
		total := loan.Penalties.Add(penalty)
		if err := jr.repos.Loans.AddPenalty(ctx, loan.ID, total, now); err != nil {
			log.Error("Failed to update penalties", "loan_id", loan.ID, "error", err)
			errored++
			continue
		}
		applied++
		log.Info("Applied penalty",
			"invoice", loan.InvoiceNumber,
			"penalty", penalty.StringFixed(2),
			"total_penalties", total.StringFixed(2),
			"paid", paid.StringFixed(2),
			"expected", expected.StringFixed(2),
			"payment_dates", paymentDates)
	}

	log.Info("Penalty application completed",
		"applied", applied,
		"skipped", skipped,
		"errors", errored)
	return applied, skipped
}

// NotifyOverdueLoans emails every overdue loan's client a statement with the
// red overdue banner. Returns the number of notifications sent.
func (jr *JobRunner) NotifyOverdueLoans(ctx context.Context) int {
	now := jr.now()
	log := logger.WithOperation("NotifyOverdueLoans")

	loans, err := jr.repos.Loans.ListOverdue(ctx)
	if err != nil {
		log.Error("Failed to query overdue loans for notification", "error", err)
		return 0
	}
	log.Info("Found overdue loans for notification", "count", len(loans))

	sent, errored := 0, 0
	for i := range loans {
		loan := &loans[i]
		if !validLoan(loan) {
			errored++
			continue
		}

		client, ok := jr.clientFor(ctx, loan)
		if !ok {
			errored++
			continue
		}
		licence := jr.licenceFor(ctx, loan)

		paid, _, err := jr.paidThisMonth(ctx, loan.ID, now)
		if err != nil {
			log.Error("Failed to query payments", "loan_id", loan.ID, "error", err)
			errored++
			continue
		}
		expected := billing.ExpectedMonthlyPayment(loan.LoanAmount)

		banner := templates.OverdueBanner(loan, paid, expected)
		body, err := templates.Statement(loan, client, licence, true, banner)
		if err != nil {
			log.Error("Failed to render overdue notice", "invoice", loan.InvoiceNumber, "error", err)
			errored++
			continue
		}

		subject := "OVERDUE PAYMENT NOTICE: " + loan.InvoiceNumber + " - " + client.FullName()
		if err := jr.sendWithCopy(ctx, client.Email, subject, body); err != nil {
			errored++
			continue
		}
		sent++
		log.Info("Overdue notification sent",
			"invoice", loan.InvoiceNumber,
			"client", client.FullName(),
			"email", client.Email,
			"paid", paid.StringFixed(2),
			"expected", expected.StringFixed(2))
	}

	log.Info("Overdue notifications completed", "sent", sent, "errors", errored)
	return sent
}
