package jobs

import (
	"context"

	"github.com/gunneryarms/loan-notifier/internal/billing"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/templates"
)

// SendPaymentReminders emails clients whose loans are due next month a
// statement with the payment-reminder banner. Runs on the 22nd unless
// bypass is set. Returns the number of reminders sent.
func (jr *JobRunner) SendPaymentReminders(ctx context.Context, bypass bool) int {
	now := jr.now()
	log := logger.WithOperation("SendPaymentReminders")

	if billing.ClassifyReminder(now, bypass) == billing.NoAction {
		log.Info("Today is not the 22nd day of the month, skipping payment reminders")
		return 0
	}

	from, to := billing.NextMonthRange(now)
	loans, err := jr.repos.Loans.ListActiveDueBetween(ctx, from, to)
	if err != nil {
		log.Error("Failed to query loans due next month", "error", err)
		return 0
	}
	log.Info("Found loans due next month for reminder", "count", len(loans))

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

		expected := billing.ExpectedMonthlyPayment(loan.LoanAmount)
		due := billing.NormalizeDueDate(loan.PaymentDueDate)

		banner := templates.ReminderBanner(expected, due)
		body, err := templates.Statement(loan, client, licence, true, banner)
		if err != nil {
			log.Error("Failed to render payment reminder", "invoice", loan.InvoiceNumber, "error", err)
			errored++
			continue
		}

		subject := "Payment Reminder: " + loan.InvoiceNumber + " - " + client.FullName()
		if err := jr.sendWithCopy(ctx, client.Email, subject, body); err != nil {
			errored++
			continue
		}
		sent++
		log.Info("Payment reminder sent",
			"invoice", loan.InvoiceNumber,
			"client", client.FullName(),
			"email", client.Email,
			"expected", expected.StringFixed(2),
			"due_date", due.Format("2006-01-02"))
	}

	log.Info("Payment reminders completed", "sent", sent, "errors", errored)
	return sent
}

// SendDueDateReminders warns clients whose payment falls between now and the
// start of next month, with urgent wording inside one day of the due date.
// Runs on the 28th unless bypass is set. Returns the number sent.
func (jr *JobRunner) SendDueDateReminders(ctx context.Context, bypass bool) int {
	now := jr.now()
	log := logger.WithOperation("SendDueDateReminders")

	if !bypass && !billing.IsDueDateReminderDay(now) {
		log.Info("Today is not the 28th day of the month, skipping due date reminders")
		return 0
	}

	nextMonthStart, _ := billing.NextMonthRange(now)
	loans, err := jr.repos.Loans.ListActiveDueBetween(ctx, now, nextMonthStart)
	if err != nil {
		log.Error("Failed to query loans for due date reminders", "error", err)
		return 0
	}
	log.Info("Found loans with payments due in the next few days", "count", len(loans))

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
		due := billing.NormalizeDueDate(loan.PaymentDueDate)
		daysUntilDue := billing.DaysUntilDue(loan, now)
		_, urgency := billing.ClassifyDueDateReminder(loan, now, bypass)

		banner := templates.DueDateBanner(expected, paid, due, daysUntilDue)
		body, err := templates.Statement(loan, client, licence, true, banner)
		if err != nil {
			log.Error("Failed to render due date reminder", "invoice", loan.InvoiceNumber, "error", err)
			errored++
			continue
		}

		subject := "PAYMENT DUE SOON: " + loan.InvoiceNumber + " - " + client.FullName()
		if err := jr.sendWithCopy(ctx, client.Email, subject, body); err != nil {
			errored++
			continue
		}
		sent++
		log.Info("Due date reminder sent",
			"invoice", loan.InvoiceNumber,
			"client", client.FullName(),
			"email", client.Email,
			"expected", expected.StringFixed(2),
			"due_date", due.Format("2006-01-02"),
			"days_until_due", daysUntilDue,
			"urgency", urgency.String())
	}

	log.Info("Due date reminders completed", "sent", sent, "errors", errored)
	return sent
}

// SendMonthlyStatements is the day-22 primary run: loans due next month get
// a statement while still carrying a balance, or the paid invoice once the
// balance reaches zero. testMode bypasses the date gate and tags subjects.
// Returns (loans processed, notifications sent).
func (jr *JobRunner) SendMonthlyStatements(ctx context.Context, testMode bool) (processed, sent int) {
	now := jr.now()
	log := logger.WithOperation("SendMonthlyStatements")

	if !testMode && !billing.IsReminderDay(now) {
		log.Info("Today is not the 22nd day of the month, skipping statements")
		return 0, 0
	}

	from, to := billing.NextMonthRange(now)
	loans, err := jr.repos.Loans.ListActiveDueBetween(ctx, from, to)
	if err != nil {
		log.Error("Failed to query loans due next month", "error", err)
		return 0, 0
	}
	log.Info("Found loans with payments due next month", "count", len(loans))

	for i := range loans {
		loan := &loans[i]
		processed++
		if !validLoan(loan) {
			continue
		}

		client, ok := jr.clientFor(ctx, loan)
		if !ok {
			continue
		}
		licence := jr.licenceFor(ctx, loan)

		class := billing.ClassifyStatement(loan, now, testMode || billing.IsReminderDay(now))
		isStatement := class == billing.NeedsStatement

		body, err := templates.Statement(loan, client, licence, isStatement, "")
		if err != nil {
			log.Error("Failed to render statement", "invoice", loan.InvoiceNumber, "error", err)
			continue
		}

		var subject string
		if isStatement {
			subject = "Gunnery Payment Due Quote: " + loan.InvoiceNumber
		} else {
			subject = "Loan Paid: Invoice " + loan.InvoiceNumber + " - " + client.FullName()
		}
		if testMode {
			subject = "[TEST] " + subject
		}

		log.Info("Preparing notification",
			"class", class.String(),
			"invoice", loan.InvoiceNumber,
			"client", client.FullName(),
			"email", client.Email)

		if err := jr.sendWithCopy(ctx, client.Email, subject, body); err != nil {
			continue
		}
		sent++
	}

	log.Info("Monthly statements completed", "processed", processed, "sent", sent)
	return processed, sent
}
