package jobs

import (
	"context"
	"fmt"

	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/templates"
)

// SendAdminSummary mails the end-of-run report to the admin address.
func (jr *JobRunner) SendAdminSummary(ctx context.Context, summary templates.RunSummary) {
	now := jr.now()
	log := logger.WithOperation("SendAdminSummary")

	body, err := templates.AdminSummary(summary, now)
	if err != nil {
		log.Error("Failed to render admin summary", "error", err)
		return
	}

	subject := "Loan Payment Notifications Summary - " + now.Format("2006-01-02")
	if err := jr.email.Send(ctx, jr.config.Email.AdminAddress, subject, body); err != nil {
		log.Error("Failed to send admin summary", "error", err)
		return
	}
	log.Info("Admin summary email sent", "recipient", jr.config.Email.AdminAddress)
}

// SendAdminAlert mails a short failure notice to the admin address.
// Best effort: a delivery failure is logged and swallowed.
func (jr *JobRunner) SendAdminAlert(ctx context.Context, subject, message string) {
	if err := jr.email.Send(ctx, jr.config.Email.AdminAddress, subject, templates.Alert(message)); err != nil {
		logger.Error("Failed to send admin alert", "subject", subject, "error", err)
		return
	}
	logger.Info("Admin alert sent", "subject", subject)
}

// CheckDatabase verifies all four tables are reachable. A failure here is
// fatal for the run.
func (jr *JobRunner) CheckDatabase(ctx context.Context) error {
	log := logger.WithOperation("CheckDatabase")

	checks := []struct {
		table string
		count func(context.Context) (int64, error)
	}{
		{"loans", jr.repos.Loans.CountAll},
		{"clients", jr.repos.Clients.CountAll},
		{"loan_payments", jr.repos.Payments.CountAll},
		{"gun_licences", jr.repos.Licences.CountAll},
	}

	for _, check := range checks {
		count, err := check.count(ctx)
		if err != nil {
			log.Error("Database connection test failed", "table", check.table, "error", err)
			return fmt.Errorf("table %s not accessible: %w", check.table, err)
		}
		log.Info("Table accessible", "table", check.table, "record_count", count)
	}
	return nil
}
