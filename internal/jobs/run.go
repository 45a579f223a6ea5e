package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gunneryarms/loan-notifier/internal/billing"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/templates"
)

// RunOptions controls one full notification run.
type RunOptions struct {
	// TestMode bypasses every date gate and tags email subjects.
	TestMode bool
	// AdminSummary sends the end-of-run report to the admin address.
	AdminSummary bool
}

// Run executes the complete notification cycle in order: connectivity
// check, overdue transition, penalty application, overdue notices, payment
// reminders, due-date reminders, monthly statements, admin summary.
// Only a connectivity failure aborts the run; everything downstream is
// per-record continue-on-error.
func (jr *JobRunner) Run(ctx context.Context, opts RunOptions) error {
	start := jr.now()
	logger.Info("Starting loan payment notification process",
		"test_mode", opts.TestMode,
		"admin_summary", opts.AdminSummary,
		"start_time", start.Format(time.RFC3339))

	var summary templates.RunSummary

	if err := jr.CheckDatabase(ctx); err != nil {
		jr.SendAdminAlert(ctx,
			"ERROR: Loan Payment System - Database Connection Failure",
			"The loan payment system could not connect to the database. Please check the configuration and logs.")
		return fmt.Errorf("database connection check failed: %w", err)
	}

	jr.runWithRecovery("MarkOverdueLoans", func() {
		summary.OverdueMarked = jr.MarkOverdueLoans(ctx)
	})

	jr.runWithRecovery("ApplyPenalties", func() {
		summary.PenaltiesApplied, summary.PenaltiesSkipped = jr.ApplyPenalties(ctx, opts.TestMode)
	})

	if billing.ClassifyOverdue(summary.OverdueMarked, opts.TestMode) == billing.NeedsOverdueNotice {
		jr.runWithRecovery("NotifyOverdueLoans", func() {
			summary.OverdueNotices = jr.NotifyOverdueLoans(ctx)
		})
	}

	jr.runWithRecovery("SendPaymentReminders", func() {
		summary.PaymentReminders = jr.SendPaymentReminders(ctx, opts.TestMode)
	})

	jr.runWithRecovery("SendDueDateReminders", func() {
		summary.DueDateReminders = jr.SendDueDateReminders(ctx, opts.TestMode)
	})

	jr.runWithRecovery("SendMonthlyStatements", func() {
		summary.LoansProcessed, summary.Notifications = jr.SendMonthlyStatements(ctx, opts.TestMode)
	})

	if opts.AdminSummary {
		jr.SendAdminSummary(ctx, summary)
	}

	end := jr.now()
	logger.Info("Loan payment notification process completed",
		"duration_seconds", end.Sub(start).Seconds(),
		"loans_processed", summary.LoansProcessed,
		"notifications", summary.Notifications,
		"overdue_marked", summary.OverdueMarked,
		"overdue_notices", summary.OverdueNotices,
		"penalties_applied", summary.PenaltiesApplied,
		"penalties_skipped", summary.PenaltiesSkipped,
		"payment_reminders", summary.PaymentReminders,
		"due_date_reminders", summary.DueDateReminders)
	return nil
}
