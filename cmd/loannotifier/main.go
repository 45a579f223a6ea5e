package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/gunneryarms/loan-notifier/internal/config"
	"github.com/gunneryarms/loan-notifier/internal/jobs"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository/postgres"
	"github.com/gunneryarms/loan-notifier/internal/retry"
	"github.com/gunneryarms/loan-notifier/internal/scheduler"
	"github.com/gunneryarms/loan-notifier/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	testMode := flag.Bool("test", false, "Run all notifications regardless of today's date and tag subjects with [TEST]")
	noSend := flag.Bool("no-send", false, "Log emails instead of delivering them")
	adminSummary := flag.Bool("admin-summary", false, "Email the run summary to the admin address")
	applyPenalties := flag.Bool("apply-penalties", false, "Run only the penalty application job and exit")
	paymentReminders := flag.Bool("payment-reminders", false, "Run only the payment reminder job and exit")
	dueDateReminders := flag.Bool("due-date-reminders", false, "Run only the due date reminder job and exit")
	checkDB := flag.Bool("check-db", false, "Verify database connectivity and exit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	schedule := flag.Bool("schedule", false, "Run as a daemon on the configured cron schedules")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	logger.Info("Starting Loan Payment Notification System...",
		"log_level", cfg.Log.Level,
		"test_mode", *testMode,
		"send_emails", !*noSend)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	policy := retry.Default()

	// Test database connection
	if err := policy.Do(ctx, "db.Ping", db.Ping); err != nil {
		logger.Error("Failed to ping database", "error", err)
		alertDatabaseFailure(ctx, cfg, *noSend)
		os.Exit(1)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db, policy)

	// Initialize Services
	emailSender := service.NewEmailSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		retry.ForSMTP(),
		*noSend,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobs.Repositories{
		Loans:    store.LoanRepository,
		Clients:  store.ClientRepository,
		Payments: store.PaymentRepository,
		Licences: store.LicenceRepository,
	}, emailSender, cfg)

	// Single-job modes
	switch {
	case *checkDB:
		if err := jobRunner.CheckDatabase(ctx); err != nil {
			logger.Error("Database check failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Database check passed")
		return
	case *applyPenalties:
		applied, skipped := jobRunner.ApplyPenalties(ctx, *testMode)
		logger.Info("Penalty application finished", "applied", applied, "skipped", skipped)
		return
	case *paymentReminders:
		sent := jobRunner.SendPaymentReminders(ctx, *testMode)
		logger.Info("Payment reminders finished", "sent", sent)
		return
	case *dueDateReminders:
		sent := jobRunner.SendDueDateReminders(ctx, *testMode)
		logger.Info("Due date reminders finished", "sent", sent)
		return
	}

	// Daemon mode
	if *schedule {
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		logger.Info("Notification scheduler is running. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down notification scheduler...")
		cronScheduler.Stop()
		logger.Info("Notification scheduler stopped. Goodbye!")
		return
	}

	// Default: one full notification run
	opts := jobs.RunOptions{
		TestMode:     *testMode,
		AdminSummary: *adminSummary,
	}
	if err := jobRunner.Run(ctx, opts); err != nil {
		logger.Error("Notification run failed", "error", err)
		os.Exit(1)
	}
}

// alertDatabaseFailure emails the admin when the database is unreachable at
// startup, before any repository exists.
func alertDatabaseFailure(ctx context.Context, cfg *config.Config, noSend bool) {
	sender := service.NewEmailSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		retry.ForSMTP(),
		noSend,
	)
	subject := "ERROR: Loan Payment System - Database Connection Failure"
	body := fmt.Sprintf("<p>The loan payment system could not reach the database at %s:%d. Please check the configuration and logs.</p>",
		cfg.Database.Host, cfg.Database.Port)
	if err := sender.Send(ctx, cfg.Email.AdminAddress, subject, body); err != nil {
		logger.Error("Failed to send database failure alert", "error", err)
	}
}
