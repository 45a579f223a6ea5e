package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

// EmailSender delivers one HTML email. Implementations retry transient SMTP
// failures internally; a returned error means delivery was abandoned.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	policy   retry.Policy
	dryRun   bool
}

// NewEmailSender builds the SMTP sender. With dryRun set, Send logs the
// email instead of dialing; nothing leaves the process.
func NewEmailSender(host string, port int, username, password, from string, policy retry.Policy, dryRun bool) EmailSender {
	return &smtpSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		policy:   policy,
		dryRun:   dryRun,
	}
}

func (s *smtpSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if s.dryRun {
		logger.Info("Email sending is disabled, logging only",
			"recipient", recipient,
			"subject", subject,
			"body_size", len(htmlBody))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	err := s.policy.Do(ctx, "smtp.Send", func() error {
		return d.DialAndSend(m)
	})
	if err != nil {
		logger.Error("Failed to send email",
			"recipient", recipient,
			"subject", subject,
			"smtp_host", s.host,
			"error", err)
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}

	logger.Info("Email sent",
		"recipient", recipient,
		"subject", subject,
		"body_size", len(htmlBody),
		"smtp_host", s.host)
	return nil
}
