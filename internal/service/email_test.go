package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gunneryarms/loan-notifier/internal/retry"
)

func TestSmtpSender_DryRun(t *testing.T) {
	// With dryRun set nothing dials out, so no SMTP server is needed
	sender := NewEmailSender("smtp.invalid", 587, "u", "p", "from@example.com", retry.ForSMTP(), true)

	err := sender.Send(context.Background(), "to@example.com", "Subject", "<p>Body</p>")
	assert.NoError(t, err)
}
