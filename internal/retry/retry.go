// Package retry provides the single backoff policy shared by every remote
// operation: database queries, updates, and SMTP sends.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/gunneryarms/loan-notifier/internal/logger"
)

// Policy describes how an operation is retried. The zero value is not
// usable; construct with Default or fill every field.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	// Retryable decides whether an error is transient. Non-transient
	// errors propagate immediately.
	Retryable func(error) bool
}

// Default is the policy used for database operations: 3 attempts,
// exponential backoff starting at one second.
func Default() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Multiplier:   2,
		Retryable:    IsTransient,
	}
}

// ForSMTP is the policy used for email delivery: same attempt count, longer
// initial delay.
func ForSMTP() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		Multiplier:   2,
		Retryable:    IsTransient,
	}
}

// Do runs fn until it succeeds, the error is non-transient, the attempts are
// exhausted, or ctx is done. The last error is returned unwrapped so callers
// can branch on it.
func (p Policy) Do(ctx context.Context, name string, fn func() error) error {
	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			logger.Error("Maximum retries reached",
				"operation", name,
				"attempts", attempt,
				"error", lastErr)
			break
		}

		logger.Warn("Retrying after transient error",
			"operation", name,
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"wait", delay.String(),
			"error", lastErr)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return lastErr
}

// IsTransient reports whether an error looks like a transport or timeout
// failure worth retrying. Validation and SQL logic errors are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
