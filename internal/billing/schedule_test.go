package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExpectedMonthlyPayment(t *testing.T) {
	tests := []struct {
		name       string
		loanAmount string
		expected   string
	}{
		{"EvenSplit", "9000", "3000"},
		{"RepeatingFraction", "10000", "3333.33"},
		{"Cents", "5000.01", "1666.67"},
		{"SmallLoan", "100", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedMonthlyPayment(d(tt.loanAmount))
			assert.True(t, d(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestPenaltyAmount(t *testing.T) {
	assert.True(t, d("500").Equal(PenaltyAmount(d("5000"))))
	assert.True(t, d("333.33").Equal(PenaltyAmount(d("3333.33"))))
	// Penalty comes off the loan amount, never the remaining balance
	assert.True(t, d("900").Equal(PenaltyAmount(d("9000"))))
}

func TestDepositAmount(t *testing.T) {
	cost := d("12000")
	assert.True(t, d("3000").Equal(DepositAmount(&cost, d("9000"))))
	assert.True(t, decimal.Zero.Equal(DepositAmount(nil, d("9000"))))
}

func TestNormalizeDueDate(t *testing.T) {
	tests := []struct {
		name    string
		in      time.Time
		wantDay int
	}{
		{"ThirtyOneDayMonth", time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC), 28},
		{"MidMonth", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), 28},
		{"FebruaryNonLeap", time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), 28},
		{"FebruaryLeap", time.Date(2028, time.February, 5, 0, 0, 0, 0, time.UTC), 28},
		{"AlreadyTheTwentyEighth", time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC), 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDueDate(tt.in)
			assert.Equal(t, tt.wantDay, got.Day())
			assert.Equal(t, tt.in.Month(), got.Month())
			assert.Equal(t, tt.in.Year(), got.Year())
		})
	}
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2026, time.January))
	assert.Equal(t, 28, LastDayOfMonth(2026, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2028, time.February))
	assert.Equal(t, 30, LastDayOfMonth(2026, time.April))
	// December wraps the year without panicking
	assert.Equal(t, 31, LastDayOfMonth(2026, time.December))
}

func TestNextMonthRange(t *testing.T) {
	now := time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC)
	from, to := NextMonthRange(now)

	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.September, 30, 23, 59, 59, 0, time.UTC), to)

	t.Run("DecemberWrapsToJanuary", func(t *testing.T) {
		now := time.Date(2026, time.December, 22, 0, 0, 0, 0, time.UTC)
		from, to := NextMonthRange(now)
		assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2027, time.January, 31, 23, 59, 59, 0, time.UTC), to)
	})
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2026, time.August, 22, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), MonthStart(now))
}

func TestPaymentSufficient(t *testing.T) {
	loanAmount := d("9000") // expected monthly payment 3000

	assert.True(t, PaymentSufficient(d("3000"), loanAmount), "exact payment counts as sufficient")
	assert.True(t, PaymentSufficient(d("3500"), loanAmount))
	assert.False(t, PaymentSufficient(d("2999.99"), loanAmount), "one cent short is insufficient")
	assert.False(t, PaymentSufficient(decimal.Zero, loanAmount))
}

func TestPaymentBreakdown(t *testing.T) {
	t.Run("NoPenalties", func(t *testing.T) {
		loan := &domain.Loan{LoanAmount: d("9000")}
		b := PaymentBreakdown(loan)
		assert.True(t, d("3000").Equal(b.BasePayment))
		assert.True(t, b.Penalties.IsZero())
		assert.True(t, b.Surcharge.IsZero())
		assert.True(t, d("3000").Equal(b.Total))
	})

	t.Run("WithAccumulatedPenalties", func(t *testing.T) {
		loan := &domain.Loan{LoanAmount: d("9000"), Penalties: d("900")}
		b := PaymentBreakdown(loan)
		assert.True(t, d("3000").Equal(b.BasePayment))
		assert.True(t, d("900").Equal(b.Penalties))
		assert.True(t, d("90").Equal(b.Surcharge))
		assert.True(t, d("3990").Equal(b.Total))
	})
}

func TestDateGates(t *testing.T) {
	assert.True(t, IsPenaltyDay(time.Date(2026, time.August, 3, 6, 30, 0, 0, time.UTC)))
	assert.False(t, IsPenaltyDay(time.Date(2026, time.August, 4, 6, 30, 0, 0, time.UTC)))

	assert.True(t, IsReminderDay(time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsReminderDay(time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)))

	assert.True(t, IsDueDateReminderDay(time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsDueDateReminderDay(time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)))
}

func TestPenaltyAppliedThisMonth(t *testing.T) {
	now := time.Date(2026, time.August, 3, 6, 30, 0, 0, time.UTC)

	t.Run("NeverApplied", func(t *testing.T) {
		loan := &domain.Loan{}
		assert.False(t, PenaltyAppliedThisMonth(loan, now))
	})

	t.Run("AppliedEarlierThisMonth", func(t *testing.T) {
		applied := time.Date(2026, time.August, 3, 6, 0, 0, 0, time.UTC)
		loan := &domain.Loan{LastPenaltyAt: &applied}
		assert.True(t, PenaltyAppliedThisMonth(loan, now))
	})

	t.Run("AppliedLastMonth", func(t *testing.T) {
		applied := time.Date(2026, time.July, 3, 6, 30, 0, 0, time.UTC)
		loan := &domain.Loan{LastPenaltyAt: &applied}
		assert.False(t, PenaltyAppliedThisMonth(loan, now))
	})

	t.Run("SameMonthLastYear", func(t *testing.T) {
		applied := time.Date(2025, time.August, 3, 6, 30, 0, 0, time.UTC)
		loan := &domain.Loan{LastPenaltyAt: &applied}
		assert.False(t, PenaltyAppliedThisMonth(loan, now))
	})
}
