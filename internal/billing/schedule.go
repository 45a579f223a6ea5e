package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

var (
	three      = decimal.NewFromInt(3)
	tenPercent = decimal.NewFromFloat(0.10)
)

// ExpectedMonthlyPayment returns the required payment for one month of the
// three-month plan: round(loan_amount / 3, 2).
func ExpectedMonthlyPayment(loanAmount decimal.Decimal) decimal.Decimal {
	return loanAmount.Div(three).Round(2)
}

// PenaltyAmount returns the surcharge applied to an overdue loan on the 3rd
// of the month: round(loan_amount * 0.10, 2) of the total loan amount, not
// the remaining balance.
func PenaltyAmount(loanAmount decimal.Decimal) decimal.Decimal {
	return loanAmount.Mul(tenPercent).Round(2)
}

// DepositAmount is the up-front payment: weapon cost minus the financed
// amount, zero when the weapon cost is unknown.
func DepositAmount(weaponCost *decimal.Decimal, loanAmount decimal.Decimal) decimal.Decimal {
	if weaponCost == nil {
		return decimal.Zero
	}
	return weaponCost.Sub(loanAmount)
}

// NormalizeDueDate moves a due date to the payment day of its month:
// the 28th, or the last calendar day for months shorter than 28 days.
func NormalizeDueDate(t time.Time) time.Time {
	day := 28
	if last := LastDayOfMonth(t.Year(), t.Month()); last < day {
		day = last
	}
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthStart returns midnight on the first day of now's month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// NextMonthRange returns the first instant of next month and the last second
// of next month, the window used to find loans due next month.
func NextMonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(start.Year(), start.Month(), LastDayOfMonth(start.Year(), start.Month()), 23, 59, 59, 0, now.Location())
	return start, end
}

// PaymentSufficient reports whether payments recorded this month cover the
// expected monthly payment. Equality counts as sufficient.
func PaymentSufficient(paidThisMonth, loanAmount decimal.Decimal) bool {
	return paidThisMonth.GreaterThanOrEqual(ExpectedMonthlyPayment(loanAmount))
}

// Breakdown is the client-facing payment calculation for one loan.
// Penalties are an accumulated currency amount; when present, the total due
// is the regular payment plus the accumulated penalties plus a further 10%
// surcharge on those penalties.
type Breakdown struct {
	BasePayment decimal.Decimal
	Penalties   decimal.Decimal
	Surcharge   decimal.Decimal
	Total       decimal.Decimal
}

// PaymentBreakdown computes the displayed payment amount for a loan.
func PaymentBreakdown(loan *domain.Loan) Breakdown {
	b := Breakdown{
		BasePayment: ExpectedMonthlyPayment(loan.LoanAmount),
		Penalties:   loan.Penalties,
	}
	if loan.HasPenalties() {
		b.Surcharge = loan.Penalties.Mul(tenPercent).Round(2)
		b.Total = b.BasePayment.Add(b.Penalties).Add(b.Surcharge).Round(2)
	} else {
		b.Total = b.BasePayment
	}
	return b
}

// Date gates for the scheduled runs. Callers thread an explicit bypass flag
// instead of stubbing these out.

// IsPenaltyDay reports whether penalties should be applied: the 3rd.
func IsPenaltyDay(now time.Time) bool { return now.Day() == 3 }

// IsReminderDay reports whether payment reminders and statements go out: the 22nd.
func IsReminderDay(now time.Time) bool { return now.Day() == 22 }

// IsDueDateReminderDay reports whether due-date warnings go out: the 28th.
func IsDueDateReminderDay(now time.Time) bool { return now.Day() == 28 }

// PenaltyAppliedThisMonth reports whether the loan already received a penalty
// in now's calendar month. Guards against double application when the run
// repeats on the same day.
func PenaltyAppliedThisMonth(loan *domain.Loan, now time.Time) bool {
	if loan.LastPenaltyAt == nil {
		return false
	}
	return loan.LastPenaltyAt.Year() == now.Year() && loan.LastPenaltyAt.Month() == now.Month()
}
