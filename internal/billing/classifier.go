package billing

import (
	"time"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

// NotificationClass is the kind of email a loan evaluation produces.
type NotificationClass int

const (
	NoAction NotificationClass = iota
	NeedsPaymentReminder
	NeedsDueDateReminder
	NeedsOverdueNotice
	NeedsStatement
	NeedsPaidInvoice
)

func (c NotificationClass) String() string {
	switch c {
	case NeedsPaymentReminder:
		return "payment_reminder"
	case NeedsDueDateReminder:
		return "due_date_reminder"
	case NeedsOverdueNotice:
		return "overdue_notice"
	case NeedsStatement:
		return "statement"
	case NeedsPaidInvoice:
		return "paid_invoice"
	default:
		return "no_action"
	}
}

// Urgency grades a due-date warning.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyUrgent
)

func (u Urgency) String() string {
	if u == UrgencyUrgent {
		return "urgent"
	}
	return "normal"
}

// ClassifyReminder decides the day-22 class for a loan due next month.
// Gate failure without bypass is NoAction.
func ClassifyReminder(now time.Time, bypass bool) NotificationClass {
	if !bypass && !IsReminderDay(now) {
		return NoAction
	}
	return NeedsPaymentReminder
}

// ClassifyStatement decides the day-22 primary-run class: loans still
// carrying a balance get a statement, fully paid loans get their invoice.
func ClassifyStatement(loan *domain.Loan, now time.Time, bypass bool) NotificationClass {
	if !bypass && !IsReminderDay(now) {
		return NoAction
	}
	if loan.RemainingBalance.IsPositive() {
		return NeedsStatement
	}
	return NeedsPaidInvoice
}

// ClassifyDueDateReminder decides the day-28 class and its urgency for an
// active loan due between now and the start of next month.
func ClassifyDueDateReminder(loan *domain.Loan, now time.Time, bypass bool) (NotificationClass, Urgency) {
	if !bypass && !IsDueDateReminderDay(now) {
		return NoAction, UrgencyNormal
	}
	if DaysUntilDue(loan, now) <= 1 {
		return NeedsDueDateReminder, UrgencyUrgent
	}
	return NeedsDueDateReminder, UrgencyNormal
}

// ClassifyOverdue decides the overdue-notice class. Notices go out whenever
// the run transitioned at least one loan, or under the test override.
func ClassifyOverdue(overdueCount int, bypass bool) NotificationClass {
	if overdueCount > 0 || bypass {
		return NeedsOverdueNotice
	}
	return NoAction
}

// DaysUntilDue returns whole calendar days between now and the loan's
// normalized due date. Zero means due today, negative means past due.
func DaysUntilDue(loan *domain.Loan, now time.Time) int {
	due := NormalizeDueDate(loan.PaymentDueDate)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay).Hours() / 24)
}
