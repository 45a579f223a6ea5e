package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "active"
	LoanStatusOverdue LoanStatus = "overdue"
	LoanStatusPaid    LoanStatus = "paid"
)

// Loan is a financed firearm purchase. The notification engine only ever
// writes two fields: Status (to overdue, never back) and Penalties (plus the
// LastPenaltyAt stamp that rides the same update).
type Loan struct {
	ID               int64            `json:"id"`
	InvoiceNumber    string           `json:"invoice_number"`
	LoanAmount       decimal.Decimal  `json:"loan_amount"`
	RemainingBalance decimal.Decimal  `json:"remaining_balance"`
	Penalties        decimal.Decimal  `json:"penalties"`
	InterestRate     *decimal.Decimal `json:"interest_rate,omitempty"`
	Status           LoanStatus       `json:"status"`
	PaymentDueDate   time.Time        `json:"payment_due_date"`
	StartDate        time.Time        `json:"start_date"`
	ClientID         int64            `json:"client_id"`
	WeaponCost       *decimal.Decimal `json:"weapon_cost,omitempty"`
	LicenseID        *int64           `json:"license_id,omitempty"`
	LastPenaltyAt    *time.Time       `json:"last_penalty_at,omitempty"`
}

// HasPenalties reports whether a penalty has ever been applied to the loan.
func (l *Loan) HasPenalties() bool {
	return l.Penalties.IsPositive()
}
